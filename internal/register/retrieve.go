// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package register

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gelati/matiane/pkg/types"
)

// QueryOptions holds parameters for register queries (R3, R4).
type QueryOptions struct {
	// Query is the FTS5 full-text search string over entry notes (R3.1).
	Query string

	// Occupation filters entries by any person's occupation (R4.1).
	Occupation string

	// Place filters by attested place (R4.2).
	Place string

	// Type filters by any person's type (R4.3).
	Type types.PersonType

	// Number filters by entry number; zero means no filter (R4.4).
	Number int

	// MaxResults limits result count. Zero uses the store default (R3.3).
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Occupation == "" && q.Place == "" && q.Type == "" && q.Number == 0
}

// StoredEntry is a register entry reassembled from the database, with
// its ingest provenance (R3.4).
type StoredEntry struct {
	types.Entry `yaml:",inline"`

	// Source is the document path the entry was ingested from.
	Source string `json:"source" yaml:"source"`

	// RunID identifies the ingest run that wrote the entry.
	RunID string `json:"run_id" yaml:"run_id"`
}

// Retrieve queries the register with optional full-text search and
// structured filters (R3, R4). Results are ranked by relevance for
// full-text queries and ordered by entry number otherwise (R3.2).
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]StoredEntry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT e.id, e.number, e.notes, e.folio, e.page, e.line,
				e.places, e.dates, e.source, e.run_id
			FROM entries_fts
			JOIN entries e ON e.rowid = entries_fts.rowid
			WHERE entries_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT e.id, e.number, e.notes, e.folio, e.page, e.line,
				e.places, e.dates, e.source, e.run_id
			FROM entries e
			WHERE 1=1`)
	}

	if opts.Occupation != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM persons WHERE entry_id = e.id AND occupation = ?)`)
		args = append(args, opts.Occupation)
	}

	if opts.Place != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(e.places) WHERE value = ?)`)
		args = append(args, opts.Place)
	}

	if opts.Type != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM persons WHERE entry_id = e.id AND type = ?)`)
		args = append(args, string(opts.Type))
	}

	if opts.Number != 0 {
		qb.WriteString(` AND e.number = ?`)
		args = append(args, opts.Number)
	}

	if useFTS {
		qb.WriteString(` ORDER BY entries_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY e.number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying register: %w", err)
	}
	defer rows.Close()

	var results []StoredEntry
	for rows.Next() {
		var (
			se         StoredEntry
			placesJSON sql.NullString
			datesJSON  sql.NullString
		)

		if err := rows.Scan(
			&se.EntryID, &se.EntryNumber, &se.Notes,
			&se.Manuscript.Folio, &se.Manuscript.Page, &se.Manuscript.Line,
			&placesJSON, &datesJSON, &se.Source, &se.RunID,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		se.Places = []string{}
		se.Dates = map[string]string{}
		if placesJSON.Valid {
			json.Unmarshal([]byte(placesJSON.String), &se.Places)
		}
		if datesJSON.Valid {
			json.Unmarshal([]byte(datesJSON.String), &se.Dates)
		}

		results = append(results, se)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := s.loadPersons(ctx, &results[i]); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// loadPersons reattaches the person rows of one entry: position zero is
// the main person, the rest are family members in stored order.
func (s *Store) loadPersons(ctx context.Context, se *StoredEntry) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, name, type, occupation, surname, patronymic, place, relationship
		 FROM persons WHERE entry_id = ? ORDER BY position`, se.EntryID)
	if err != nil {
		return fmt.Errorf("querying persons for %s: %w", se.EntryID, err)
	}
	defer rows.Close()

	se.FamilyMembers = []types.Person{}
	for rows.Next() {
		var (
			role  string
			ptype string
			p     types.Person
		)
		if err := rows.Scan(
			&role, &p.Name, &ptype, &p.Occupation,
			&p.Surname, &p.Patronymic, &p.Place, &p.Relationship,
		); err != nil {
			return fmt.Errorf("scanning person row: %w", err)
		}
		p.Type = types.PersonType(ptype)

		if role == "main" {
			se.MainPerson = p
		} else {
			se.FamilyMembers = append(se.FamilyMembers, p)
		}
	}
	return rows.Err()
}
