// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package register persists extracted entries in a queryable SQLite
// register with full-text search over entry notes.
// Implements: prd008-register (R1-R6);
//
//	docs/ARCHITECTURE § Register Store.
package register

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gelati/matiane/pkg/types"
)

const dbFile = "register.db"

// Store manages the register SQLite database.
type Store struct {
	db          *sql.DB
	registerDir string
	maxResults  int
}

// NewStore opens or creates the register database at
// registerDir/register.db, creating the schema if it does not exist
// (R1.1, R1.2).
func NewStore(cfg types.RegisterConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.RegisterDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating register directory: %w", err)
	}

	dbPath := filepath.Join(cfg.RegisterDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:          db,
		registerDir: cfg.RegisterDir,
		maxResults:  maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT,
			imported_at TEXT,
			entry_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			number INTEGER,
			notes TEXT,
			folio TEXT,
			page TEXT,
			line TEXT,
			places TEXT,
			dates TEXT,
			source TEXT,
			run_id TEXT REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_number ON entries(number)`,
		`CREATE TABLE IF NOT EXISTS persons (
			entry_id TEXT NOT NULL REFERENCES entries(id),
			position INTEGER NOT NULL,
			role TEXT NOT NULL,
			name TEXT,
			type TEXT,
			occupation TEXT,
			surname TEXT,
			patronymic TEXT,
			place TEXT,
			relationship TEXT,
			PRIMARY KEY (entry_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_type ON persons(type)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_occupation ON persons(occupation)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='entries_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE entries_fts USING fts5(notes, content=entries, content_rowid=rowid)`,
			`CREATE TRIGGER entries_ai AFTER INSERT ON entries BEGIN
				INSERT INTO entries_fts(rowid, notes) VALUES (new.rowid, new.notes);
			END`,
			`CREATE TRIGGER entries_ad AFTER DELETE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, notes) VALUES('delete', old.rowid, old.notes);
			END`,
			`CREATE TRIGGER entries_au AFTER UPDATE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, notes) VALUES('delete', old.rowid, old.notes);
				INSERT INTO entries_fts(rowid, notes) VALUES (new.rowid, new.notes);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds the outcome of one register ingest run (R2.4).
type IngestSummary struct {
	RunID    string
	Stored   int
	Replaced int
}

// Total returns the number of entries written.
func (s IngestSummary) Total() int {
	return s.Stored + s.Replaced
}

// Ingest writes an entry collection to the register in one transaction
// and records a run row for provenance (R2.1-R2.4). Entries are keyed
// by entry id: re-ingesting a source replaces its earlier records
// instead of duplicating them (R2.2). The old row is deleted outright
// rather than REPLACEd so the FTS delete trigger fires.
func (s *Store) Ingest(ctx context.Context, entries []types.Entry, source string, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	summary := IngestSummary{RunID: uuid.New().String()}

	entryStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (id, number, notes, folio, page, line, places, dates, source, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	personStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO persons (entry_id, position, role, name, type, occupation, surname, patronymic, place, relationship)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing person insert: %w", err)
	}
	defer personStmt.Close()

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		var existing int
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM entries WHERE id = ?`, entry.EntryID,
		).Scan(&existing); err != nil {
			return summary, fmt.Errorf("checking entry %s: %w", entry.EntryID, err)
		}

		if existing > 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM persons WHERE entry_id = ?`, entry.EntryID); err != nil {
				return summary, fmt.Errorf("deleting old persons for %s: %w", entry.EntryID, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entry.EntryID); err != nil {
				return summary, fmt.Errorf("deleting old entry %s: %w", entry.EntryID, err)
			}
			summary.Replaced++
		} else {
			summary.Stored++
		}

		placesJSON, _ := json.Marshal(entry.Places)
		datesJSON, _ := json.Marshal(entry.Dates)
		if _, err := entryStmt.ExecContext(ctx,
			entry.EntryID, entry.EntryNumber, entry.Notes,
			entry.Manuscript.Folio, entry.Manuscript.Page, entry.Manuscript.Line,
			string(placesJSON), string(datesJSON), source, summary.RunID,
		); err != nil {
			return summary, fmt.Errorf("inserting entry %s: %w", entry.EntryID, err)
		}

		if err := insertPerson(ctx, personStmt, entry.EntryID, 0, "main", entry.MainPerson); err != nil {
			return summary, err
		}
		for i, member := range entry.FamilyMembers {
			if err := insertPerson(ctx, personStmt, entry.EntryID, i+1, "family", member); err != nil {
				return summary, err
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, imported_at, entry_count) VALUES (?, ?, ?, ?)`,
		summary.RunID, source, time.Now().UTC().Format(time.RFC3339), len(entries),
	); err != nil {
		return summary, fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "stored %d entries (%d new, %d replaced) from %s\n",
		len(entries), summary.Stored, summary.Replaced, source)
	return summary, nil
}

func insertPerson(ctx context.Context, stmt *sql.Stmt, entryID string, position int, role string, p types.Person) error {
	if _, err := stmt.ExecContext(ctx,
		entryID, position, role,
		p.Name, string(p.Type), p.Occupation,
		p.Surname, p.Patronymic, p.Place, p.Relationship,
	); err != nil {
		return fmt.Errorf("inserting person %d of %s: %w", position, entryID, err)
	}
	return nil
}
