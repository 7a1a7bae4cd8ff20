// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes an extracted collection to its publication
// artifacts: a JSON document and a loadable JavaScript data file.
// Implements: prd007-export (R1-R3);
//
//	docs/ARCHITECTURE § Export.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gelati/matiane/pkg/types"
)

// Metadata describes the exported collection in the JSON document (R1.2).
type Metadata struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Manuscript   string `json:"manuscript"`
	TotalEntries int    `json:"total_entries"`
	ExportDate   string `json:"export_date"`
}

// countSummary is the statistics block of the JSON document: counts
// only, the full value lists stay in the entries themselves.
type countSummary struct {
	TotalEntries      int `json:"total_entries"`
	TotalPersons      int `json:"total_persons"`
	UniquePlaces      int `json:"unique_places"`
	UniqueOccupations int `json:"unique_occupations"`
}

// document is the complete JSON export shape (R1.1).
type document struct {
	Metadata   Metadata      `json:"metadata"`
	Statistics countSummary  `json:"statistics"`
	Entries    []types.Entry `json:"entries"`
}

// Exporter writes entry collections to disk. Now is the export clock;
// tests pin it to keep artifacts reproducible.
type Exporter struct {
	cfg types.ExportConfig
	Now func() time.Time
}

// New builds an Exporter around the given collection metadata.
func New(cfg types.ExportConfig) *Exporter {
	return &Exporter{cfg: cfg, Now: time.Now}
}

func (e *Exporter) date() string {
	return e.Now().UTC().Format("2006-01-02")
}

// WriteJSON writes the full document: metadata, count summary, entries.
// Georgian text goes out as raw UTF-8, and notes that carry literal
// markup fragments stay readable, so encoding is done without HTML
// escaping (R1.3).
func (e *Exporter) WriteJSON(path string, entries []types.Entry, stats types.Statistics) error {
	doc := document{
		Metadata: Metadata{
			Title:        e.cfg.Title,
			Description:  e.cfg.Description,
			Manuscript:   e.cfg.Manuscript,
			TotalEntries: stats.TotalEntries,
			ExportDate:   e.date(),
		},
		Statistics: countSummary{
			TotalEntries:      stats.TotalEntries,
			TotalPersons:      stats.TotalPersons,
			UniquePlaces:      stats.UniquePlaces(),
			UniqueOccupations: stats.UniqueOccupations(),
		},
		Entries: entries,
	}

	data, err := marshalIndent(doc)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// WriteJS writes the entries as a script the database page loads
// directly: a header comment, the entry array, a camelCase statistics
// object, and a CommonJS export guard (R2.1-R2.3).
func (e *Exporter) WriteJS(path string, entries []types.Entry, stats types.Statistics) error {
	data, err := marshalIndent(entries)
	if err != nil {
		return fmt.Errorf("marshaling entries: %w", err)
	}

	js := fmt.Sprintf(`// %s - Prosopographical Database
// Generated from TEI XML on %s
// Total entries: %d

const prosopographicalData = %s;

// Statistics
const dataStatistics = {
    totalEntries: %d,
    totalPersons: %d,
    uniquePlaces: %d,
    uniqueOccupations: %d
};

// Export for use in HTML database
if (typeof module !== 'undefined' && module.exports) {
    module.exports = { prosopographicalData, dataStatistics };
}
`,
		e.cfg.Title, e.date(), stats.TotalEntries, data,
		stats.TotalEntries, stats.TotalPersons, stats.UniquePlaces(), stats.UniqueOccupations())

	return os.WriteFile(path, []byte(js), 0o644)
}

// marshalIndent renders v as two-space-indented JSON without HTML
// escaping, trimmed of the encoder's trailing newline.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
