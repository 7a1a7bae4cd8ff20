// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains the extraction strategies over one
// transcription document and aggregates the results.
// Implements: prd006-aggregation (R1-R4);
//
//	docs/ARCHITECTURE § Extraction Cascade.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gelati/matiane/internal/freetext"
	"github.com/gelati/matiane/internal/morphology"
	"github.com/gelati/matiane/internal/normalize"
	"github.com/gelati/matiane/internal/tei"
	"github.com/gelati/matiane/pkg/types"
)

// strategy is one extraction attempt over the raw document content.
type strategy struct {
	name string
	run  func(content string, w io.Writer) ([]types.Entry, error)
}

// Pipeline runs the extraction cascade: structured markup first, then
// literal tagged text, then bare Georgian runs. The first strategy to
// produce entries wins; a strategy that errors or comes back empty
// hands the content to the next one.
type Pipeline struct {
	classifier *morphology.Classifier
	strategies []strategy
}

// New assembles a pipeline from a lexicon. The lexicon drives both the
// classifier and the normalizer's abbreviation table, so one override
// file retunes the whole cascade.
func New(lex morphology.Lexicon) (*Pipeline, error) {
	classifier := morphology.NewClassifier(lex)
	normalizer := normalize.New(lex.Abbreviations)

	structured := tei.NewExtractor(classifier, normalizer, nil)
	fallback, err := freetext.NewExtractor(classifier, normalizer)
	if err != nil {
		return nil, fmt.Errorf("building fallback extractor: %w", err)
	}

	return &Pipeline{
		classifier: classifier,
		strategies: []strategy{
			{name: "structured", run: func(content string, w io.Writer) ([]types.Entry, error) {
				return structured.Extract(strings.NewReader(content), w)
			}},
			{name: "tagged-text", run: func(content string, w io.Writer) ([]types.Entry, error) {
				return fallback.ExtractTagged(content, w), nil
			}},
			{name: "georgian-runs", run: func(content string, w io.Writer) ([]types.Entry, error) {
				return fallback.ExtractRuns(content, w), nil
			}},
		},
	}, nil
}

// Classifier exposes the pipeline's classifier for aggregation and
// reporting.
func (p *Pipeline) Classifier() *morphology.Classifier { return p.classifier }

// Parse runs the cascade over raw document content. Strategy failures
// are diagnostics, not errors: a document that defeats every strategy
// yields an empty collection (R1.3).
func (p *Pipeline) Parse(content string, w io.Writer) []types.Entry {
	for _, s := range p.strategies {
		entries, err := s.run(content, w)
		if err != nil {
			fmt.Fprintf(w, "%s extraction failed: %v\n", s.name, err)
			continue
		}
		if len(entries) == 0 {
			continue
		}
		return entries
	}
	return []types.Entry{}
}

// ParseFile reads path and runs the cascade on its content. An
// unreadable file is reported to w and yields an empty collection, so
// batch callers keep going.
func (p *Pipeline) ParseFile(path string, w io.Writer) []types.Entry {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "cannot read %s: %v\n", path, err)
		return []types.Entry{}
	}
	return p.Parse(string(content), w)
}

// Aggregate reduces an entry collection to its statistics. It never
// mutates the entries; repeated calls on the same collection return
// identical, sorted results (R1.1, R4.1).
func Aggregate(entries []types.Entry, c *morphology.Classifier) types.Statistics {
	familyNames := make(map[string]bool)
	places := make(map[string]bool)
	occupations := make(map[string]bool)

	stats := types.Statistics{TotalEntries: len(entries)}
	for _, entry := range entries {
		stats.TotalPersons += 1 + len(entry.FamilyMembers)

		// Surnames and patronymics pool into one family-name set; both
		// name a family line (R2.3).
		if s := entry.MainPerson.Surname; s != "" {
			familyNames[s] = true
		}
		if pt := entry.MainPerson.Patronymic; pt != "" {
			familyNames[pt] = true
		}

		// Entry places are re-checked here: free-text capture lets the
		// odd suffix-bearing name token through, and the statistics are
		// where precision matters (R3.2).
		for _, place := range entry.Places {
			if c.IsActualPlace(place) {
				places[place] = true
			}
		}

		if o := entry.MainPerson.Occupation; o != "" {
			occupations[o] = true
		}
	}

	stats.FamilyNames = sortedKeys(familyNames)
	stats.Places = sortedKeys(places)
	stats.Occupations = sortedKeys(occupations)
	return stats
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
