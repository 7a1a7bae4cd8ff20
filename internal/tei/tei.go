// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tei extracts register entries from structured transcription
// markup.
// Implements: prd003-structured-extraction (R1-R5);
//
//	docs/ARCHITECTURE § Structured Extraction.
package tei

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gelati/matiane/internal/assemble"
	"github.com/gelati/matiane/internal/freetext"
	"github.com/gelati/matiane/internal/morphology"
	"github.com/gelati/matiane/internal/normalize"
	"github.com/gelati/matiane/pkg/types"
)

// Extractor reads entries out of parsed transcription markup. Element
// matching is by local name throughout, so namespaced and plain markup
// extract identically once entries are located.
type Extractor struct {
	classifier *morphology.Classifier
	normalizer *normalize.Normalizer
	locators   []Locator
}

// NewExtractor builds an Extractor. A nil or empty locator list selects
// DefaultLocators.
func NewExtractor(c *morphology.Classifier, n *normalize.Normalizer, locators []Locator) *Extractor {
	if len(locators) == 0 {
		locators = DefaultLocators()
	}
	return &Extractor{classifier: c, normalizer: n, locators: locators}
}

// Extract parses the document from r and returns one record per located
// entry element, in document order. A malformed document is a
// document-level error; a well-formed document with no entry elements
// yields an empty slice. Entries that fail individually are reported to
// w and skipped (R5.1, R5.2).
func (e *Extractor) Extract(r io.Reader, w io.Writer) ([]types.Entry, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}

	nodes, locName := LocateEntries(root, e.locators)
	if len(nodes) == 0 {
		return []types.Entry{}, nil
	}
	fmt.Fprintf(w, "located %d entries (%s)\n", len(nodes), locName)

	entries := make([]types.Entry, 0, len(nodes))
	for i, node := range nodes {
		entry, err := e.extractEntry(node, i+1)
		if err != nil {
			fmt.Fprintf(w, "failed  entry %d: %v\n", i+1, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// extractEntry builds one record from an entry element. The deferred
// recover turns a panic on pathological content into a per-entry error,
// so a single bad entry cannot abort the batch (R5.1).
func (e *Extractor) extractEntry(node *Node, position int) (entry types.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting entry: %v", r)
		}
	}()

	// The n attribute is the entry ordinal when it is all digits;
	// anything else, signed forms included, falls back to document
	// position (R2.1).
	number := position
	if n := node.Attr("n"); allDigits(n) {
		if parsed, parseErr := strconv.Atoi(n); parseErr == nil {
			number = parsed
		}
	}

	b := assemble.New(number, node.Attr("id"))
	notes := e.normalizer.Normalize(node.FlattenText())
	b.SetNotes(notes)

	e.extractPersons(node, b)
	e.extractPlaces(node, b)
	e.extractLocus(node, b)

	// Markup without a usable persName usually still names the person
	// in running text; recover the main person from the notes (R4.4).
	if b.MainPerson().Name == "" && notes != "" {
		if p, ok := freetext.MainPerson(e.classifier, notes); ok {
			mp := b.MainPerson()
			mp.Name = p.Name
			mp.Type = p.Type
			mp.Occupation = p.Occupation
			b.SetMainPerson(mp)
		}
	}

	return b.Build(), nil
}

// extractPersons assigns persName elements: the first one becomes the
// main person, as does any later one whose type resolves to main (the
// attribute defaults to main when absent), replacing the earlier
// assignment; the rest become family members in document order
// (R3.1, R3.2).
func (e *Extractor) extractPersons(node *Node, b *assemble.Builder) {
	persons := node.FindAll(func(n *Node) bool { return n.Name.Local == "persName" })
	for i, pn := range persons {
		name := e.normalizer.Normalize(pn.FlattenText())
		if name == "" {
			continue
		}

		ptype := types.PersonType(pn.Attr("type"))
		if ptype == "" {
			ptype = types.PersonMain
		}
		person := types.Person{
			Name:       name,
			Type:       ptype,
			Occupation: types.OccupationForType(ptype),
		}

		if i == 0 || ptype == types.PersonMain {
			b.SetMainPerson(person)
		} else {
			b.AddFamilyMember(person)
		}
	}
}

// extractPlaces records every non-empty placeName text. Structured
// markup is trusted as attested: no classifier filtering here, unlike
// the free-text path (R3.3).
func (e *Extractor) extractPlaces(node *Node, b *assemble.Builder) {
	places := node.FindAll(func(n *Node) bool { return n.Name.Local == "placeName" })
	for _, pl := range places {
		if place := e.normalizer.Normalize(pl.FlattenText()); place != "" {
			b.AddPlace(place)
		}
	}
}

// extractLocus records lb (line break) and pb (page break) markers. The
// last marker with an n attribute wins, leaving the locus where the
// entry ends (R4.1-R4.3).
func (e *Extractor) extractLocus(node *Node, b *assemble.Builder) {
	for _, lb := range node.FindAll(func(n *Node) bool { return n.Name.Local == "lb" }) {
		if n := lb.Attr("n"); n != "" {
			b.SetLine(n)
		}
	}
	for _, pb := range node.FindAll(func(n *Node) bool { return n.Name.Local == "pb" }) {
		if n := pb.Attr("n"); n != "" {
			b.SetPageFolio(n)
		}
	}
}

// allDigits reports whether s is one or more ASCII digits. Entry
// ordinals are unsigned; strconv.Atoi alone would also admit "-3".
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
