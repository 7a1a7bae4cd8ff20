// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize prepares raw transcription text for extraction.
// Implements: prd001-normalization (R1-R3);
//
//	docs/ARCHITECTURE § Normalization.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// artifactRe matches transcription artifacts that carry no text:
	// editorial braces, brackets, and stray backslashes.
	artifactRe = regexp.MustCompile(`[{}\[\]\\]`)

	// whitespaceRe matches whitespace runs, including line breaks from
	// the transcription layout.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Abbreviation is one scribal abbreviation and its expansion. Abbr is
// the abbreviated form as attested, with the editorial parentheses that
// mark supplied letters; Expansion is the full form.
type Abbreviation struct {
	Abbr      string `json:"abbr" yaml:"abbr"`
	Expansion string `json:"expansion" yaml:"expansion"`
}

// DefaultAbbreviations returns the scribal abbreviations attested in the
// Ṭbeti register: the commemorative formula words სულსა, შეუნდვენ, and
// ღმერთმან (R2.1).
func DefaultAbbreviations() []Abbreviation {
	return []Abbreviation{
		{Abbr: "ს(ულს)ა", Expansion: "სულსა"},
		{Abbr: "შ(ეუნდვე)ნ", Expansion: "შეუნდვენ"},
		{Abbr: "ღ(მერთმა)ნ", Expansion: "ღმერთმან"},
	}
}

// Normalizer cleans transcription text: it strips editorial artifacts,
// collapses whitespace, and expands scribal abbreviations.
type Normalizer struct {
	replacer *strings.Replacer
}

// New returns a Normalizer using the given abbreviation table. A nil or
// empty table disables abbreviation expansion.
func New(abbrs []Abbreviation) *Normalizer {
	pairs := make([]string, 0, len(abbrs)*2)
	for _, a := range abbrs {
		pairs = append(pairs, a.Abbr, a.Expansion)
	}
	return &Normalizer{replacer: strings.NewReplacer(pairs...)}
}

// NewDefault returns a Normalizer with the built-in abbreviation table.
func NewDefault() *Normalizer {
	return New(DefaultAbbreviations())
}

// Normalize cleans one text fragment. Steps run in fixed order: artifact
// removal, whitespace collapsing, abbreviation expansion, trimming
// (R1.1-R1.4). Empty input yields empty output, and the function is
// idempotent on its own output.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = artifactRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = n.replacer.Replace(text)
	return strings.TrimSpace(text)
}
