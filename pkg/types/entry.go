// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the matiane pipeline.
package types

// ManuscriptRef locates an entry within the source manuscript.
// Per prd003-structured-extraction R4.3, prd004-freetext-fallback R6.2.
type ManuscriptRef struct {
	// Folio is the folio token, a roman numeral with an optional
	// recto/verso side letter (e.g. "IIr", "XIVv").
	Folio string `json:"folio,omitempty" yaml:"folio,omitempty"`

	// Page mirrors Folio. The transcription convention records one
	// physical token per page break and both views are kept.
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// Line is the line number or range within the folio (e.g. "3", "12-14").
	Line string `json:"line,omitempty" yaml:"line,omitempty"`
}

// Entry is one commemorative record from the register: the main
// commemorated person, family members named alongside, the manuscript
// locus, and places attested in the entry text.
// Per prd005-assembly R1.1-R1.6.
type Entry struct {
	// EntryID is the external identifier. It is the entry element's id
	// attribute when present, otherwise "entry_NNN" formatted from
	// EntryNumber (R1.2).
	EntryID string `json:"entryId" yaml:"entryId"`

	// EntryNumber is the ordinal from the entry element's n attribute,
	// or the positional index when the attribute is absent or not numeric.
	EntryNumber int `json:"entryNumber" yaml:"entryNumber"`

	// MainPerson is the commemorated person. Always present, though its
	// fields may be empty when extraction found no usable name.
	MainPerson Person `json:"mainPerson" yaml:"mainPerson"`

	// FamilyMembers lists relatives named in the entry, in discovery
	// order. It never contains the main person's name (R1.4).
	FamilyMembers []Person `json:"familyMembers" yaml:"familyMembers"`

	// Manuscript is the folio/page/line locus for the entry.
	Manuscript ManuscriptRef `json:"manuscript" yaml:"manuscript"`

	// Dates holds chronological attributions. The register text carries
	// none, so this is an always-initialized empty placeholder (R1.5).
	Dates map[string]string `json:"dates" yaml:"dates"`

	// Notes is the normalized full text of the entry.
	Notes string `json:"notes" yaml:"notes"`

	// Places lists place names attested in the entry, deduplicated by
	// string equality, in order of first attestation (R1.6).
	Places []string `json:"places" yaml:"places"`
}
