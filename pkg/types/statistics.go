// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Statistics summarizes an extracted entry collection. All slices are
// sorted so repeated aggregation of the same input is byte-identical.
// Per prd006-aggregation R1-R4.
type Statistics struct {
	// TotalEntries is the number of entries in the collection.
	TotalEntries int `json:"total_entries" yaml:"total_entries"`

	// TotalPersons counts every person: each entry's main person plus
	// its family members.
	TotalPersons int `json:"total_persons" yaml:"total_persons"`

	// FamilyNames is the union of surnames and patronymics attested on
	// main persons. The two classes are intentionally pooled: both name
	// a family line (R2.3).
	FamilyNames []string `json:"family_names" yaml:"family_names"`

	// Places lists attested places that pass the place classifier.
	// Suffix-bearing name tokens that leaked into entry places are
	// filtered out here (R3.2).
	Places []string `json:"places" yaml:"places"`

	// Occupations lists the non-empty occupations of main persons.
	Occupations []string `json:"occupations" yaml:"occupations"`
}

// UniquePlaces returns the number of distinct attested places.
func (s Statistics) UniquePlaces() int { return len(s.Places) }

// UniqueOccupations returns the number of distinct occupations.
func (s Statistics) UniqueOccupations() int { return len(s.Occupations) }
