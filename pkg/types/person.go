// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PersonType categorizes a person's role in an entry. Main-person types
// come from role keywords in the entry text; family types come from the
// kinship marker that introduced the person.
// Per prd002-classification R4.1, prd004-freetext-fallback R5.1.
type PersonType string

const (
	PersonMain       PersonType = "main"
	PersonEvangelist PersonType = "evangelist"
	PersonBishop     PersonType = "bishop"
	PersonPriest     PersonType = "priest"
	PersonMonk       PersonType = "monk"
	PersonDeacon     PersonType = "deacon"
	PersonKtitor     PersonType = "ktitor"
	PersonWife       PersonType = "wife"
	PersonSon        PersonType = "son"
	PersonDaughter   PersonType = "daughter"
	PersonBrother    PersonType = "brother"
	PersonSister     PersonType = "sister"
)

// occupations maps ecclesiastical person types to occupation labels.
// Kinship types and "main" carry no occupation.
var occupations = map[PersonType]string{
	PersonEvangelist: "evangelist",
	PersonBishop:     "bishop",
	PersonPriest:     "priest",
	PersonMonk:       "monk",
	PersonDeacon:     "deacon",
	PersonKtitor:     "ktitor",
}

// OccupationForType returns the occupation label for a person type, or
// the empty string for types with no occupation mapping (R4.2).
func OccupationForType(t PersonType) string {
	return occupations[t]
}

// Person is a named individual within an entry.
// Per prd002-classification R1-R4, prd004-freetext-fallback R2-R5.
type Person struct {
	// Name is the person's given name as attested, normalized.
	Name string `json:"name" yaml:"name"`

	// Type is the person's role category.
	Type PersonType `json:"type" yaml:"type"`

	// Occupation is the fixed occupation label for Type. Empty for
	// kinship types and untyped main persons.
	Occupation string `json:"occupation" yaml:"occupation"`

	// Surname is a detected surname token, when one was found.
	Surname string `json:"surname,omitempty" yaml:"surname,omitempty"`

	// Patronymic is a detected patronymic token, when one was found.
	Patronymic string `json:"patronymic,omitempty" yaml:"patronymic,omitempty"`

	// Place is the place associated with the person (the first place
	// attested in the entry).
	Place string `json:"place,omitempty" yaml:"place,omitempty"`

	// Relationship is the literal kinship word that introduced a family
	// member (e.g. the attested form, not an English label). Empty for
	// main persons.
	Relationship string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
}
