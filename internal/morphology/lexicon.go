// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package morphology classifies Georgian name tokens by suffix shape and
// curated word lists.
// Implements: prd002-classification (R1-R5);
//
//	docs/ARCHITECTURE § Classification.
package morphology

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/gelati/matiane/internal/normalize"
	"github.com/gelati/matiane/pkg/types"
)

// KinshipMarker pairs an attested kinship word with the relationship it
// introduces. Markers are matched in list order.
type KinshipMarker struct {
	Marker   string           `json:"marker" yaml:"marker"`
	Relation types.PersonType `json:"relation" yaml:"relation"`
}

// RoleKeyword pairs an ecclesiastical title keyword with the person type
// it assigns. Keywords are checked in list order, so earlier entries take
// priority when a text mentions several titles.
type RoleKeyword struct {
	Keyword string           `json:"keyword" yaml:"keyword"`
	Role    types.PersonType `json:"role" yaml:"role"`
}

// Lexicon is the word-list configuration behind classification and
// free-text extraction. Order is significant in every list: suffixes and
// patterns are tried first to last, and the first match wins.
//
// The zero value is unusable; start from DefaultLexicon or Load.
type Lexicon struct {
	// PatronymicSuffixes are token endings that mark a patronymic or a
	// clan-style family name (R1.1).
	PatronymicSuffixes []string `json:"patronymic_suffixes" yaml:"patronymic_suffixes"`

	// PatronymicPatterns are regexp fragments appended to a Georgian
	// token stem to capture patronymic tokens in running text (R1.2).
	// The fragments are ordered; extraction keeps the first capture.
	PatronymicPatterns []string `json:"patronymic_patterns" yaml:"patronymic_patterns"`

	// SurnameSuffixes are token endings that mark a surname (R2.1).
	SurnameSuffixes []string `json:"surname_suffixes" yaml:"surname_suffixes"`

	// SurnamePatterns are the surname suffixes in text-capture order,
	// which differs from the suffix-check order (R2.2).
	SurnamePatterns []string `json:"surname_patterns" yaml:"surname_patterns"`

	// KnownPlaces is the curated allow-list of attested place names (R3.1).
	KnownPlaces []string `json:"known_places" yaml:"known_places"`

	// CommonPlaces are place names checked by literal containment
	// against full entry text during free-text extraction (R3.3).
	CommonPlaces []string `json:"common_places" yaml:"common_places"`

	// KinshipMarkers introduce family members in entry text (R4.1).
	KinshipMarkers []KinshipMarker `json:"kinship_markers" yaml:"kinship_markers"`

	// RoleKeywords assign ecclesiastical roles to main persons (R4.2).
	RoleKeywords []RoleKeyword `json:"role_keywords" yaml:"role_keywords"`

	// Abbreviations is the scribal abbreviation table for normalization.
	Abbreviations []normalize.Abbreviation `json:"abbreviations" yaml:"abbreviations"`
}

// DefaultLexicon returns the built-in lexicon for the Ṭbeti register.
func DefaultLexicon() Lexicon {
	return Lexicon{
		PatronymicSuffixes: []string{
			"შვილი", "სძე", "იძე", "ძე", "ისშვილი", "ანისძე",
			"ეთ", "ეთი", "აეთ", "იეთ", "უეთ", "ანთ", "ინთ",
		},
		PatronymicPatterns: []string{
			"(?:შვილი|სძე|იძე|ძე)",
			"ისშვილი",
			"ანისძე",
			"ეთ",
			"აეთ",
			"იეთ",
			"უეთ",
			"ანთ",
			"ინთ",
		},
		SurnameSuffixes: []string{"აძე", "ავაძე", "ელი"},
		SurnamePatterns: []string{"ელი", "აძე", "ავაძე"},
		KnownPlaces: []string{
			"მცხეთა", "თბილისი", "ქუთაისი", "ბათუმი", "ხანი",
			"სვანეთი", "იმერეთი", "კახეთი", "სამეგრელო", "გურია",
			"აჭარა", "ტაო", "კლარჯეთი", "ტბეთი", "ოშკი", "ხახული",
		},
		CommonPlaces: []string{"მცხეთა", "თბილისი", "ქუთაისი", "ტბეთი"},
		KinshipMarkers: []KinshipMarker{
			{Marker: "მეუღლესა", Relation: types.PersonWife},
			{Marker: "მეუღლისა", Relation: types.PersonWife},
			{Marker: "შვილი", Relation: types.PersonSon},
			{Marker: "ასული", Relation: types.PersonDaughter},
			{Marker: "ძმასა", Relation: types.PersonBrother},
			{Marker: "დასა", Relation: types.PersonSister},
		},
		RoleKeywords: []RoleKeyword{
			{Keyword: "მახარებელ", Role: types.PersonEvangelist},
			{Keyword: "ეპისკოპოს", Role: types.PersonBishop},
			{Keyword: "მღვდელ", Role: types.PersonPriest},
			{Keyword: "ბერ", Role: types.PersonMonk},
		},
		Abbreviations: normalize.DefaultAbbreviations(),
	}
}

// Load reads a lexicon YAML file and overlays it on the defaults: lists
// present in the file replace the built-in lists, absent lists keep their
// built-in values. This lets an override file carry only the lists that
// differ for another register.
func Load(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("reading lexicon %s: %w", path, err)
	}

	var overlay Lexicon
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Lexicon{}, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}

	lex := DefaultLexicon()
	if len(overlay.PatronymicSuffixes) > 0 {
		lex.PatronymicSuffixes = overlay.PatronymicSuffixes
	}
	if len(overlay.PatronymicPatterns) > 0 {
		lex.PatronymicPatterns = overlay.PatronymicPatterns
	}
	if len(overlay.SurnameSuffixes) > 0 {
		lex.SurnameSuffixes = overlay.SurnameSuffixes
	}
	if len(overlay.SurnamePatterns) > 0 {
		lex.SurnamePatterns = overlay.SurnamePatterns
	}
	if len(overlay.KnownPlaces) > 0 {
		lex.KnownPlaces = overlay.KnownPlaces
	}
	if len(overlay.CommonPlaces) > 0 {
		lex.CommonPlaces = overlay.CommonPlaces
	}
	if len(overlay.KinshipMarkers) > 0 {
		lex.KinshipMarkers = overlay.KinshipMarkers
	}
	if len(overlay.RoleKeywords) > 0 {
		lex.RoleKeywords = overlay.RoleKeywords
	}
	if len(overlay.Abbreviations) > 0 {
		lex.Abbreviations = overlay.Abbreviations
	}
	return lex, nil
}
