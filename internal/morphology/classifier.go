// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package morphology

import (
	"strings"

	"github.com/gelati/matiane/pkg/types"
)

// Classifier answers morphological questions about single Georgian name
// tokens. It is a set of independent heuristics, not a parser: a token is
// judged by its ending and by membership in curated lists.
type Classifier struct {
	lex         Lexicon
	knownPlaces map[string]bool
}

// NewClassifier builds a Classifier from a lexicon.
func NewClassifier(lex Lexicon) *Classifier {
	places := make(map[string]bool, len(lex.KnownPlaces))
	for _, p := range lex.KnownPlaces {
		places[p] = true
	}
	return &Classifier{lex: lex, knownPlaces: places}
}

// Lexicon returns the lexicon the classifier was built from.
func (c *Classifier) Lexicon() Lexicon {
	return c.lex
}

// IsPatronymic reports whether a token ends in a patronymic suffix (R1.1).
func (c *Classifier) IsPatronymic(token string) bool {
	for _, suffix := range c.lex.PatronymicSuffixes {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

// IsSurname reports whether a token ends in a surname suffix (R2.1).
func (c *Classifier) IsSurname(token string) bool {
	for _, suffix := range c.lex.SurnameSuffixes {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

// IsActualPlace reports whether a token names a place. Suffix checks run
// first: a token shaped like a patronymic or surname is never a place,
// even when the allow-list contains it. Region names in -ეთი fail here
// on purpose; precision is preferred over recall (R3.1, R3.2).
func (c *Classifier) IsActualPlace(token string) bool {
	if c.IsPatronymic(token) || c.IsSurname(token) {
		return false
	}
	return c.knownPlaces[token]
}

// RoleForText scans a full entry text for ecclesiastical title keywords
// and returns the role of the first keyword found, in lexicon priority
// order. Texts with no title keyword yield PersonMain (R4.2).
func (c *Classifier) RoleForText(text string) types.PersonType {
	lower := strings.ToLower(text)
	for _, rk := range c.lex.RoleKeywords {
		if strings.Contains(lower, rk.Keyword) {
			return rk.Role
		}
	}
	return types.PersonMain
}
