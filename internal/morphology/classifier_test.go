// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelati/matiane/pkg/types"
)

func TestIsPatronymic(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	tests := []struct {
		token string
		want  bool
	}{
		{"გიორგისშვილი", true}, // -შვილი
		{"დავითისძე", true},    // -სძე
		{"ბერიძე", true},       // -იძე
		{"თამარასძე", true},    // -სძე
		{"სვანეთი", true},      // region ending -ეთი
		{"კახეთ", true},        // -ეთ
		{"დადიანთ", true},      // clan ending -ანთ
		{"გიორგი", false},
		{"მარიამ", false},
		{"თბილისი", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsPatronymic(tt.token), "token %q", tt.token)
	}
}

func TestIsSurname(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	tests := []struct {
		token string
		want  bool
	}{
		{"ჭილაძე", true},   // -აძე
		{"მახარაძე", true}, // -აძე
		{"წერეთელი", true}, // -ელი
		{"გიორგი", false},
		{"მცხეთა", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsSurname(tt.token), "token %q", tt.token)
	}
}

func TestIsActualPlace(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	tests := []struct {
		token string
		want  bool
	}{
		{"მცხეთა", true},
		{"თბილისი", true},
		{"ქუთაისი", true},
		{"ოშკი", true},
		{"სამეგრელო", true},
		// Allow-listed regions ending in a patronymic suffix are
		// rejected by the suffix check.
		{"სვანეთი", false},
		{"იმერეთი", false},
		{"კახეთი", false},
		{"ტბეთი", false},
		{"კლარჯეთი", false},
		// Name tokens that are not places at all.
		{"გიორგი", false},
		{"ბერიძე", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsActualPlace(tt.token), "token %q", tt.token)
	}
}

// Classifier checks are mutually exclusive: a token judged patronymic or
// surname never also classifies as a place.
func TestClassifierMutualExclusion(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	tokens := []string{
		"გიორგისშვილი", "ბერიძე", "სვანეთი", "წერეთელი",
		"მცხეთა", "თბილისი", "გიორგი", "ტბეთი", "ხახული",
	}
	for _, tok := range tokens {
		if c.IsPatronymic(tok) || c.IsSurname(tok) {
			assert.False(t, c.IsActualPlace(tok), "token %q", tok)
		}
	}
}

func TestRoleForText(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	tests := []struct {
		name string
		text string
		want types.PersonType
	}{
		{"evangelist", "სულსა გიორგი მახარებელისასა შეუნდვენ", types.PersonEvangelist},
		{"bishop", "იოვანე ეპისკოპოსსა შეუნდვენ ღმერთმან", types.PersonBishop},
		{"priest", "სულსა პეტრე მღვდელისასა", types.PersonPriest},
		{"monk", "სულსა ბასილი ბერისასა", types.PersonMonk},
		{"no keyword", "სულსა გიორგისსა შეუნდვენ", types.PersonMain},
		{"empty text", "", types.PersonMain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.RoleForText(tt.text))
		})
	}
}

// Keyword priority is positional in the lexicon, not positional in the
// text: a text naming both an evangelist and a monk yields evangelist.
func TestRoleForTextPriority(t *testing.T) {
	c := NewClassifier(DefaultLexicon())

	got := c.RoleForText("ბერმან დაწერა სულსა მახარებელისასა")
	assert.Equal(t, types.PersonEvangelist, got)
}

func TestOccupationForType(t *testing.T) {
	tests := []struct {
		pt   types.PersonType
		want string
	}{
		{types.PersonEvangelist, "evangelist"},
		{types.PersonBishop, "bishop"},
		{types.PersonPriest, "priest"},
		{types.PersonMonk, "monk"},
		{types.PersonDeacon, "deacon"},
		{types.PersonKtitor, "ktitor"},
		{types.PersonMain, ""},
		{types.PersonWife, ""},
		{types.PersonSon, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, types.OccupationForType(tt.pt), "type %q", tt.pt)
	}
}

func TestLexiconAccessor(t *testing.T) {
	lex := DefaultLexicon()
	c := NewClassifier(lex)

	require.Equal(t, lex.KnownPlaces, c.Lexicon().KnownPlaces)
	require.Equal(t, lex.RoleKeywords, c.Lexicon().RoleKeywords)
}
