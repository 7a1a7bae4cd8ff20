// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package freetext recovers register entries from transcription text
// when structured markup is absent or broken.
// Implements: prd004-freetext-fallback (R1-R6);
//
//	docs/ARCHITECTURE § Free-Text Fallback.
package freetext

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gelati/matiane/internal/assemble"
	"github.com/gelati/matiane/internal/morphology"
	"github.com/gelati/matiane/internal/normalize"
	"github.com/gelati/matiane/pkg/types"
)

// georgianRun is the regexp fragment for a maximal run of Georgian
// script. The explicit code-point range U+10A0..U+10FF is deliberate:
// the Unicode Georgian property also covers supplement blocks the
// transcriptions never use.
const georgianRun = `[\x{10A0}-\x{10FF}]+`

var (
	// entryRe recovers literal entry spans that survive in broken
	// markup: an opening tag with a numeric n attribute through the
	// matching close tag (R1.1).
	entryRe = regexp.MustCompile(`(?s)<entry[^>]*n="(\d+)"[^>]*>(.*?)</entry>`)

	// blockRe finds Georgian text runs that mention a kinship stem,
	// the signature of a commemorative entry in plain text (R1.2).
	blockRe = regexp.MustCompile(`[\x{10A0}-\x{10FF}][^\n]*(?:მეუღლე|შვილი|ასული|ძმა|და)[^\n]*`)

	// georgianRunRe matches one maximal Georgian-script run.
	georgianRunRe = regexp.MustCompile(georgianRun)

	// placeTagRe captures placeName fragments still embedded in the
	// raw text (R4.1).
	placeTagRe = regexp.MustCompile(`<placeName[^>]*>(` + georgianRun + `)</placeName>`)

	// folioRe and lineRe capture editorial locus notes: folio tokens
	// like "f. IIr" and line tokens like "l. 3" or "l. 12-14" (R6.1).
	folioRe = regexp.MustCompile(`f\.\s*([IVXivx]+[rv]?)`)
	lineRe  = regexp.MustCompile(`l\.\s*(\d+(?:-\d+)?)`)
)

// kinshipPattern is one compiled family-member capture: a Georgian run
// followed by the marker word.
type kinshipPattern struct {
	re       *regexp.Regexp
	relation types.PersonType
	marker   string
}

// Extractor scans raw text with an ordered pattern battery compiled from
// the lexicon. Pattern order is first-match-wins throughout: earlier
// patterns in each list take the capture even when a later pattern would
// match a longer or earlier token.
type Extractor struct {
	classifier *morphology.Classifier
	normalizer *normalize.Normalizer

	patronymicRes []*regexp.Regexp
	surnameRes    []*regexp.Regexp
	kinship       []kinshipPattern
}

// NewExtractor compiles the pattern battery from the classifier's
// lexicon. Compilation fails only on an invalid override lexicon.
func NewExtractor(c *morphology.Classifier, n *normalize.Normalizer) (*Extractor, error) {
	lex := c.Lexicon()
	e := &Extractor{classifier: c, normalizer: n}

	for _, frag := range lex.PatronymicPatterns {
		re, err := regexp.Compile(`(` + georgianRun + frag + `)`)
		if err != nil {
			return nil, fmt.Errorf("compiling patronymic pattern %q: %w", frag, err)
		}
		e.patronymicRes = append(e.patronymicRes, re)
	}

	for _, sfx := range lex.SurnamePatterns {
		re, err := regexp.Compile(`(` + georgianRun + sfx + `)`)
		if err != nil {
			return nil, fmt.Errorf("compiling surname pattern %q: %w", sfx, err)
		}
		e.surnameRes = append(e.surnameRes, re)
	}

	for _, km := range lex.KinshipMarkers {
		re, err := regexp.Compile(`(` + georgianRun + `)\s*` + km.Marker)
		if err != nil {
			return nil, fmt.Errorf("compiling kinship pattern %q: %w", km.Marker, err)
		}
		e.kinship = append(e.kinship, kinshipPattern{re: re, relation: km.Relation, marker: km.Marker})
	}

	return e, nil
}

// MainPerson applies the main-person heuristic to entry text: the first
// Georgian run is the name, and the role keywords of the whole text give
// the type (R2.1, R2.2). ok is false when the text has no Georgian run.
func MainPerson(c *morphology.Classifier, text string) (types.Person, bool) {
	name := georgianRunRe.FindString(text)
	if name == "" {
		return types.Person{}, false
	}
	role := c.RoleForText(text)
	return types.Person{
		Name:       name,
		Type:       role,
		Occupation: types.OccupationForType(role),
	}, true
}

// ExtractTagged recovers entries from literal <entry n="N"> spans in the
// raw content, in document order. Inner text keeps whatever markup
// fragments it carries; the pattern battery reads through them (R1.1).
func (e *Extractor) ExtractTagged(content string, w io.Writer) []types.Entry {
	matches := entryRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []types.Entry{}
	}
	fmt.Fprintf(w, "recovered %d tagged entries\n", len(matches))

	entries := make([]types.Entry, 0, len(matches))
	for _, m := range matches {
		number, _ := strconv.Atoi(m[1])
		entry, err := e.parseEntry(m[2], number)
		if err != nil {
			fmt.Fprintf(w, "failed  entry %d: %v\n", number, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ExtractRuns recovers entries from bare Georgian text: each line-bound
// run mentioning a kinship stem becomes one entry, numbered 1..n in
// text order (R1.2).
func (e *Extractor) ExtractRuns(content string, w io.Writer) []types.Entry {
	blocks := blockRe.FindAllString(content, -1)
	if len(blocks) == 0 {
		return []types.Entry{}
	}
	fmt.Fprintf(w, "recovered %d georgian text blocks\n", len(blocks))

	entries := make([]types.Entry, 0, len(blocks))
	for i, block := range blocks {
		entry, err := e.parseEntry(block, i+1)
		if err != nil {
			fmt.Fprintf(w, "failed  entry %d: %v\n", i+1, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseEntry runs the per-entry battery over one raw text span. Steps
// run in fixed order: main person, patronymic, surname, family members,
// places, locus (R2-R6). The battery reads the span as transcribed;
// only the stored notes are normalized (R1.3). The deferred recover
// keeps one pathological span from aborting the batch.
func (e *Extractor) parseEntry(raw string, number int) (entry types.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing entry text: %v", r)
		}
	}()

	b := assemble.New(number, "")
	b.SetNotes(e.normalizer.Normalize(raw))

	main, ok := MainPerson(e.classifier, raw)
	if ok {
		b.SetMainPerson(main)
	}
	mainName := main.Name

	// Patronymic: first capture that is not the main name itself, in
	// pattern order then text order (R3.1). A capture equal to the main
	// name is skipped, not final.
	patronymic := ""
	for _, re := range e.patronymicRes {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if m[1] != mainName {
				patronymic = m[1]
				break
			}
		}
		if patronymic != "" {
			b.SetMainPatronymic(patronymic)
			break
		}
	}

	// Surname: first capture distinct from the main name and the
	// patronymic that is not itself patronymic-shaped (R3.2). A failed
	// candidate does not stop the scan; later matches and later
	// patterns still run.
	surname := ""
	for _, re := range e.surnameRes {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			candidate := m[1]
			if candidate != mainName && candidate != patronymic && !e.classifier.IsPatronymic(candidate) {
				surname = candidate
				break
			}
		}
		if surname != "" {
			b.SetMainSurname(surname)
			break
		}
	}

	// Family members: every kinship match in marker order. Son and
	// daughter captures shaped like patronymics are genitive stems of
	// the main name, not persons; wife, brother, and sister captures
	// are taken as attested (R5.1-R5.3).
	for _, kp := range e.kinship {
		for _, m := range kp.re.FindAllStringSubmatch(raw, -1) {
			name := m[1]
			if name == mainName {
				continue
			}
			if (kp.relation == types.PersonSon || kp.relation == types.PersonDaughter) && e.classifier.IsPatronymic(name) {
				continue
			}
			b.AddFamilyMember(types.Person{
				Name:         name,
				Type:         kp.relation,
				Relationship: kp.marker,
			})
		}
	}

	// Places: tagged fragments pass the place classifier; the common
	// places are checked by literal containment regardless (R4.1, R4.2).
	for _, m := range placeTagRe.FindAllStringSubmatch(raw, -1) {
		if e.classifier.IsActualPlace(m[1]) {
			b.AddPlace(m[1])
		}
	}
	for _, place := range e.classifier.Lexicon().CommonPlaces {
		if strings.Contains(raw, place) {
			b.AddPlace(place)
		}
	}

	// Locus from editorial notes.
	if m := folioRe.FindStringSubmatch(raw); m != nil {
		b.SetPageFolio(m[1])
	}
	if m := lineRe.FindStringSubmatch(raw); m != nil {
		b.SetLine(m[1])
	}

	return b.Build(), nil
}
