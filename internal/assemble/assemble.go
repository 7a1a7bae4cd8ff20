// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble builds Entry records incrementally during extraction.
// Implements: prd005-assembly (R1-R3);
//
//	docs/ARCHITECTURE § Assembly.
package assemble

import (
	"fmt"

	"github.com/gelati/matiane/pkg/types"
)

// Builder accumulates one entry during extraction and freezes it into a
// types.Entry. Both extractors funnel their findings through a Builder so
// record-shape rules (defaults, deduplication, main-person exclusion)
// live in one place.
type Builder struct {
	entry types.Entry
}

// New starts a builder for the entry with the given ordinal and external
// id. An empty id is replaced with "entry_NNN" formatted from the
// ordinal (R1.2). All collection fields start initialized so an entry
// with no findings still serializes with its placeholders (R1.5).
func New(number int, id string) *Builder {
	if id == "" {
		id = fmt.Sprintf("entry_%03d", number)
	}
	return &Builder{
		entry: types.Entry{
			EntryID:       id,
			EntryNumber:   number,
			MainPerson:    types.Person{Type: types.PersonMain},
			FamilyMembers: []types.Person{},
			Dates:         map[string]string{},
			Places:        []string{},
		},
	}
}

// SetNotes records the normalized entry text.
func (b *Builder) SetNotes(notes string) {
	b.entry.Notes = notes
}

// SetMainPerson replaces the main person wholesale. A later call wins;
// extraction uses this when a person explicitly marked as main appears
// after a provisional one (R2.1). Family members already recorded under
// the new name are dropped: the main person must never appear in their
// own family list, whichever side is recorded first (R2.3).
func (b *Builder) SetMainPerson(p types.Person) {
	b.entry.MainPerson = p
	if p.Name == "" {
		return
	}
	kept := b.entry.FamilyMembers[:0]
	for _, m := range b.entry.FamilyMembers {
		if m.Name != p.Name {
			kept = append(kept, m)
		}
	}
	b.entry.FamilyMembers = kept
}

// MainPerson returns the main person as currently assembled.
func (b *Builder) MainPerson() types.Person {
	return b.entry.MainPerson
}

// SetMainSurname records a detected surname on the main person.
func (b *Builder) SetMainSurname(surname string) {
	b.entry.MainPerson.Surname = surname
}

// SetMainPatronymic records a detected patronymic on the main person.
func (b *Builder) SetMainPatronymic(patronymic string) {
	b.entry.MainPerson.Patronymic = patronymic
}

// AddFamilyMember appends a family member in discovery order. A member
// whose name equals the main person's name is silently dropped: kinship
// phrasing often repeats the commemorated name, and the main person must
// never appear in their own family list (R2.3).
func (b *Builder) AddFamilyMember(p types.Person) {
	if p.Name != "" && p.Name == b.entry.MainPerson.Name {
		return
	}
	b.entry.FamilyMembers = append(b.entry.FamilyMembers, p)
}

// AddPlace records an attested place. Duplicates by string equality are
// dropped; the first place recorded also fills the main person's place
// when it is still empty (R3.1, R3.2).
func (b *Builder) AddPlace(place string) {
	if place == "" {
		return
	}
	for _, p := range b.entry.Places {
		if p == place {
			return
		}
	}
	b.entry.Places = append(b.entry.Places, place)
	if b.entry.MainPerson.Place == "" {
		b.entry.MainPerson.Place = place
	}
}

// SetLine records the manuscript line marker. The last marker seen wins.
func (b *Builder) SetLine(line string) {
	b.entry.Manuscript.Line = line
}

// SetPageFolio records the manuscript page break token on both the page
// and folio views. The last marker seen wins.
func (b *Builder) SetPageFolio(token string) {
	b.entry.Manuscript.Page = token
	b.entry.Manuscript.Folio = token
}

// Build returns the assembled entry. Extraction builds each entry with a
// fresh Builder and never touches the record again (R1.1).
func (b *Builder) Build() types.Entry {
	return b.entry
}
