// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gelati/matiane/pkg/types"
)

func TestNewDefaults(t *testing.T) {
	entry := New(7, "").Build()

	if entry.EntryID != "entry_007" {
		t.Errorf("EntryID = %q, want entry_007", entry.EntryID)
	}
	if entry.EntryNumber != 7 {
		t.Errorf("EntryNumber = %d, want 7", entry.EntryNumber)
	}
	if entry.MainPerson.Type != types.PersonMain {
		t.Errorf("MainPerson.Type = %q, want main", entry.MainPerson.Type)
	}
	if entry.FamilyMembers == nil || len(entry.FamilyMembers) != 0 {
		t.Errorf("FamilyMembers = %v, want empty non-nil slice", entry.FamilyMembers)
	}
	if entry.Dates == nil || len(entry.Dates) != 0 {
		t.Errorf("Dates = %v, want empty non-nil map", entry.Dates)
	}
	if entry.Places == nil || len(entry.Places) != 0 {
		t.Errorf("Places = %v, want empty non-nil slice", entry.Places)
	}
}

func TestNewExplicitID(t *testing.T) {
	entry := New(3, "ms-p10-003").Build()
	if entry.EntryID != "ms-p10-003" {
		t.Errorf("EntryID = %q, want ms-p10-003", entry.EntryID)
	}
}

// Empty placeholders serialize as {} and [], never null. Downstream
// consumers index into these fields unconditionally.
func TestEmptyEntrySerialization(t *testing.T) {
	data, err := json.Marshal(New(1, "").Build())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	for _, want := range []string{`"dates":{}`, `"familyMembers":[]`, `"places":[]`} {
		if !strings.Contains(s, want) {
			t.Errorf("serialized entry missing %s: %s", want, s)
		}
	}
	if strings.Contains(s, "null") {
		t.Errorf("serialized entry contains null: %s", s)
	}
}

func TestAddFamilyMemberExcludesMainPerson(t *testing.T) {
	b := New(1, "")
	b.SetMainPerson(types.Person{Name: "გიორგი", Type: types.PersonMain})

	b.AddFamilyMember(types.Person{Name: "გიორგი", Type: types.PersonSon, Relationship: "შვილი"})
	b.AddFamilyMember(types.Person{Name: "მარიამ", Type: types.PersonWife, Relationship: "მეუღლესა"})

	entry := b.Build()
	if len(entry.FamilyMembers) != 1 {
		t.Fatalf("got %d family members, want 1", len(entry.FamilyMembers))
	}
	if entry.FamilyMembers[0].Name != "მარიამ" {
		t.Errorf("family member = %q, want მარიამ", entry.FamilyMembers[0].Name)
	}
}

func TestAddFamilyMemberKeepsDiscoveryOrder(t *testing.T) {
	b := New(1, "")
	for _, name := range []string{"თამარ", "დავით", "ნინო"} {
		b.AddFamilyMember(types.Person{Name: name, Type: types.PersonSon})
	}

	entry := b.Build()
	want := []string{"თამარ", "დავით", "ნინო"}
	for i, fm := range entry.FamilyMembers {
		if fm.Name != want[i] {
			t.Errorf("FamilyMembers[%d] = %q, want %q", i, fm.Name, want[i])
		}
	}
}

func TestAddPlace(t *testing.T) {
	b := New(1, "")
	b.SetMainPerson(types.Person{Name: "გიორგი", Type: types.PersonMain})

	b.AddPlace("მცხეთა")
	b.AddPlace("ტბეთი")
	b.AddPlace("მცხეთა") // duplicate
	b.AddPlace("")       // empty

	entry := b.Build()
	if len(entry.Places) != 2 {
		t.Fatalf("Places = %v, want 2 entries", entry.Places)
	}
	if entry.Places[0] != "მცხეთა" || entry.Places[1] != "ტბეთი" {
		t.Errorf("Places = %v, want [მცხეთა ტბეთი]", entry.Places)
	}
	// First place recorded fills the main person's place.
	if entry.MainPerson.Place != "მცხეთა" {
		t.Errorf("MainPerson.Place = %q, want მცხეთა", entry.MainPerson.Place)
	}
}

func TestAddPlaceKeepsExistingMainPlace(t *testing.T) {
	b := New(1, "")
	b.SetMainPerson(types.Person{Name: "გიორგი", Type: types.PersonMain, Place: "ოშკი"})

	b.AddPlace("მცხეთა")

	if got := b.Build().MainPerson.Place; got != "ოშკი" {
		t.Errorf("MainPerson.Place = %q, want ოშკი", got)
	}
}

func TestSetMainPersonReplaces(t *testing.T) {
	b := New(1, "")
	b.SetMainPerson(types.Person{Name: "იოვანე", Type: types.PersonMain})
	b.SetMainPerson(types.Person{Name: "გიორგი", Type: types.PersonBishop, Occupation: "bishop"})

	mp := b.Build().MainPerson
	if mp.Name != "გიორგი" || mp.Type != types.PersonBishop {
		t.Errorf("MainPerson = %+v, want the replacement", mp)
	}
}

func TestSetMainPersonPurgesSameNamedFamily(t *testing.T) {
	b := New(1, "")
	b.SetMainPerson(types.Person{Name: "გიორგი", Type: types.PersonMain})
	b.AddFamilyMember(types.Person{Name: "ნინო", Type: types.PersonWife, Relationship: "მეუღლესა"})
	b.AddFamilyMember(types.Person{Name: "დავით", Type: types.PersonSon, Relationship: "შვილი"})

	// ნინო was family until a later finding promoted her to main.
	b.SetMainPerson(types.Person{Name: "ნინო", Type: types.PersonMain})

	entry := b.Build()
	if entry.MainPerson.Name != "ნინო" {
		t.Errorf("MainPerson = %q, want ნინო", entry.MainPerson.Name)
	}
	if len(entry.FamilyMembers) != 1 || entry.FamilyMembers[0].Name != "დავით" {
		t.Errorf("family = %+v, want only დავით", entry.FamilyMembers)
	}
}

func TestManuscriptMarkersLastWins(t *testing.T) {
	b := New(1, "")
	b.SetPageFolio("IIr")
	b.SetLine("3")
	b.SetPageFolio("IIv")
	b.SetLine("14-16")

	m := b.Build().Manuscript
	if m.Page != "IIv" || m.Folio != "IIv" {
		t.Errorf("Page/Folio = %q/%q, want IIv/IIv", m.Page, m.Folio)
	}
	if m.Line != "14-16" {
		t.Errorf("Line = %q, want 14-16", m.Line)
	}
}
