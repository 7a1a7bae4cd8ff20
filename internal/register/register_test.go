package register

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/gelati/matiane/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	registerDir := filepath.Join(t.TempDir(), "register")

	store, err := NewStore(types.RegisterConfig{RegisterDir: registerDir, MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, registerDir
}

func sampleEntries() []types.Entry {
	return []types.Entry{
		{
			EntryID:     "entry_001",
			EntryNumber: 1,
			MainPerson: types.Person{
				Name: "გიორგი", Type: types.PersonPriest, Occupation: "priest",
				Patronymic: "დავითისძე", Place: "მცხეთა",
			},
			FamilyMembers: []types.Person{
				{Name: "ნინო", Type: types.PersonWife, Occupation: "", Relationship: "მეუღლესა"},
			},
			Manuscript: types.ManuscriptRef{Folio: "IIr", Page: "IIr", Line: "3"},
			Dates:      map[string]string{"commemoration": "XII"},
			Notes:      "სულსა გიორგი დავითისძესა შეუნდვენ",
			Places:     []string{"მცხეთა"},
		},
		{
			EntryID:       "entry_002",
			EntryNumber:   2,
			MainPerson:    types.Person{Name: "თამარ", Type: types.PersonMain},
			FamilyMembers: []types.Person{},
			Dates:         map[string]string{},
			Notes:         "თამარისა და ძეთა მისთა",
			Places:        []string{},
		},
		{
			EntryID:       "entry_003",
			EntryNumber:   3,
			MainPerson:    types.Person{Name: "იოანე", Type: types.PersonBishop, Occupation: "bishop"},
			FamilyMembers: []types.Person{},
			Dates:         map[string]string{},
			Notes:         "იოანე ეპისკოპოსი ტბეთისა",
			Places:        []string{"ტბეთი"},
		},
	}
}

func ingestSample(t *testing.T, store *Store) IngestSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), sampleEntries(), "tbeti.xml", &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testStore(t)

	tables := []string{"entries", "persons", "runs", "entries_fts"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	_, registerDir := testStore(t)

	if _, err := os.Stat(filepath.Join(registerDir, dbFile)); os.IsNotExist(err) {
		t.Errorf("database file not created in %s", registerDir)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, _ := testStore(t)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), sampleEntries(), "tbeti.xml", &buf)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if summary.Stored != 3 || summary.Replaced != 0 {
		t.Errorf("summary = %+v, want 3 stored, 0 replaced", summary)
	}
	if summary.RunID == "" {
		t.Error("summary has no run id")
	}
	if !strings.Contains(buf.String(), "stored 3 entries") {
		t.Errorf("output = %q, want stored count", buf.String())
	}
}

func TestIngestRoundTripsAllFields(t *testing.T) {
	store, _ := testStore(t)
	summary := ingestSample(t, store)

	results, err := store.Retrieve(context.Background(), QueryOptions{Number: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.EntryID != "entry_001" || r.EntryNumber != 1 {
		t.Errorf("id/number = %q/%d, want entry_001/1", r.EntryID, r.EntryNumber)
	}
	if r.MainPerson.Name != "გიორგი" || r.MainPerson.Type != types.PersonPriest {
		t.Errorf("main person = %+v, want გიორგი (priest)", r.MainPerson)
	}
	if r.MainPerson.Patronymic != "დავითისძე" || r.MainPerson.Place != "მცხეთა" {
		t.Errorf("main person = %+v, want patronymic and place kept", r.MainPerson)
	}
	if len(r.FamilyMembers) != 1 {
		t.Fatalf("family = %+v, want 1 member", r.FamilyMembers)
	}
	fm := r.FamilyMembers[0]
	if fm.Name != "ნინო" || fm.Type != types.PersonWife || fm.Relationship != "მეუღლესა" {
		t.Errorf("family member = %+v, want wife ნინო with marker", fm)
	}
	if r.Manuscript.Folio != "IIr" || r.Manuscript.Line != "3" {
		t.Errorf("manuscript = %+v, want folio IIr line 3", r.Manuscript)
	}
	if len(r.Places) != 1 || r.Places[0] != "მცხეთა" {
		t.Errorf("places = %v, want [მცხეთა]", r.Places)
	}
	if r.Dates["commemoration"] != "XII" {
		t.Errorf("dates = %v, want commemoration XII", r.Dates)
	}
	if r.Notes != "სულსა გიორგი დავითისძესა შეუნდვენ" {
		t.Errorf("notes = %q, want original notes", r.Notes)
	}
	if r.Source != "tbeti.xml" {
		t.Errorf("source = %q, want tbeti.xml", r.Source)
	}
	if r.RunID != summary.RunID {
		t.Errorf("run id = %q, want %q", r.RunID, summary.RunID)
	}
}

func TestIngestReplacesExisting(t *testing.T) {
	store, _ := testStore(t)
	ingestSample(t, store)

	changed := sampleEntries()[0]
	changed.Notes = "განახლებული ჩანაწერი"
	changed.FamilyMembers = []types.Person{}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), []types.Entry{changed}, "tbeti_v2.xml", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Stored != 0 || summary.Replaced != 1 {
		t.Errorf("summary = %+v, want 0 stored, 1 replaced", summary)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Number: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (old row replaced, not duplicated)", len(results))
	}
	if results[0].Notes != "განახლებული ჩანაწერი" {
		t.Errorf("notes = %q, want replacement notes", results[0].Notes)
	}
	if len(results[0].FamilyMembers) != 0 {
		t.Errorf("family = %+v, want old persons removed", results[0].FamilyMembers)
	}

	// The replaced notes must also win in the FTS index.
	hits, err := store.Retrieve(context.Background(), QueryOptions{Query: "განახლებული"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d FTS hits for new notes, want 1", len(hits))
	}
	stale, err := store.Retrieve(context.Background(), QueryOptions{Query: "შეუნდვენ"})
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Errorf("got %d FTS hits for replaced notes, want 0", len(stale))
	}
}

func TestIngestRecordsRun(t *testing.T) {
	store, _ := testStore(t)
	summary := ingestSample(t, store)

	var source string
	var count int
	err := store.db.QueryRow(
		`SELECT source, entry_count FROM runs WHERE id = ?`, summary.RunID,
	).Scan(&source, &count)
	if err != nil {
		t.Fatal(err)
	}
	if source != "tbeti.xml" {
		t.Errorf("run source = %q, want tbeti.xml", source)
	}
	if count != 3 {
		t.Errorf("run entry count = %d, want 3", count)
	}

	ingestSample(t, store)
	var runs int
	if err := store.db.QueryRow(`SELECT count(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want one row per ingest", runs)
	}
}

// --- retrieve tests ---

func TestRetrieveFullTextSearch(t *testing.T) {
	store, _ := testStore(t)
	ingestSample(t, store)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantID    string
	}{
		{"notes token", "ეპისკოპოსი", 1, "entry_003"},
		{"formula word", "სულსა", 1, "entry_001"},
		{"no match", "არარსებული", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), QueryOptions{Query: tt.query})
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.wantCount {
				t.Fatalf("got %d results, want %d", len(results), tt.wantCount)
			}
			if tt.wantID != "" && results[0].EntryID != tt.wantID {
				t.Errorf("result = %q, want %q", results[0].EntryID, tt.wantID)
			}
		})
	}
}

func TestRetrieveStructuredFilters(t *testing.T) {
	store, _ := testStore(t)
	ingestSample(t, store)

	tests := []struct {
		name    string
		opts    QueryOptions
		wantIDs []string
	}{
		{"by occupation", QueryOptions{Occupation: "priest"}, []string{"entry_001"}},
		{"by place", QueryOptions{Place: "ტბეთი"}, []string{"entry_003"}},
		{"by family member type", QueryOptions{Type: types.PersonWife}, []string{"entry_001"}},
		{"by entry number", QueryOptions{Number: 2}, []string{"entry_002"}},
		{"fts with place filter", QueryOptions{Query: "იოანე", Place: "ტბეთი"}, []string{"entry_003"}},
		{"filter excludes fts hit", QueryOptions{Query: "იოანე", Place: "მცხეთა"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if results[i].EntryID != want {
					t.Errorf("result %d = %q, want %q", i, results[i].EntryID, want)
				}
			}
		})
	}
}

func TestRetrieveOrdersByNumber(t *testing.T) {
	store, _ := testStore(t)
	ingestSample(t, store)

	results, err := store.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []int{1, 2, 3} {
		if results[i].EntryNumber != want {
			t.Errorf("result %d number = %d, want %d", i, results[i].EntryNumber, want)
		}
	}
}

func TestRetrieveRespectsMaxResults(t *testing.T) {
	store, _ := testStore(t)
	ingestSample(t, store)

	results, err := store.Retrieve(context.Background(), QueryOptions{MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("zero options should be empty")
	}
	if (QueryOptions{Place: "ტბეთი"}).IsEmpty() {
		t.Error("options with a place filter should not be empty")
	}
	if (QueryOptions{Number: 4}).IsEmpty() {
		t.Error("options with a number filter should not be empty")
	}
}

// --- export tests ---

func TestExportJSON(t *testing.T) {
	store, registerDir := testStore(t)
	ingestSample(t, store)

	if err := store.ExportJSON(context.Background(), QueryOptions{}); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(registerDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var entries []StoredEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("exported %d entries, want 3", len(entries))
	}
	if entries[0].EntryID != "entry_001" || entries[0].Source != "tbeti.xml" {
		t.Errorf("entries[0] = %+v, want entry_001 from tbeti.xml", entries[0])
	}
}

func TestExportYAML(t *testing.T) {
	store, registerDir := testStore(t)
	ingestSample(t, store)

	if err := store.ExportYAML(context.Background(), QueryOptions{Occupation: "bishop"}); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(registerDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var entries []StoredEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(entries) != 1 || entries[0].EntryID != "entry_003" {
		t.Errorf("entries = %+v, want only the bishop entry", entries)
	}
}

func TestExportEmptyRegister(t *testing.T) {
	store, registerDir := testStore(t)

	if err := store.ExportYAML(context.Background(), QueryOptions{}); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(registerDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[]") {
		t.Errorf("export = %q, want empty list, not null", data)
	}
}
