package importer

import (
	"testing"
	"time"

	"github.com/lazypower/tend/internal/store"
)

var anchor = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportBasic(t *testing.T) {
	db := testDB(t)

	csv := "name,category,frequencydays,email\nAlice,Family,7,alice@example.com\nBob,Work,30,\n"
	res, err := Import(db, []byte(csv), anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 2 {
		t.Errorf("added = %d, want 2", res.Added)
	}

	alice, err := db.GetFriendByName("Alice")
	if err != nil {
		t.Fatalf("GetFriendByName: %v", err)
	}
	if alice == nil {
		t.Fatal("Alice not imported")
	}
	if alice.FrequencyDays != 7 {
		t.Errorf("frequencyDays = %d, want 7", alice.FrequencyDays)
	}
	if alice.Category != "Family" {
		t.Errorf("category = %q, want Family", alice.Category)
	}
	if alice.Email != "alice@example.com" {
		t.Errorf("email = %q", alice.Email)
	}
	if alice.IndividualScore != 50 {
		t.Errorf("score = %d, want 50", alice.IndividualScore)
	}
}

func TestImportDefaultFrequency(t *testing.T) {
	db := testDB(t)

	res, err := Import(db, []byte("name\nCarol\n"), anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 1 {
		t.Fatalf("added = %d, want 1", res.Added)
	}

	carol, _ := db.GetFriendByName("Carol")
	if carol.FrequencyDays != defaultFrequencyDays {
		t.Errorf("frequencyDays = %d, want %d", carol.FrequencyDays, defaultFrequencyDays)
	}
}

func TestImportDetectsDuplicates(t *testing.T) {
	db := testDB(t)

	if _, err := Import(db, []byte("name\nAlice Smith\n"), anchor); err != nil {
		t.Fatalf("Import: %v", err)
	}

	// Exact, case-variant, and diacritic-variant names all collide;
	// within one file the second Dave row collides with the first.
	csv := "name\nalice smith\nAlíce Smíth\nDave\nDave\n"
	res, err := Import(db, []byte(csv), anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 1 {
		t.Errorf("added = %d, want 1 (only the first Dave)", res.Added)
	}
	if len(res.Duplicates) != 3 {
		t.Errorf("duplicates = %d, want 3: %v", len(res.Duplicates), res.Duplicates)
	}
}

func TestImportSkipsBadRows(t *testing.T) {
	db := testDB(t)

	csv := "name,frequencydays\n,7\nEve,zero\nFrank,-1\nGrace,5\n"
	res, err := Import(db, []byte(csv), anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 1 {
		t.Errorf("added = %d, want 1", res.Added)
	}
	if len(res.Skipped) != 3 {
		t.Errorf("skipped = %d, want 3: %v", len(res.Skipped), res.Skipped)
	}
}

func TestImportNoNameColumn(t *testing.T) {
	db := testDB(t)
	if _, err := Import(db, []byte("email\nx@example.com\n"), anchor); err == nil {
		t.Error("expected error for missing name column")
	}
}

func TestImportUTF8BOM(t *testing.T) {
	db := testDB(t)

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nHélène\n")...)
	res, err := Import(db, data, anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 1 {
		t.Fatalf("added = %d, want 1", res.Added)
	}
	if f, _ := db.GetFriendByName("Hélène"); f == nil {
		t.Error("BOM not stripped before header parse")
	}
}

func TestImportLatin1Fallback(t *testing.T) {
	db := testDB(t)

	// "Hélène" in Latin-1: invalid as UTF-8, must fall back.
	data := []byte("name\nH\xe9l\xe8ne\n")
	res, err := Import(db, data, anchor)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Added != 1 {
		t.Fatalf("added = %d, want 1", res.Added)
	}
	if f, _ := db.GetFriendByName("Hélène"); f == nil {
		t.Error("latin-1 name not decoded")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Alice", "alice"},
		{"  Alice   Smith ", "alice smith"},
		{"Zoë", "zoe"},
		{"ALÍCE", "alice"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Alice Smith", "alice smith", true},
		{"Zoë", "Zoe", true},
		{"Alice Smith", "Bob Jones", false},
		{"", "", false},
		{"Christopher Nolan", "Christopher Nolans", true},
	}
	for _, tt := range tests {
		if got := namesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("namesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
