package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/store"
)

func setupStore(t *testing.T) *store.SQLite {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func writeCard(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write card: %v", err)
	}
	return path
}

const artoCard = `---
name: Arto Hellas
phone: 040-123543
street: Tapiolankatu 5 A
city: Espoo
---
Met at the fullstack course.
`

func TestImportCreatesContacts(t *testing.T) {
	s := setupStore(t)
	dir := t.TempDir()
	writeCard(t, dir, "arto.md", artoCard)
	writeCard(t, dir, "venla.md", `---
name: Venla Ruuska
street: Nallemäentie 22 C
city: Helsinki
---
`)
	writeCard(t, dir, "notes.txt", "not a card")

	result, err := Import(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Updated != 0 || len(result.Skipped) != 0 {
		t.Errorf("Updated = %d, Skipped = %v, want none", result.Updated, result.Skipped)
	}

	p, err := s.PersonByName(context.Background(), "Arto Hellas")
	if err != nil {
		t.Fatalf("PersonByName() error = %v", err)
	}
	if p == nil {
		t.Fatal("imported contact not found")
	}
	if p.Phone != "040-123543" {
		t.Errorf("Phone = %q, want %q", p.Phone, "040-123543")
	}
	if p.Notes != "Met at the fullstack course." {
		t.Errorf("Notes = %q, want card body", p.Notes)
	}
}

func TestImportUpdatesExisting(t *testing.T) {
	s := setupStore(t)
	p := &contact.Person{Name: "Arto Hellas", Street: "Old Street 1", City: "Espoo"}
	if err := s.CreatePerson(context.Background(), p); err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}

	dir := t.TempDir()
	writeCard(t, dir, "arto.md", artoCard)

	result, err := Import(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Errorf("Created = %d, Updated = %d, want 0 and 1", result.Created, result.Updated)
	}

	got, err := s.PersonByName(context.Background(), "Arto Hellas")
	if err != nil {
		t.Fatalf("PersonByName() error = %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID = %q, want existing %q", got.ID, p.ID)
	}
	if got.Street != "Tapiolankatu 5 A" {
		t.Errorf("Street = %q, want card value", got.Street)
	}
}

func TestImportSkipsInvalidCards(t *testing.T) {
	s := setupStore(t)
	dir := t.TempDir()
	writeCard(t, dir, "arto.md", artoCard)
	writeCard(t, dir, "bad.md", `---
name: Ed
street: Somewhere 1
city: Turku
---
`)

	result, err := Import(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("Skipped = %v, want 1 entry", result.Skipped)
	}
	if !contact.IsValidation(result.Skipped[0].Reason) {
		t.Errorf("skip reason = %v, want validation error", result.Skipped[0].Reason)
	}
}

func TestExportRoundTrip(t *testing.T) {
	s := setupStore(t)
	p := &contact.Person{
		Name:   "Arto Hellas",
		Phone:  "040-123543",
		Street: "Tapiolankatu 5 A",
		City:   "Espoo",
		Notes:  "Met at the fullstack course.",
	}
	if err := s.CreatePerson(context.Background(), p); err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}

	dir := t.TempDir()
	n, err := Export(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Export() = %d, want 1", n)
	}

	other := setupStore(t)
	if _, err := Import(context.Background(), other, dir); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	got, err := other.PersonByName(context.Background(), "Arto Hellas")
	if err != nil {
		t.Fatalf("PersonByName() error = %v", err)
	}
	if got == nil {
		t.Fatal("exported contact did not import")
	}
	if got.Phone != p.Phone || got.Street != p.Street || got.City != p.City {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Arto Hellas", "arto-hellas"},
		{"Matti Luukkainen", "matti-luukkainen"},
		{"O'Brien, Jr.", "obrien-jr"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWatcherImportsOnWrite(t *testing.T) {
	s := setupStore(t)
	dir := t.TempDir()

	synced := make(chan *Result, 1)
	w := NewWatcher(s, dir, func(r *Result, err error) {
		if err != nil {
			t.Errorf("watch sync error = %v", err)
			return
		}
		select {
		case synced <- r:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	writeCard(t, dir, "arto.md", artoCard)

	select {
	case r := <-synced:
		if r.Created != 1 {
			t.Errorf("Created = %d, want 1", r.Created)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not sync after card write")
	}

	p, err := s.PersonByName(context.Background(), "Arto Hellas")
	if err != nil {
		t.Fatalf("PersonByName() error = %v", err)
	}
	if p == nil {
		t.Error("contact not imported by watcher")
	}
}
