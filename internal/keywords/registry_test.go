package keywords

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/faturalab/statement-scanner/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Uber", "uber"},
		{"UBER", "uber"},
		{"úber", "uber"},
		{"  99 Táxi  ", "99 taxi"},
		{"IFOOD", "ifood"},
		{"Cartão", "cartao"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.json")
	r, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestRegistryDefaults(t *testing.T) {
	r := newTestRegistry(t)
	keys := r.List()
	if len(keys) != 2 {
		t.Fatalf("expected 2 default keywords, got %d", len(keys))
	}
	if keys[0] != "uber" || keys[1] != "99" {
		t.Errorf("unexpected defaults: %v", keys)
	}
}

func TestRegistryAddDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	k, err := r.Add("ifood")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if k != "ifood" {
		t.Errorf("got %q, want %q", k, "ifood")
	}

	// Normalizes to the same form, so the second add must fail.
	if _, err := r.Add("Ifood"); !errors.Is(err, models.ErrDuplicateKeyword) {
		t.Errorf("expected ErrDuplicateKeyword, got %v", err)
	}
}

func TestRegistryAddInvalid(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Add("   "); !errors.Is(err, models.ErrInvalidKeyword) {
		t.Errorf("expected ErrInvalidKeyword, got %v", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Remove("UBER"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, k := range r.List() {
		if k == "uber" {
			t.Error("uber still listed after removal")
		}
	}

	// Removal is not idempotent: the second call must error.
	if err := r.Remove("uber"); !errors.Is(err, models.ErrKeywordNotFound) {
		t.Errorf("expected ErrKeywordNotFound, got %v", err)
	}
}

func TestRegistryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")

	r1, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := r1.Add("ifood"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r1.Remove("99"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	r2, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry (reload): %v", err)
	}
	got := r2.List()
	want := []models.Keyword{"uber", "ifood"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryListIsSnapshot(t *testing.T) {
	r := newTestRegistry(t)
	snapshot := r.List()

	if _, err := r.Add("ifood"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(snapshot) != 2 {
		t.Errorf("snapshot changed after mutation: %v", snapshot)
	}
}
