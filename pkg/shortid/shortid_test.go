package shortid

import (
	"strings"
	"testing"
)

func TestNewLengthAndAlphabet(t *testing.T) {
	t.Parallel()

	id, err := New(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 9 {
		t.Fatalf("expected length 9, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune(Alphabet, r) {
			t.Fatalf("character %q outside alphabet", r)
		}
	}
}

func TestNewDefaultsLength(t *testing.T) {
	t.Parallel()

	id, err := New(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != DefaultLength {
		t.Fatalf("expected default length %d, got %d", DefaultLength, len(id))
	}
}

func TestAlphabetExcludesConfusables(t *testing.T) {
	t.Parallel()

	for _, forbidden := range "0O1lI" {
		if strings.ContainsRune(Alphabet, forbidden) {
			t.Fatalf("alphabet must not contain %q", forbidden)
		}
	}
}

func TestNewIsNotConstant(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 32; i++ {
		id, err := New(9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[id] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct identifiers across draws")
	}
}
