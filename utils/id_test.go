package utils

import (
	"strings"
	"testing"
)

func TestNewID_LengthAndAlphabet(t *testing.T) {
	const want = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + "_" + "abcdefghijklmnopqrstuvwxyz" + "-"
	if IDAlphabet != want || len(IDAlphabet) != 54 {
		t.Fatalf("unexpected alphabet %q (%d symbols)", IDAlphabet, len(IDAlphabet))
	}
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != IDLength {
			t.Fatalf("want %d chars, got %q", IDLength, id)
		}
		for _, r := range id {
			if !strings.ContainsRune(IDAlphabet, r) {
				t.Fatalf("symbol %q outside alphabet in %q", r, id)
			}
		}
		seen[id] = true
	}
	if len(seen) < 1000 {
		t.Fatalf("only %d distinct ids out of 1000", len(seen))
	}
}
