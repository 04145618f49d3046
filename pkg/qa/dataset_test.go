package qa_test

import (
	"testing"

	"github.com/easyops/pgdocs-qa/pkg/qa"
)

func TestDataset(t *testing.T) {
	entries := qa.Dataset()
	if len(entries) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(entries))
	}

	seen := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.ID] {
			t.Fatalf("duplicate entry ID %d", entry.ID)
		}
		seen[entry.ID] = true

		if entry.Question == "" {
			t.Fatalf("entry %d has empty question", entry.ID)
		}
		if entry.ReferenceAnswer == "" {
			t.Fatalf("entry %d has empty reference answer", entry.ID)
		}
		if entry.Category == "" {
			t.Fatalf("entry %d has empty category", entry.ID)
		}
	}
}

func TestDataset_ReturnsIndependentCopies(t *testing.T) {
	first := qa.Dataset()
	first[0].Question = "mutated"

	if qa.Dataset()[0].Question == "mutated" {
		t.Fatal("expected Dataset to return a fresh copy")
	}
}
