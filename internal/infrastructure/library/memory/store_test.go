package memory

import (
	"context"
	"testing"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

func TestAppendPreservesInsertionOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := store.Append(ctx, domain.LibraryEntry{Title: title}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Title != "first" || entries[2].Title != "third" {
		t.Fatalf("insertion order lost: %+v", entries)
	}
}

func TestAllReturnsIsolatedSnapshot(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Append(ctx, domain.LibraryEntry{Title: "original"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	snapshot, _ := store.All(ctx)
	snapshot[0].Title = "mutated"

	again, _ := store.All(ctx)
	if again[0].Title != "original" {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}

func TestDuplicatesAreAllowed(t *testing.T) {
	store := New()
	ctx := context.Background()
	e := domain.LibraryEntry{Title: "same"}

	_ = store.Append(ctx, e)
	_ = store.Append(ctx, e)

	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
}
