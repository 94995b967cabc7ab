package usecase

import (
	"context"
	"fmt"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/ports"
)

// LibraryView is the search-filtered, sorted, genre-grouped presentation of
// the library.
type LibraryView struct {
	Total   int                   `json:"total"`
	Entries []domain.LibraryEntry `json:"entries"`
	Groups  []GenreGroup          `json:"groups"`
}

// RecommendationView pairs the user's most common genre with up to three
// entries from it.
type RecommendationView struct {
	FavoriteGenre string                `json:"favorite_genre"`
	Entries       []domain.LibraryEntry `json:"entries"`
}

type LibraryUseCase struct {
	store ports.LibraryStore
}

func NewLibraryUseCase(store ports.LibraryStore) *LibraryUseCase {
	return &LibraryUseCase{store: store}
}

// Add normalizes the confirmed entry and appends it to the library. Entries
// are immutable once stored.
func (uc *LibraryUseCase) Add(ctx context.Context, entry domain.LibraryEntry) (domain.LibraryEntry, error) {
	normalized := entry.Normalized()
	if err := uc.store.Append(ctx, normalized); err != nil {
		return domain.LibraryEntry{}, fmt.Errorf("append library entry: %w", err)
	}
	return normalized, nil
}

// Count reports the current library size.
func (uc *LibraryUseCase) Count(ctx context.Context) (int, error) {
	entries, err := uc.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read library: %w", err)
	}
	return len(entries), nil
}

// View applies search, sort and genre grouping over the current library.
func (uc *LibraryUseCase) View(ctx context.Context, query string, key SortKey) (LibraryView, error) {
	entries, err := uc.store.All(ctx)
	if err != nil {
		return LibraryView{}, fmt.Errorf("read library: %w", err)
	}

	filtered := SortEntries(Search(entries, query), key)
	return LibraryView{
		Total:   len(filtered),
		Entries: filtered,
		Groups:  GroupByGenre(filtered),
	}, nil
}

// Recommendations derives the favorite genre over the whole library and
// picks up to three entries from it.
func (uc *LibraryUseCase) Recommendations(ctx context.Context) (RecommendationView, error) {
	entries, err := uc.store.All(ctx)
	if err != nil {
		return RecommendationView{}, fmt.Errorf("read library: %w", err)
	}

	favorite := FavoriteGenre(entries)
	if favorite == "" {
		return RecommendationView{}, nil
	}
	return RecommendationView{
		FavoriteGenre: favorite,
		Entries:       Recommend(favorite, entries),
	}, nil
}
