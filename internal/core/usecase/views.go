package usecase

import (
	"fmt"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

// SortKey selects the field library views are ordered by.
type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
	SortByGenre  SortKey = "genre"
)

// ParseSortKey maps a request parameter to a sort key. An empty value
// defaults to title, matching the original ordering choices.
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "title":
		return SortByTitle, nil
	case "author":
		return SortByAuthor, nil
	case "genre":
		return SortByGenre, nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "parse sort key", fmt.Errorf("unknown sort key %q", value))
	}
}

// Search returns the entries whose title, author or genre contains the query,
// case-insensitively. An empty query returns the input unchanged.
func Search(entries []domain.LibraryEntry, query string) []domain.LibraryEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	var matched []domain.LibraryEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Title), q) ||
			strings.Contains(strings.ToLower(entry.Author), q) ||
			strings.Contains(strings.ToLower(entry.Genre), q) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// SortEntries returns a stably sorted copy; ties keep library order.
// Comparison is case-sensitive on the raw field values.
func SortEntries(entries []domain.LibraryEntry, key SortKey) []domain.LibraryEntry {
	sorted := make([]domain.LibraryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortField(sorted[i], key) < sortField(sorted[j], key)
	})
	return sorted
}

func sortField(entry domain.LibraryEntry, key SortKey) string {
	switch key {
	case SortByAuthor:
		return entry.Author
	case SortByGenre:
		return entry.Genre
	default:
		return entry.Title
	}
}

// GenreGroup is one genre's bucket in a grouped view, in first-seen order.
type GenreGroup struct {
	Genre   string                `json:"genre"`
	Entries []domain.LibraryEntry `json:"entries"`
}

// GroupByGenre buckets entries by genre, preserving both the order genres
// first appear in and the order of entries within each genre.
func GroupByGenre(entries []domain.LibraryEntry) []GenreGroup {
	groups := orderedmap.New[string, []domain.LibraryEntry]()
	for _, entry := range entries {
		bucket, _ := groups.Get(entry.Genre)
		groups.Set(entry.Genre, append(bucket, entry))
	}

	out := make([]GenreGroup, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, GenreGroup{Genre: pair.Key, Entries: pair.Value})
	}
	return out
}

// FavoriteGenre returns the most common genre across the library. Ties go to
// the genre encountered first, so the result is deterministic for a given
// input order. Returns "" for an empty library.
func FavoriteGenre(entries []domain.LibraryEntry) string {
	counts := orderedmap.New[string, int]()
	for _, entry := range entries {
		n, _ := counts.Get(entry.Genre)
		counts.Set(entry.Genre, n+1)
	}

	favorite := ""
	best := 0
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value > best {
			favorite = pair.Key
			best = pair.Value
		}
	}
	return favorite
}

// Recommend returns up to three entries of the given genre, in library
// order, with exact duplicates removed.
func Recommend(genre string, entries []domain.LibraryEntry) []domain.LibraryEntry {
	var recommendations []domain.LibraryEntry
	for _, entry := range entries {
		if entry.Genre != genre {
			continue
		}
		if containsEntry(recommendations, entry) {
			continue
		}
		recommendations = append(recommendations, entry)
		if len(recommendations) == 3 {
			break
		}
	}
	return recommendations
}

func containsEntry(entries []domain.LibraryEntry, candidate domain.LibraryEntry) bool {
	for _, entry := range entries {
		if entry == candidate {
			return true
		}
	}
	return false
}
