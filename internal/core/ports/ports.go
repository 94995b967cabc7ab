package ports

import (
	"context"
	"io"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

// ObjectStorage stores uploaded source documents under their original name.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Path(key string) string
}

// MetadataExtractor pulls raw metadata and first-page text from a stored PDF.
type MetadataExtractor interface {
	Extract(ctx context.Context, key string) (domain.RawExtraction, error)
}

// CatalogLookup resolves title/author against an external bibliographic
// catalog. A nil result with a nil error means the catalog had no match.
type CatalogLookup interface {
	Search(ctx context.Context, title, author string) (*domain.CatalogResult, error)
}

// LibraryStore is the session-scoped, append-only library.
type LibraryStore interface {
	Append(ctx context.Context, entry domain.LibraryEntry) error
	All(ctx context.Context) ([]domain.LibraryEntry, error)
}
