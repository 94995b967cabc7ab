package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/classify"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

type storageFake struct {
	saved   map[string][]byte
	saveErr error
}

func newStorageFake() *storageFake {
	return &storageFake{saved: make(map[string][]byte)}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.saved[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (f *storageFake) Path(key string) string { return "uploads/" + key }

type extractorFake struct {
	raw domain.RawExtraction
	err error
}

func (f *extractorFake) Extract(context.Context, string) (domain.RawExtraction, error) {
	if f.err != nil {
		return domain.RawExtraction{}, f.err
	}
	return f.raw, nil
}

type lookupFake struct {
	result *domain.CatalogResult
	err    error
	calls  int
}

func (f *lookupFake) Search(context.Context, string, string) (*domain.CatalogResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newUploadUC(storage *storageFake, extractor *extractorFake, lookup *lookupFake) *UploadDocumentUseCase {
	classifier := classify.New(classify.DefaultRules(), lookup, nil)
	return NewUploadDocumentUseCase(storage, extractor, classifier, nil)
}

func TestUploadResumeEndToEnd(t *testing.T) {
	storage := newStorageFake()
	extractor := &extractorFake{raw: domain.RawExtraction{
		FilePath:      "uploads/jane_doe.pdf",
		Title:         "jane_doe",
		Author:        "Unknown",
		PageCount:     2,
		FirstPageText: "Jane Doe\nCurriculum Vitae\nEducation",
	}}
	lookup := &lookupFake{}
	uc := newUploadUC(storage, extractor, lookup)

	result, err := uc.Upload(context.Background(), "jane_doe.pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if _, ok := storage.saved["jane_doe.pdf"]; !ok {
		t.Fatalf("file not saved under its base name")
	}
	if result.Entry.Genre != domain.ResumeGenre {
		t.Fatalf("expected genre %q, got %q", domain.ResumeGenre, result.Entry.Genre)
	}
	if result.Entry.Author != "Jane Doe" {
		t.Fatalf("expected author Jane Doe, got %q", result.Entry.Author)
	}
	if result.Entry.Title != domain.ResumeGenre {
		t.Fatalf("expected title %q, got %q", domain.ResumeGenre, result.Entry.Title)
	}
	if lookup.calls != 0 {
		t.Fatalf("resume upload must not call the catalog")
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestUploadStripsDirectoryFromFilename(t *testing.T) {
	storage := newStorageFake()
	extractor := &extractorFake{raw: domain.RawExtraction{
		FilePath: "uploads/book.pdf",
		Title:    "book",
		Author:   "Unknown",
	}}
	uc := newUploadUC(storage, extractor, &lookupFake{})

	if _, err := uc.Upload(context.Background(), "../../etc/book.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if _, ok := storage.saved["book.pdf"]; !ok {
		t.Fatalf("expected traversal-free key, saved keys: %v", storage.saved)
	}
}

func TestUploadDegradesOnExtractionFailure(t *testing.T) {
	storage := newStorageFake()
	extractor := &extractorFake{err: errors.New("corrupt pdf")}
	uc := newUploadUC(storage, extractor, &lookupFake{})

	result, err := uc.Upload(context.Background(), "broken.pdf", strings.NewReader("not a pdf"))
	if err != nil {
		t.Fatalf("extraction failure must not abort the upload: %v", err)
	}

	if len(result.Warnings) == 0 {
		t.Fatalf("expected a degradation warning")
	}
	if result.Entry.PageCount != 0 {
		t.Fatalf("expected zero pages, got %d", result.Entry.PageCount)
	}
	if result.Entry.Author != domain.FallbackAuthor {
		t.Fatalf("expected fallback author, got %q", result.Entry.Author)
	}
	// empty preview matches no bucket, so the universal fallback applies
	if result.Entry.Genre != "Document" {
		t.Fatalf("expected Document genre, got %q", result.Entry.Genre)
	}
	if result.Entry.Title != "broken" {
		t.Fatalf("expected file stem title, got %q", result.Entry.Title)
	}
}

func TestUploadReportsLookupWarningAndClassifiesByKeywords(t *testing.T) {
	storage := newStorageFake()
	extractor := &extractorFake{raw: domain.RawExtraction{
		FilePath:      "uploads/mkt.pdf",
		Title:         "mkt",
		Author:        "Unknown",
		FirstPageText: "a marketing and finance primer",
	}}
	lookup := &lookupFake{err: errors.New("timeout")}
	uc := newUploadUC(storage, extractor, lookup)

	result, err := uc.Upload(context.Background(), "mkt.pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if result.Entry.Genre != "Business" {
		t.Fatalf("expected Business genre, got %q", result.Entry.Genre)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "catalog lookup failed") {
		t.Fatalf("expected lookup warning, got %v", result.Warnings)
	}
}

func TestUploadFailsWhenStorageFails(t *testing.T) {
	storage := newStorageFake()
	storage.saveErr = errors.New("disk full")
	uc := newUploadUC(storage, &extractorFake{}, &lookupFake{})

	if _, err := uc.Upload(context.Background(), "x.pdf", strings.NewReader("%PDF")); err == nil {
		t.Fatalf("expected error when the file cannot be stored")
	}
}
