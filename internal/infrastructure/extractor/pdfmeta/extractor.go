// Package pdfmeta extracts document-info metadata and first-page text from
// uploaded PDFs using ledongthuc/pdf (pure Go, no CGO).
package pdfmeta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

// Extract reads the stored PDF and returns its embedded title and author,
// page count and the text of the first page. A missing embedded title falls
// back to the file stem, a missing author to "Unknown".
func (e *Extractor) Extract(ctx context.Context, key string) (domain.RawExtraction, error) {
	reader, err := e.storage.Open(ctx, key)
	if err != nil {
		return domain.RawExtraction{}, fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return domain.RawExtraction{}, fmt.Errorf("read source document: %w", err)
	}
	if len(raw) == 0 {
		return domain.RawExtraction{}, domain.WrapError(domain.ErrExtractionFailed, "extract pdf", fmt.Errorf("empty file"))
	}

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return domain.RawExtraction{}, domain.WrapError(domain.ErrExtractionFailed, "extract pdf", err)
	}

	path := e.storage.Path(key)
	extraction := domain.RawExtraction{
		FilePath:  path,
		Title:     infoString(r, "Title"),
		Author:    infoString(r, "Author"),
		PageCount: r.NumPage(),
	}
	if extraction.Title == "" {
		base := filepath.Base(path)
		extraction.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if extraction.Author == "" {
		extraction.Author = domain.FallbackAuthor
	}

	if r.NumPage() > 0 {
		extraction.FirstPageText = firstPageText(r)
	}
	return extraction, nil
}

// firstPageText extracts plain text from page 1; an unreadable page yields
// an empty preview rather than an error.
func firstPageText(r *pdf.Reader) string {
	page := r.Page(1)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func infoString(r *pdf.Reader, name string) string {
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	value := info.Key(name)
	if value.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(value.RawString())
}
