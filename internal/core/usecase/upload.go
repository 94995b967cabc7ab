package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/classify"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/ports"
)

// UploadResult is the classified candidate entry for one uploaded file plus
// any non-fatal degradation notices. The entry is not in the library yet;
// the user confirms it separately.
type UploadResult struct {
	Entry    domain.LibraryEntry `json:"entry"`
	Source   string              `json:"source"`
	Warnings []string            `json:"warnings,omitempty"`
}

type UploadDocumentUseCase struct {
	storage    ports.ObjectStorage
	extractor  ports.MetadataExtractor
	classifier *classify.Classifier
	logger     *slog.Logger
}

func NewUploadDocumentUseCase(
	storage ports.ObjectStorage,
	extractor ports.MetadataExtractor,
	classifier *classify.Classifier,
	logger *slog.Logger,
) *UploadDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadDocumentUseCase{
		storage:    storage,
		extractor:  extractor,
		classifier: classifier,
		logger:     logger,
	}
}

// Upload stores the file under its original base name (last writer wins),
// extracts raw metadata and classifies the document. Extraction and catalog
// failures degrade to defaults instead of aborting.
func (uc *UploadDocumentUseCase) Upload(ctx context.Context, filename string, body io.Reader) (UploadResult, error) {
	key := filepath.Base(filename)
	if key == "" || key == "." || key == string(filepath.Separator) {
		return UploadResult{}, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("empty filename"))
	}

	if err := uc.storage.Save(ctx, key, body); err != nil {
		return UploadResult{}, fmt.Errorf("save uploaded file: %w", err)
	}

	var warnings []string
	raw, err := uc.extractor.Extract(ctx, key)
	if err != nil {
		uc.logger.Warn("metadata extraction failed, using degraded defaults",
			"file", key, "error", err)
		warnings = append(warnings, fmt.Sprintf("error extracting PDF metadata: %v", err))
		raw = degradedExtraction(uc.storage.Path(key))
	}

	entry, outcome := uc.classifier.Classify(ctx, raw)
	warnings = append(warnings, outcome.Warnings...)

	uc.logger.Info("document classified",
		"file", key,
		"title", entry.Title,
		"genre", entry.Genre,
		"source", outcome.Source,
		"pages", entry.PageCount,
	)

	return UploadResult{Entry: entry, Source: outcome.Source, Warnings: warnings}, nil
}

// degradedExtraction is the fallback when the PDF is unreadable: file stem
// as title, unknown author, zero pages, empty preview.
func degradedExtraction(path string) domain.RawExtraction {
	base := filepath.Base(path)
	return domain.RawExtraction{
		FilePath:  path,
		Title:     strings.TrimSuffix(base, filepath.Ext(base)),
		Author:    domain.FallbackAuthor,
		PageCount: 0,
	}
}
