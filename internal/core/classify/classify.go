package classify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/ports"
)

const (
	previewChars           = 500
	resumeDescriptionChars = 150
	bucketDescriptionChars = 200

	uncategorizedGenre = "Uncategorized"

	// Only the first few lines of a resume are scanned for the person's
	// name; below that the text is usually section content.
	resumeNameLines = 3
)

// Classifier turns a raw extraction into a finished library entry, consulting
// the external catalog for non-resume documents.
type Classifier struct {
	rules  Rules
	lookup ports.CatalogLookup
	logger *slog.Logger
}

func New(rules Rules, lookup ports.CatalogLookup, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{rules: rules, lookup: lookup, logger: logger}
}

// Source names who decided the genre of an entry.
const (
	SourceResume   = "resume"
	SourceCatalog  = "catalog"
	SourceKeywords = "keywords"
	SourceFallback = "fallback"
)

// Outcome reports how a classification was decided and any non-fatal
// degradation along the way.
type Outcome struct {
	Source   string
	Warnings []string
}

// Classify derives genre, author, description and thumbnail for the raw
// extraction. It never fails: catalog errors degrade to keyword
// classification and are reported in the outcome.
func (c *Classifier) Classify(ctx context.Context, raw domain.RawExtraction) (domain.LibraryEntry, Outcome) {
	preview := truncate(raw.FirstPageText, previewChars)
	raw.IsResume = c.IsResume(raw.FirstPageText)

	entry := domain.LibraryEntry{
		FilePath:  raw.FilePath,
		Title:     raw.Title,
		Author:    raw.Author,
		PageCount: raw.PageCount,
	}
	if entry.Author == "" {
		entry.Author = domain.FallbackAuthor
	}

	if raw.IsResume {
		c.classifyResume(&entry, raw, preview)
		return entry, Outcome{Source: SourceResume}
	}

	var warnings []string
	result, err := c.lookup.Search(ctx, entry.Title, entry.Author)
	if err != nil {
		c.logger.Warn("catalog lookup failed, using keyword classification",
			"title", entry.Title, "error", err)
		warnings = append(warnings, fmt.Sprintf("catalog lookup failed: %v", err))
		result = nil
	}

	if result != nil {
		c.applyCatalogResult(&entry, result)
		return entry, Outcome{Source: SourceCatalog, Warnings: warnings}
	}

	source := c.classifyByKeywords(&entry, preview)
	return entry, Outcome{Source: source, Warnings: warnings}
}

// IsResume reports whether the first-page text contains any resume keyword.
func (c *Classifier) IsResume(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range c.rules.ResumeKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (c *Classifier) classifyResume(entry *domain.LibraryEntry, raw domain.RawExtraction, preview string) {
	if name, ok := resumeAuthor(raw.FirstPageText); ok {
		entry.Author = name
	}
	// A title equal to the file stem means the PDF carried no real title.
	if entry.Title == fileStem(raw.FilePath) {
		entry.Title = domain.ResumeGenre
	}
	entry.Genre = domain.ResumeGenre
	entry.Description = fmt.Sprintf("Professional document for %s. %s...",
		entry.Author, truncate(preview, resumeDescriptionChars))
	entry.Thumbnail = domain.ResumeIconURL
}

func (c *Classifier) applyCatalogResult(entry *domain.LibraryEntry, result *domain.CatalogResult) {
	if result.Title != "" {
		entry.Title = result.Title
	}
	if result.Author != "" {
		entry.Author = result.Author
	}
	entry.Genre = result.Genre
	if entry.Genre == "" {
		entry.Genre = uncategorizedGenre
	}
	entry.Description = result.Description
	if entry.Description == "" {
		entry.Description = domain.FallbackDescription
	}
	entry.Thumbnail = secureThumbnail(result.Thumbnail)
}

func (c *Classifier) classifyByKeywords(entry *domain.LibraryEntry, preview string) string {
	entry.Description = truncate(preview, bucketDescriptionChars) + "..."

	if label, ok := bucketGenre(c.rules.Buckets, preview); ok {
		entry.Genre = label
		return SourceKeywords
	}

	entry.Genre = domain.FallbackGenre
	entry.Thumbnail = domain.DocumentIconURL
	return SourceFallback
}

// bucketGenre tests the preview against each bucket's keywords in order;
// the first match wins.
func bucketGenre(buckets []Bucket, preview string) (string, bool) {
	lower := strings.ToLower(preview)
	for _, bucket := range buckets {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(lower, keyword) {
				return bucket.Label, true
			}
		}
	}
	return "", false
}

// resumeAuthor picks the first of the leading lines that looks like a
// person's name: at least two words and no digits.
func resumeAuthor(firstPageText string) (string, bool) {
	lines := strings.Split(firstPageText, "\n")
	if len(lines) > resumeNameLines {
		lines = lines[:resumeNameLines]
	}
	for _, line := range lines {
		if len(strings.Fields(line)) >= 2 && !containsDigit(line) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func secureThumbnail(url string) string {
	if strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http://")
	}
	return url
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
