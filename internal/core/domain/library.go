package domain

// Fallback values applied to a LibraryEntry before it enters the library.
// A stored entry never has an empty field.
const (
	FallbackTitle       = "Document"
	FallbackAuthor      = "Unknown"
	FallbackGenre       = "Document"
	FallbackDescription = "No description available"

	ResumeGenre = "Resume/CV"

	ResumeIconURL   = "https://cdn-icons-png.flaticon.com/512/3135/3135692.png"
	DocumentIconURL = "https://cdn-icons-png.flaticon.com/512/337/337946.png"
)

// RawExtraction holds the unprocessed fields pulled from a PDF before
// classification. It lives only for the duration of one upload.
type RawExtraction struct {
	FilePath      string
	Title         string
	Author        string
	PageCount     int
	FirstPageText string
	IsResume      bool
}

// CatalogResult is what the external catalog resolved for a title/author
// pair. Any field may be empty; the classifier substitutes local values.
type CatalogResult struct {
	Title       string
	Author      string
	Genre       string
	Description string
	Thumbnail   string
}

// LibraryEntry is one finalized, immutable record in the session library.
type LibraryEntry struct {
	FilePath    string `json:"file_path"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	PageCount   int    `json:"page_count"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// Normalized returns a copy with every empty field replaced by its fallback.
func (e LibraryEntry) Normalized() LibraryEntry {
	out := e
	if out.Title == "" {
		out.Title = FallbackTitle
	}
	if out.Author == "" {
		out.Author = FallbackAuthor
	}
	if out.Genre == "" {
		out.Genre = FallbackGenre
	}
	if out.Description == "" {
		out.Description = FallbackDescription
	}
	if out.Thumbnail == "" {
		out.Thumbnail = DocumentIconURL
	}
	return out
}
