package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

func TestLibraryXLSXWritesHeaderAndRows(t *testing.T) {
	entries := []domain.LibraryEntry{
		{
			FilePath:    "uploads/clean-code.pdf",
			Title:       "Clean Code",
			Author:      "Robert Martin",
			Genre:       "Technology",
			PageCount:   464,
			Description: "A handbook of agile software craftsmanship",
		},
		{
			FilePath:  "uploads/resume.pdf",
			Title:     "Resume/CV",
			Author:    "Jane Doe",
			Genre:     domain.ResumeGenre,
			PageCount: 2,
		},
	}

	data, err := LibraryXLSX(entries)
	if err != nil {
		t.Fatalf("LibraryXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Library" {
		t.Fatalf("sheets = %v, want [Library]", sheets)
	}

	checks := map[string]string{
		"A1": "Title",
		"F1": "File Path",
		"A2": "Clean Code",
		"B2": "Robert Martin",
		"C2": "Technology",
		"D2": "464",
		"A3": "Resume/CV",
		"D3": "2",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Library", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestLibraryXLSXEmptyLibraryStillHasHeader(t *testing.T) {
	data, err := LibraryXLSX(nil)
	if err != nil {
		t.Fatalf("LibraryXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Library", "C1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "Genre" {
		t.Fatalf("C1 = %q, want Genre", got)
	}
}
