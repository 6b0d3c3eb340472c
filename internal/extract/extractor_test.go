// ABOUTME: Tests for plain-text extraction with form-feed page splitting
// ABOUTME: Verifies page numbering, metadata, and unsupported type errors
package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestExtract_SinglePage(t *testing.T) {
	path := writeFile(t, "report.txt", "All on one page.")

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if doc.FileName != "report.txt" {
		t.Errorf("FileName = %q, want report.txt", doc.FileName)
	}
	if doc.FileType != "txt" {
		t.Errorf("FileType = %q, want txt", doc.FileType)
	}
	if doc.TotalPages() != 1 {
		t.Fatalf("TotalPages() = %d, want 1", doc.TotalPages())
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("page number = %d, want 1", doc.Pages[0].Number)
	}
	if doc.Pages[0].Text != "All on one page." {
		t.Errorf("page text = %q", doc.Pages[0].Text)
	}
}

func TestExtract_FormFeedPages(t *testing.T) {
	path := writeFile(t, "multi.txt", "Page one text.\fPage two text.\fPage three text.")

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if doc.TotalPages() != 3 {
		t.Fatalf("TotalPages() = %d, want 3", doc.TotalPages())
	}
	for i, page := range doc.Pages {
		if page.Number != i+1 {
			t.Errorf("page %d: Number = %d, want %d", i, page.Number, i+1)
		}
	}
	if doc.Pages[2].Text != "Page three text." {
		t.Errorf("page 3 text = %q", doc.Pages[2].Text)
	}
}

func TestExtract_Markdown(t *testing.T) {
	path := writeFile(t, "notes.md", "# Heading\n\nBody text here.")

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.FileType != "md" {
		t.Errorf("FileType = %q, want md", doc.FileType)
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	path := writeFile(t, "slides.pdf", "%PDF-1.4")

	if _, err := Extract(path); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestExtract_MissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
