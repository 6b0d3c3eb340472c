// ABOUTME: Document and Page models produced by text extraction
// ABOUTME: A document is an ordered sequence of page texts keyed by filename
package models

// Page is one page of extracted text within a document.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Document represents an extracted source file. Identity is the original
// filename; the page sequence is immutable once extracted.
type Document struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
	Pages    []Page `json:"pages"`
}

// TotalPages returns the number of extracted pages.
func (d *Document) TotalPages() int {
	return len(d.Pages)
}
