// ABOUTME: Plain-text document extraction into page-tagged text
// ABOUTME: Splits on form feeds so multi-page text files keep page numbers
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/documind/documind/internal/models"
)

// supportedExtensions are the file types the extractor can read.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Extract reads a file and returns its page-tagged text. Pages are
// separated by form feed characters; a file without form feeds is a single
// page. Unsupported file types are an extraction error, which batch
// indexing reports per document.
func Extract(path string) (*models.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file type %q (supported: .txt, .md)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := &models.Document{
		FileName: filepath.Base(path),
		FilePath: path,
		FileType: strings.TrimPrefix(ext, "."),
	}

	for i, text := range strings.Split(string(data), "\f") {
		doc.Pages = append(doc.Pages, models.Page{Number: i + 1, Text: text})
	}

	return doc, nil
}
