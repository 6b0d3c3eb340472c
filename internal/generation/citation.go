// ABOUTME: Citation extraction and validation for generated answers
// ABOUTME: Scans for [n] markers, checks ranges, and maps numbers to sources
package generation

import (
	"fmt"
	"sort"

	"github.com/documind/documind/internal/models"
)

// ExtractCitations scans text for [n] citation markers and returns the
// distinct numbers found, sorted ascending. Markers must be a literal
// bracket pair around one or more digits; anything else, including
// empty brackets or brackets around non-digits, is ignored.
func ExtractCitations(text string) []int {
	seen := make(map[int]struct{})
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		j := i + 1
		value := 0
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			value = value*10 + int(text[j]-'0')
			j++
		}
		if j == i+1 || j >= len(text) || text[j] != ']' {
			continue
		}
		seen[value] = struct{}{}
		i = j
	}

	citations := make([]int, 0, len(seen))
	for n := range seen {
		citations = append(citations, n)
	}
	sort.Ints(citations)
	return citations
}

// ValidateCitations checks that every citation in the text refers to
// one of numSources numbered sources. It returns one warning per
// out-of-range citation; a valid answer gets an empty slice.
func ValidateCitations(text string, numSources int) []string {
	var warnings []string
	for _, n := range ExtractCitations(text) {
		if n < 1 || n > numSources {
			warnings = append(warnings,
				fmt.Sprintf("Invalid citation [%d]: only %d sources available", n, numSources))
		}
	}
	return warnings
}

// MapCitations maps each in-range citation in the text to the source it
// refers to. Citations are 1-indexed into the sources slice.
func MapCitations(text string, sources []models.RetrievedSource) map[int]models.CitationSource {
	mapping := make(map[int]models.CitationSource)
	for _, n := range ExtractCitations(text) {
		if n < 1 || n > len(sources) {
			continue
		}
		src := sources[n-1]
		mapping[n] = models.CitationSource{
			Document:        src.Metadata.Document,
			Page:            src.Metadata.Page,
			Text:            src.Text,
			SimilarityScore: src.SimilarityScore,
		}
	}
	return mapping
}
