// ABOUTME: Tests for citation extraction, validation, and source mapping
// ABOUTME: Covers digit scanning edge cases and out-of-range warnings
package generation

import (
	"reflect"
	"testing"

	"github.com/documind/documind/internal/models"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{
			name: "single citation",
			text: "The answer is 42 [1].",
			want: []int{1},
		},
		{
			name: "multiple citations sorted",
			text: "First [3], then [1], and again [2].",
			want: []int{1, 2, 3},
		},
		{
			name: "duplicates collapse",
			text: "Same source [1] cited twice [1].",
			want: []int{1},
		},
		{
			name: "multi digit",
			text: "Late source [12].",
			want: []int{12},
		},
		{
			name: "empty brackets ignored",
			text: "Nothing here [] at all.",
			want: []int{},
		},
		{
			name: "non numeric brackets ignored",
			text: "A list [a] and a link [see note].",
			want: []int{},
		},
		{
			name: "unclosed bracket ignored",
			text: "Truncated [1",
			want: []int{},
		},
		{
			name: "digits then letters ignored",
			text: "Mixed [1a] marker.",
			want: []int{},
		},
		{
			name: "adjacent citations",
			text: "Both [1][2].",
			want: []int{1, 2},
		},
		{
			name: "no citations",
			text: "Plain answer with no markers.",
			want: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateCitationsInRange(t *testing.T) {
	warnings := ValidateCitations("Answer [1].", 1)
	if len(warnings) != 0 {
		t.Errorf("ValidateCitations() = %v, want no warnings", warnings)
	}
}

func TestValidateCitationsOutOfRange(t *testing.T) {
	warnings := ValidateCitations("Answer [1] and [3].", 2)
	if len(warnings) != 1 {
		t.Fatalf("ValidateCitations() = %v, want 1 warning", warnings)
	}
	want := "Invalid citation [3]: only 2 sources available"
	if warnings[0] != want {
		t.Errorf("warning = %q, want %q", warnings[0], want)
	}
}

func TestValidateCitationsZero(t *testing.T) {
	warnings := ValidateCitations("Bogus [0] citation.", 3)
	if len(warnings) != 1 {
		t.Errorf("citation [0] should warn, got %v", warnings)
	}
}

func TestMapCitations(t *testing.T) {
	sources := []models.RetrievedSource{
		{
			Text:            "first chunk",
			SimilarityScore: 0.9,
			Metadata:        models.EntryMetadata{Document: "alpha.txt", Page: 2},
		},
		{
			Text:            "second chunk",
			SimilarityScore: 0.7,
			Metadata:        models.EntryMetadata{Document: "beta.txt", Page: 5},
		},
	}

	mapping := MapCitations("Uses [2] and bogus [9].", sources)
	if len(mapping) != 1 {
		t.Fatalf("MapCitations() has %d entries, want 1", len(mapping))
	}
	src, ok := mapping[2]
	if !ok {
		t.Fatal("MapCitations() missing entry for [2]")
	}
	if src.Document != "beta.txt" || src.Page != 5 || src.Text != "second chunk" {
		t.Errorf("mapping[2] = %+v", src)
	}
}
