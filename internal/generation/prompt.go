// ABOUTME: Prompt construction for citation-grounded answers
// ABOUTME: Formats numbered source excerpts and the citation-enforcing system prompt
package generation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/documind/documind/internal/models"
)

// maxExcerptLen caps how much of each chunk is quoted into the prompt.
const maxExcerptLen = 800

// SystemPrompt instructs the model to answer only from the provided
// sources and to cite every statement with [n] markers.
const SystemPrompt = `You are a helpful AI assistant that answers questions based ONLY on the provided source documents.

Your task:
1. Read the sources carefully
2. Provide a comprehensive, detailed answer to the user's question
3. ALWAYS cite your sources using [1], [2], etc. notation after each statement
4. If the information is not found in the sources, clearly state: "I don't find supporting information in the provided sources."
5. Do not make up or infer information beyond what's explicitly stated in the sources

Format your answer as:
- Provide a thorough, well-explained answer to the question
- Support each claim with citations [1], [2], etc.
- Include relevant details and context from the sources
- At the end, add a "Sources used:" section listing the sources

Be detailed, precise, and helpful. Aim for comprehensive answers that fully address the question.`

// FormatSources renders sources as a numbered list of excerpts. The
// numbering matches the citation markers the model is asked to emit.
func FormatSources(sources []models.RetrievedSource) string {
	parts := make([]string, len(sources))
	for i, src := range sources {
		text := src.Text
		if len(text) > maxExcerptLen {
			text = text[:maxExcerptLen] + "..."
		}
		parts[i] = fmt.Sprintf("[%d] %s - Page %d\n%q", i+1, src.Metadata.Document, src.Metadata.Page, text)
	}
	return strings.Join(parts, "\n\n")
}

// UserPrompt builds the user message containing the sources and query.
func UserPrompt(query string, sources []models.RetrievedSource) string {
	return fmt.Sprintf(`Sources:
%s

Question: %s

Please answer the question using only the sources provided above. Remember to cite your sources using [1], [2], etc.`,
		FormatSources(sources), query)
}

// FormatReferences renders a citation map as a readable reference list.
func FormatReferences(citationMap map[int]models.CitationSource) string {
	if len(citationMap) == 0 {
		return "No citations found."
	}
	nums := make([]int, 0, len(citationMap))
	for n := range citationMap {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	lines := []string{"References:"}
	for _, n := range nums {
		src := citationMap[n]
		lines = append(lines, fmt.Sprintf("[%d] %s (Page %d) - Relevance: %.2f",
			n, src.Document, src.Page, src.SimilarityScore))
	}
	return strings.Join(lines, "\n")
}
