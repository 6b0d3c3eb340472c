// ABOUTME: Sentence-aware text chunking with token budgets and overlap
// ABOUTME: Produces offset-tracked chunks that map back to exact page spans
package chunker

import (
	"errors"
	"strings"
	"unicode"

	"github.com/documind/documind/internal/models"
)

// Chunker splits extracted page text into overlapping, sentence-aligned
// chunks. Pure: identical input and configuration always yield identical
// chunk boundaries and offsets.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	maxChunkSize int
}

// New creates a Chunker with the given token budgets. chunkSize is the
// greedy target, chunkOverlap the trailing-sentence overlap budget, and
// maxChunkSize the threshold above which a single sentence is emitted as
// its own chunk without further splitting.
func New(chunkSize, chunkOverlap, maxChunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 300
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if maxChunkSize < chunkSize {
		maxChunkSize = chunkSize
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		maxChunkSize: maxChunkSize,
	}
}

// CountTokens approximates the token count of text. Roughly 1 token per
// 0.75 words, the same estimate the embedding models use for English prose.
func CountTokens(text string) int {
	words := len(strings.Fields(text))
	return words * 4 / 3
}

// sentence is a detected sentence with offsets into the original page text.
type sentence struct {
	text   string
	start  int
	end    int
	tokens int
}

// ChunkDocument chunks every page of a document. Chunk indexes are
// sequential across the whole document, so page numbers are non-decreasing
// and chunk indexes strictly increasing in the returned slice.
func (c *Chunker) ChunkDocument(doc *models.Document) ([]models.Chunk, error) {
	if doc == nil {
		return nil, errors.New("cannot chunk nil document")
	}
	if doc.FileName == "" {
		return nil, errors.New("document has no file name")
	}

	var chunks []models.Chunk
	for _, page := range doc.Pages {
		chunks = append(chunks, c.chunkPage(doc.FileName, page, len(chunks))...)
	}
	return chunks, nil
}

// chunkPage splits one page into chunks, numbering them from nextIndex.
// A page with no extractable sentences yields zero chunks.
func (c *Chunker) chunkPage(document string, page models.Page, nextIndex int) []models.Chunk {
	sentences := splitSentences(page.Text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []models.Chunk
	var current []sentence
	currentTokens := 0

	emit := func() {
		if len(current) == 0 {
			return
		}
		start := current[0].start
		end := current[len(current)-1].end
		text := page.Text[start:end]
		chunks = append(chunks, models.Chunk{
			Document:   document,
			Page:       page.Number,
			ChunkIndex: nextIndex + len(chunks),
			Text:       text,
			StartChar:  start,
			EndChar:    end,
			TokenCount: CountTokens(text),
		})
	}

	for _, s := range sentences {
		// An oversized sentence becomes its own chunk, unsplit. This keeps
		// every chunk sentence-aligned and never produces an empty chunk.
		if s.tokens > c.maxChunkSize {
			emit()
			current = []sentence{s}
			currentTokens = s.tokens
			emit()
			current = nil
			currentTokens = 0
			continue
		}

		if currentTokens+s.tokens > c.chunkSize && len(current) > 0 {
			emit()
			current = overlapSentences(current, c.chunkOverlap)
			currentTokens = 0
			for _, o := range current {
				currentTokens += o.tokens
			}
		}

		current = append(current, s)
		currentTokens += s.tokens
	}

	emit()
	return chunks
}

// overlapSentences returns the trailing sentences of a closed chunk that
// fit within the overlap token budget, preserving sentence boundaries.
func overlapSentences(sentences []sentence, overlapTokens int) []sentence {
	if overlapTokens <= 0 {
		return nil
	}

	total := 0
	i := len(sentences)
	for i > 0 {
		if total+sentences[i-1].tokens > overlapTokens {
			break
		}
		total += sentences[i-1].tokens
		i--
	}

	if i == len(sentences) {
		return nil
	}
	overlap := make([]sentence, len(sentences)-i)
	copy(overlap, sentences[i:])
	return overlap
}

// splitSentences detects sentence boundaries in page text and records the
// character span of each sentence. A terminator (. ! ?) optionally followed
// by closing quotes ends a sentence when trailed by whitespace or the end
// of the text. A period directly followed by a digit is treated as part of
// a number, not a boundary.
func splitSentences(text string) []sentence {
	var sentences []sentence

	start := -1
	i := 0
	for i < len(text) {
		ch := text[i]

		if start == -1 {
			if !isSpaceByte(ch) {
				start = i
			}
			i++
			continue
		}

		if ch == '.' || ch == '!' || ch == '?' {
			end := i + 1
			// Consume closing quotes attached to the terminator
			for end < len(text) && (text[end] == '"' || text[end] == '\'' || text[end] == ')') {
				end++
			}
			if ch == '.' && end < len(text) && isDigitByte(text[end]) {
				i = end
				continue
			}
			if end >= len(text) || isSpaceByte(text[end]) {
				appendSentence(&sentences, text, start, end)
				start = -1
				i = end
				continue
			}
		}

		i++
	}

	// Trailing text without a terminator still counts as a sentence
	if start != -1 {
		appendSentence(&sentences, text, start, len(text))
	}

	return sentences
}

func appendSentence(sentences *[]sentence, text string, start, end int) {
	// Drop trailing whitespace from the span
	for end > start && isSpaceByte(text[end-1]) {
		end--
	}
	s := text[start:end]
	if strings.TrimSpace(s) == "" {
		return
	}
	*sentences = append(*sentences, sentence{
		text:   s,
		start:  start,
		end:    end,
		tokens: CountTokens(s),
	})
}

func isSpaceByte(b byte) bool {
	return unicode.IsSpace(rune(b))
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
