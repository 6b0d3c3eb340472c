// ABOUTME: Diversity reranking over retrieved sources
// ABOUTME: Greedy selection penalizing lexical overlap with already-picked chunks
package retrieval

import (
	"math"
	"regexp"
	"strings"

	"github.com/documind/documind/internal/models"
)

// Strategy selects how retrieved sources are ordered before generation.
type Strategy string

const (
	// StrategySimilarity keeps the similarity ordering untouched.
	StrategySimilarity Strategy = "similarity"
	// StrategyDiversity reorders sources to reduce near-duplicate chunks
	// near the top of the list.
	StrategyDiversity Strategy = "diversity"
)

// diversityPenalty weights how strongly lexical overlap with already
// selected sources pushes a candidate down the ranking.
const diversityPenalty = 0.5

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// Rerank reorders sources according to the strategy. The result always
// contains exactly the input sources; only the order may change, and
// the order is deterministic for a given input.
func Rerank(sources []models.RetrievedSource, strategy Strategy) []models.RetrievedSource {
	if strategy != StrategyDiversity || len(sources) < 2 {
		return sources
	}
	return diversityRerank(sources)
}

// diversityRerank greedily picks the candidate with the best adjusted
// score: similarity minus a penalty for the worst token overlap with
// any source already selected. Ties keep the original order.
func diversityRerank(sources []models.RetrievedSource) []models.RetrievedSource {
	tokenSets := make([]map[string]struct{}, len(sources))
	for i, src := range sources {
		tokenSets[i] = tokenSet(src.Text)
	}

	selected := make([]models.RetrievedSource, 0, len(sources))
	selectedSets := make([]map[string]struct{}, 0, len(sources))
	remaining := make([]int, len(sources))
	for i := range sources {
		remaining[i] = i
	}

	for len(remaining) > 0 {
		bestPos := 0
		bestScore := math.Inf(-1)
		for pos, idx := range remaining {
			penalty := 0.0
			for _, sel := range selectedSets {
				if o := ochiai(tokenSets[idx], sel); o > penalty {
					penalty = o
				}
			}
			score := sources[idx].SimilarityScore - diversityPenalty*penalty
			if score > bestScore {
				bestScore = score
				bestPos = pos
			}
		}
		idx := remaining[bestPos]
		selected = append(selected, sources[idx])
		selectedSets = append(selectedSets, tokenSets[idx])
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}
	return selected
}

func tokenSet(text string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// ochiai computes |A∩B| / sqrt(|A||B|) over two token sets.
func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}
