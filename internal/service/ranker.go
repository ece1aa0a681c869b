package service

import (
	"fmt"
	"sort"

	"github.com/docbot-ai/answer-action/internal/models"
)

// Retrieval defaults used by the answer pipeline when the host supplies no
// overrides.
const (
	DefaultTopN      = 3
	DefaultThreshold = 0.6
)

// Rank scores every corpus document against the query vector and returns up
// to topN documents whose score strictly exceeds threshold, best first. Ties
// keep corpus order. Vectors arrive unit-length from the embedding model, so
// the dot product already is the cosine similarity; Rank does not normalize.
//
// An empty result is a valid outcome, not an error: it means no document is
// relevant enough to cite.
func Rank(query []float32, corpus []models.DocumentEmbedding, topN int, threshold float64) []models.ScoredCandidate {
	if topN < 0 {
		topN = 0
	}
	scored := make([]models.ScoredCandidate, 0, len(corpus))
	for _, doc := range corpus {
		scored = append(scored, models.ScoredCandidate{
			Document: doc,
			Score:    dot(query, doc.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	picked := make([]models.ScoredCandidate, 0, topN)
	for _, c := range scored {
		if c.Score <= threshold || len(picked) == topN {
			break
		}
		picked = append(picked, c)
	}
	return picked
}

// dot panics on mismatched dimensions: the query and the corpus must come
// from the same embedding model, anything else is a programming error.
func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("embedding dimension mismatch: %d vs %d", len(a), len(b)))
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
