package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbot-ai/answer-action/internal/models"
)

func corpusOf(vecs map[string][]float32, order ...string) []models.DocumentEmbedding {
	docs := make([]models.DocumentEmbedding, 0, len(order))
	for _, name := range order {
		docs = append(docs, models.DocumentEmbedding{Package: name, Content: name + " docs", Embedding: vecs[name]})
	}
	return docs
}

func TestRank_BoundsAndOrder(t *testing.T) {
	docs := corpusOf(map[string][]float32{
		"a": {1, 0},
		"b": {0.8, 0.6},
		"c": {0, 1},
		"d": {0.6, 0.8},
	}, "a", "b", "c", "d")

	out := Rank([]float32{1, 0}, docs, 2, 0.5)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Document.Package)
	assert.Equal(t, "b", out[1].Document.Package)
	for _, c := range out {
		assert.Greater(t, c.Score, 0.5)
	}
	assert.GreaterOrEqual(t, out[0].Score, out[1].Score)
}

func TestRank_StrictThreshold(t *testing.T) {
	docs := corpusOf(map[string][]float32{"a": {0.6, 0.8}}, "a")

	// Score is exactly 0.6; strictly-greater filtering must exclude it.
	out := Rank([]float32{1, 0}, docs, 3, 0.6)
	assert.Empty(t, out)
}

func TestRank_StableOnTies(t *testing.T) {
	docs := corpusOf(map[string][]float32{
		"first":  {1, 0},
		"second": {1, 0},
		"third":  {1, 0},
	}, "first", "second", "third")

	out := Rank([]float32{1, 0}, docs, 3, 0.5)

	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Document.Package)
	assert.Equal(t, "second", out[1].Document.Package)
	assert.Equal(t, "third", out[2].Document.Package)
}

func TestRank_UsageSectionScenario(t *testing.T) {
	docs := []models.DocumentEmbedding{
		{Package: "a", Content: `<section class="usage">Use A.</section>`, Embedding: []float32{1, 0}},
		{Package: "b", Content: `<section class="usage">Use B.</section>`, Embedding: []float32{0, 1}},
	}

	out := Rank([]float32{0.9, 0.1}, docs, 3, 0.6)

	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Document.Package)
	assert.InDelta(t, 0.9, out[0].Score, 1e-6)
}

func TestRank_EmptyResultIsValid(t *testing.T) {
	docs := corpusOf(map[string][]float32{"a": {0, 1}}, "a")
	out := Rank([]float32{1, 0}, docs, 3, 0.6)
	assert.Empty(t, out)
}

func TestRank_DimensionMismatchPanics(t *testing.T) {
	docs := corpusOf(map[string][]float32{"a": {1, 0, 0}}, "a")
	assert.Panics(t, func() {
		Rank([]float32{1, 0}, docs, 3, 0.6)
	})
}
