package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbot-ai/answer-action/internal/models"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	raw := `[{"package": "button", "content": "Press it.", "embedding": [0.1, 0.2]}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	docs, err := Load(path)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "button", docs[0].Package)
	assert.Equal(t, "Press it.", docs[0].Content)
	assert.Equal(t, []float32{0.1, 0.2}, docs[0].Embedding)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	docs := []models.DocumentEmbedding{
		{Package: "modal", Content: "Open it.", Embedding: []float32{0.3, 0.4}},
	}

	require.NoError(t, Save(path, docs))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}
