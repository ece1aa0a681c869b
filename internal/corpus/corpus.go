// Package corpus loads the precomputed documentation embeddings the action
// retrieves against. The file is a plain JSON array produced by the `index`
// subcommand; a run opens it read-only exactly once and never writes it.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docbot-ai/answer-action/internal/models"
)

// Load reads the embeddings file. The producer and consumer share the schema
// by convention; there is no version negotiation.
func Load(path string) ([]models.DocumentEmbedding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var docs []models.DocumentEmbedding
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", path, err)
	}
	return docs, nil
}

// Save writes the corpus back out. Only the offline indexer calls this.
func Save(path string, docs []models.DocumentEmbedding) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write corpus %s: %w", path, err)
	}
	return nil
}
