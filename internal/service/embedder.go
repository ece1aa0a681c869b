package service

import "context"

// Embedder converts text into the fixed-length vector space the corpus was
// built in. Query and corpus embeddings must come from the same model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
