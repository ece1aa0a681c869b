// Package indexer builds the embeddings corpus from a documentation tree.
// It is an offline batch job: the action itself only ever reads its output.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docbot-ai/answer-action/internal/corpus"
	"github.com/docbot-ai/answer-action/internal/models"
	"github.com/docbot-ai/answer-action/internal/service"
)

// Indexer embeds one document per package directory and appends the results
// to the corpus file.
type Indexer struct {
	embedder service.Embedder
	logger   *slog.Logger
}

// New wires dependencies. The embedder must use the document task type, not
// the query one.
func New(embedder service.Embedder, logger *slog.Logger) *Indexer {
	return &Indexer{
		embedder: embedder,
		logger:   logger,
	}
}

// Build scans every immediate subdirectory of docsDir for a README.md and
// embeds it as that package's document. Updates are incremental: packages
// already present in the corpus file are skipped, so a rebuild only pays for
// new packages. Remove the corpus file to re-embed everything.
func (ix *Indexer) Build(ctx context.Context, docsDir, corpusPath string) error {
	docs, err := corpus.Load(corpusPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		docs = nil
	}

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		seen[d.Package] = true
	}

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return fmt.Errorf("read docs dir %s: %w", docsDir, err)
	}

	added := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if seen[name] {
			ix.logger.Debug("already embedded, skipping", "package", name)
			continue
		}

		readme := filepath.Join(docsDir, name, "README.md")
		raw, err := os.ReadFile(readme)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", readme, err)
		}

		content := string(raw)
		vec, err := ix.embedder.Embed(ctx, service.Sanitize(content, false))
		if err != nil {
			return fmt.Errorf("embed %s: %w", name, err)
		}

		docs = append(docs, models.DocumentEmbedding{
			Package:   name,
			Content:   content,
			Embedding: vec,
		})
		added++
		ix.logger.Info("embedded package", "package", name, "dimensions", len(vec))
	}

	if added == 0 {
		ix.logger.Info("corpus already up to date", "packages", len(docs))
		return nil
	}
	ix.logger.Info("writing corpus", "packages", len(docs), "added", added)
	return corpus.Save(corpusPath, docs)
}
