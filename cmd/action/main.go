package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docbot-ai/answer-action/internal/action"
	"github.com/docbot-ai/answer-action/internal/config"
	"github.com/docbot-ai/answer-action/internal/corpus"
	"github.com/docbot-ai/answer-action/internal/github"
	"github.com/docbot-ai/answer-action/internal/indexer"
	"github.com/docbot-ai/answer-action/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "answer-action",
		Short:         "Answers repository questions from a documentation embeddings corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(logger))
	root.AddCommand(indexCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runCmd answers the question carried by the triggering workflow event.
func runCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Answer the question from the triggering event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.EventName == "" || cfg.EventPath == "" {
				return fmt.Errorf("GITHUB_EVENT_NAME and GITHUB_EVENT_PATH must be set")
			}
			owner, repo, err := cfg.OwnerRepo()
			if err != nil {
				return err
			}

			docs, err := corpus.Load(cfg.CorpusPath)
			if err != nil {
				return err
			}
			logger.Info("corpus loaded", "path", cfg.CorpusPath, "packages", len(docs))

			embedder, err := service.NewVertexEmbedder(ctx, cfg, service.TaskRetrievalQuery)
			if err != nil {
				return err
			}
			defer embedder.Close()

			llm, err := service.NewVertexLLM(ctx, cfg)
			if err != nil {
				return err
			}
			defer llm.Close()

			answers := service.NewAnswerService(docs, embedder, llm, service.AnswerOptions{
				TopN:      cfg.TopN,
				Threshold: cfg.Threshold,
				Generation: service.GenerationOptions{
					MaxTokens:   cfg.MaxTokens,
					Temperature: cfg.Temperature,
					TopP:        cfg.TopP,
				},
			}, logger)

			payload, err := os.ReadFile(cfg.EventPath)
			if err != nil {
				return fmt.Errorf("read event payload: %w", err)
			}

			runner := action.NewRunner(github.NewClient(cfg.GitHubToken), answers, owner, repo, logger)
			return runner.Run(ctx, cfg.EventName, payload)
		},
	}
}

// indexCmd rebuilds the embeddings corpus from a documentation tree.
func indexCmd(logger *slog.Logger) *cobra.Command {
	var docsDir, out string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or incrementally update the documentation embeddings corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.CorpusPath
			}

			embedder, err := service.NewVertexEmbedder(ctx, cfg, service.TaskRetrievalDocument)
			if err != nil {
				return err
			}
			defer embedder.Close()

			return indexer.New(embedder, logger).Build(ctx, docsDir, out)
		},
	}
	cmd.Flags().StringVar(&docsDir, "docs", "docs", "directory of package documentation (one subdirectory per package)")
	cmd.Flags().StringVar(&out, "out", "", "corpus output path (default: EMBEDDINGS_PATH)")
	return cmd
}
