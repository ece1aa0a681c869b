package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docbot-ai/answer-action/internal/models"
)

// AnswerOptions tune retrieval and generation for one AnswerService.
type AnswerOptions struct {
	TopN       int
	Threshold  float64
	Generation GenerationOptions
}

// AnswerService runs the retrieval-augmented pipeline from question to
// finalized answer: embed the question, rank the corpus, compress the
// conversation history, assemble the prompt, complete, append the
// disclaimer. It performs no retries; any stage error ends the run.
type AnswerService struct {
	corpus   []models.DocumentEmbedding
	embedder Embedder
	llm      LLM
	opts     AnswerOptions
	logger   *slog.Logger
}

// NewAnswerService wires dependencies. The corpus slice is treated as
// read-only for the lifetime of the service.
func NewAnswerService(corpus []models.DocumentEmbedding, embedder Embedder, llm LLM, opts AnswerOptions, logger *slog.Logger) *AnswerService {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	return &AnswerService{
		corpus:   corpus,
		embedder: embedder,
		llm:      llm,
		opts:     opts,
		logger:   logger,
	}
}

// Answer produces the finalized reply for one question and its thread
// history. An empty ranked context is valid: the prompt is still assembled
// and the model told the documentation holds no answer.
func (s *AnswerService) Answer(ctx context.Context, question string, history []models.ConversationTurn) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is empty")
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	contexts := Rank(queryVec, s.corpus, s.opts.TopN, s.opts.Threshold)
	s.logger.Info("ranked corpus", "corpus", len(s.corpus), "selected", len(contexts))
	for _, c := range contexts {
		s.logger.Debug("selected context", "package", c.Document.Package, "score", c.Score)
	}

	prompt := Assemble(question, contexts, CompressHistory(history))

	answer, err := s.llm.Complete(ctx, prompt, s.opts.Generation)
	if err != nil {
		return "", fmt.Errorf("complete prompt: %w", err)
	}

	return Finalize(answer), nil
}
