package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/docbot-ai/answer-action/internal/config"
)

// VertexLLM implements LLM on top of a Vertex AI generative model.
type VertexLLM struct {
	client *genai.Client
	model  string
}

// NewVertexLLM creates a completion client for the configured model.
func NewVertexLLM(ctx context.Context, cfg config.Config) (*VertexLLM, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.Project, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vertex client: %w", err)
	}

	return &VertexLLM{
		client: client,
		model:  cfg.GenerationModel,
	}, nil
}

// Complete runs one completion request and returns the generated text.
func (l *VertexLLM) Complete(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	model := l.client.GenerativeModel(l.model)
	model.SetMaxOutputTokens(opts.MaxTokens)
	model.SetTemperature(opts.Temperature)
	model.SetTopP(opts.TopP)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected completion part %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

// Close releases the underlying Vertex AI client.
func (l *VertexLLM) Close() error {
	return l.client.Close()
}
