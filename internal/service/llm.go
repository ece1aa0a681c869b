package service

import "context"

// GenerationOptions bound a single completion request.
type GenerationOptions struct {
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// LLM is the completion-model collaborator.
type LLM interface {
	Complete(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}
