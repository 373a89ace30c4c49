package llm

import (
	"context"
)

// Provider is the completion interface every backing model implements.
// The writing pipeline only ever needs single-shot text completions:
// one prompt in, one text out.
type Provider interface {
	// Complete generates a completion for the given request.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// Name returns the provider name (e.g. "openai", "anthropic")
	Name() string
}

// CompletionRequest contains the parameters for a completion call.
type CompletionRequest struct {
	// Prompt is the user-role content.
	Prompt string

	// SystemPrompt is optional system-role framing.
	SystemPrompt string

	// Model overrides the provider's default model when set.
	Model string

	// MaxTokens bounds the response length. Zero means provider default.
	MaxTokens int

	// Temperature is the sampling temperature. Nil means provider default.
	Temperature *float64
}

// Temp is a convenience constructor for CompletionRequest.Temperature.
func Temp(v float64) *float64 {
	return &v
}
