package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the HTTP layer.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
