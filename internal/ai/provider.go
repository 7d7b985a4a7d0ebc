package ai

import "context"

// Reply is the result of a chat-style generation, tagged with the provider
// that actually produced it.
type Reply struct {
	Text     string
	Provider string
}

// Provider generates text from code or chat prompts.
type Provider interface {
	// Complete proposes a short completion to insert at the cursor.
	Complete(ctx context.Context, code string, cursor int, language string) (string, error)

	// Chat answers a free-form prompt, optionally grounded in the
	// current code.
	Chat(ctx context.Context, prompt, codeContext string) (Reply, error)

	// Name identifies the provider in reply tags.
	Name() string
}
