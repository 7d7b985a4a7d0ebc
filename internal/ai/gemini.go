package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini generates completions and chat replies through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini constructs a Gemini-backed provider.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Complete asks the model for a short insertion at the cursor.
func (g *Gemini) Complete(ctx context.Context, code string, cursor int, language string) (string, error) {
	prompt := fmt.Sprintf(`You are a coding autocomplete assistant. Given the current code and cursor position, propose a SHORT single-line or small snippet that is the most likely next completion. Return ONLY the code to insert, no explanations.

Language: %s
Cursor Position: %d
Code so far:
-----
%s
-----
`, language, cursor, code)

	return g.generate(ctx, prompt)
}

// Chat answers a free-form prompt, optionally grounded in the current code.
func (g *Gemini) Chat(ctx context.Context, prompt, codeContext string) (Reply, error) {
	full := "You are a concise coding copilot and tutor.\n\n" + prompt
	if codeContext != "" {
		full += fmt.Sprintf("\n\n---\nCurrent code (optional):\n%s\n---\n", codeContext)
	}

	text, err := g.generate(ctx, full)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Provider: g.Name()}, nil
}

// Name identifies the Gemini provider.
func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("generate content: empty result")
	}

	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("extract response text: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}

	return strings.TrimSpace(text), nil
}
