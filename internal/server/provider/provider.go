// Package provider contains the upstream AI service clients the server
// fans questions out to. Each provider returns an answer with a fixed
// confidence score so the decision engine can rank them.
package provider

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Result is one provider's answer to a question.
type Result struct {
	Source     string
	Text       string
	Confidence float64
}

// Chat answers free-form questions.
type Chat interface {
	Name() string
	Ask(ctx context.Context, question string) (*Result, error)
}

// Image generates an image from a prompt and returns its URL.
type Image interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

// Speech synthesizes text into audio bytes.
type Speech interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}
