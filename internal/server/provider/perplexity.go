package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	perplexityDefaultBaseURL = "https://api.perplexity.ai"
	perplexityChatModel      = "sonar-small-chat"
	perplexityConfidence     = 0.9
)

// Perplexity answers questions through the Perplexity chat API.
type Perplexity struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewPerplexity returns a Perplexity provider authenticated with apiKey.
func NewPerplexity(apiKey string) *Perplexity {
	return &Perplexity{
		baseURL: perplexityDefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewPerplexityWithBaseURL overrides the API host, for tests.
func NewPerplexityWithBaseURL(apiKey, baseURL string) *Perplexity {
	p := NewPerplexity(apiKey)
	p.baseURL = baseURL
	return p
}

func (p *Perplexity) Name() string { return "perplexity" }

func (p *Perplexity) Ask(ctx context.Context, question string) (*Result, error) {
	body := chatRequest{
		Model: perplexityChatModel,
		Messages: []chatMessage{
			{Role: RoleSystem, Content: "Be helpful and precise."},
			{Role: RoleUser, Content: question},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("perplexity returned %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding perplexity response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("perplexity returned no choices")
	}
	return &Result{
		Source:     p.Name(),
		Text:       parsed.Choices[0].Message.Content,
		Confidence: perplexityConfidence,
	}, nil
}
