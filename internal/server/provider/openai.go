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
	openAIDefaultBaseURL = "https://api.openai.com"
	openAIChatModel      = "gpt-3.5-turbo"
	openAIConfidence     = 0.95
)

// OpenAI answers questions through the chat completions API and
// generates images through the images API.
type OpenAI struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOpenAI returns an OpenAI provider authenticated with apiKey.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		baseURL: openAIDefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewOpenAIWithBaseURL overrides the API host, for tests and proxies.
func NewOpenAIWithBaseURL(apiKey, baseURL string) *OpenAI {
	p := NewOpenAI(apiKey)
	p.baseURL = baseURL
	return p
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Ask(ctx context.Context, question string) (*Result, error) {
	body := chatRequest{
		Model: openAIChatModel,
		Messages: []chatMessage{
			{Role: RoleSystem, Content: "You are GenzAI, a helpful AI assistant."},
			{Role: RoleUser, Content: question},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	}

	var parsed chatResponse
	if err := p.postJSON(ctx, "/v1/chat/completions", body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	return &Result{
		Source:     p.Name(),
		Text:       parsed.Choices[0].Message.Content,
		Confidence: openAIConfidence,
	}, nil
}

type imageGenRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate creates one image and returns its hosted URL.
func (p *OpenAI) Generate(ctx context.Context, prompt, size string) (string, error) {
	body := imageGenRequest{Prompt: prompt, N: 1, Size: size}

	var parsed imageGenResponse
	if err := p.postJSON(ctx, "/v1/images/generations", body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("openai returned no image")
	}
	return parsed.Data[0].URL, nil
}

func (p *OpenAI) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("openai returned %d: %s", resp.StatusCode, string(snippet))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding openai response: %w", err)
	}
	return nil
}
