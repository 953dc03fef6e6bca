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

const elevenLabsDefaultBaseURL = "https://api.elevenlabs.io"

// ElevenLabs synthesizes speech through the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewElevenLabs returns an ElevenLabs provider authenticated with apiKey.
func NewElevenLabs(apiKey string) *ElevenLabs {
	return &ElevenLabs{
		baseURL: elevenLabsDefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// NewElevenLabsWithBaseURL overrides the API host, for tests.
func NewElevenLabsWithBaseURL(apiKey, baseURL string) *ElevenLabs {
	p := NewElevenLabs(apiKey)
	p.baseURL = baseURL
	return p
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to audio and returns the raw bytes plus the
// response content type.
func (p *ElevenLabs) Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error) {
	payload, err := json.Marshal(speechRequest{Text: text, ModelID: "eleven_monolingual_v1"})
	if err != nil {
		return nil, "", fmt.Errorf("encoding request: %w", err)
	}

	url := p.baseURL + "/v1/text-to-speech/" + voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("elevenlabs returned %d: %s", resp.StatusCode, string(snippet))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading audio: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("elevenlabs returned empty audio")
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return data, contentType, nil
}
