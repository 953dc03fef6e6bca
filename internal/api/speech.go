package api

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// maxAudioBody caps a text-to-speech payload at 32 MiB.
const maxAudioBody = 32 << 20

// Audio is a synthesized speech payload.
type Audio struct {
	Data        []byte
	ContentType string
}

// TextToSpeech synthesizes speech for the given text and returns the raw
// audio bytes. voiceID falls back to the backend default when empty.
func (c *Client) TextToSpeech(ctx context.Context, text, voiceID string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierrors.ErrEmptyDraft
	}
	if voiceID == "" {
		voiceID = models.DefaultVoiceID
	}

	resp, err := c.postJSON(ctx, models.EndpointTextToSpeech, models.SpeechRequest{Text: text, VoiceID: voiceID})
	if err != nil {
		return nil, apierrors.NewNetworkError("text to speech", models.EndpointTextToSpeech, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := readBody(resp.Body, maxErrorBody)
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointTextToSpeech, "text to speech failed", string(body))
	}

	data, err := readBody(resp.Body, maxAudioBody)
	if err != nil {
		return nil, apierrors.NewNetworkError("text to speech", models.EndpointTextToSpeech, err)
	}

	if len(data) == 0 {
		return nil, apierrors.NewParseError("empty audio payload", models.EndpointTextToSpeech)
	}

	return &Audio{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
