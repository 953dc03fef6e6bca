package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// Ask sends a question to /ask and returns the backend's chosen answer.
func (c *Client) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apierrors.ErrEmptyDraft
	}

	resp, err := c.postJSON(ctx, models.EndpointAsk, models.AskRequest{Question: question})
	if err != nil {
		return nil, apierrors.NewNetworkError("ask", models.EndpointAsk, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body, 1<<20)
	if err != nil {
		return nil, apierrors.NewNetworkError("ask", models.EndpointAsk, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointAsk, "ask failed", truncate(string(body), maxErrorBody))
	}

	var answer models.AskResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, apierrors.NewParseError("ask response is not valid JSON", models.EndpointAsk)
	}

	if answer.Answer == "" {
		return nil, apierrors.NewParseError("ask response has no answer field", models.EndpointAsk)
	}

	return &answer, nil
}

// AskFree sends a question to /ask/free. The endpoint passes through whatever
// JSON the underlying provider produced, so the shape is not guaranteed; the
// answer is extracted leniently from the known field names.
func (c *Client) AskFree(ctx context.Context, question string) (*models.AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apierrors.ErrEmptyDraft
	}

	resp, err := c.postJSON(ctx, models.EndpointAskFree, models.AskRequest{Question: question})
	if err != nil {
		return nil, apierrors.NewNetworkError("ask free", models.EndpointAskFree, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body, 1<<20)
	if err != nil {
		return nil, apierrors.NewNetworkError("ask free", models.EndpointAskFree, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointAskFree, "ask free failed", truncate(string(body), maxErrorBody))
	}

	return parseFreeAnswer(body)
}

// parseFreeAnswer extracts an answer from a passthrough provider response.
// Known shapes: our own {answer, source}, OpenAI-style
// {choices[0].message.content}, and a bare {response} field.
func parseFreeAnswer(body []byte) (*models.AskResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("free response is not valid JSON", models.EndpointAskFree)
	}

	parsed := gjson.ParseBytes(body)

	answer := parsed.Get("answer")
	if !answer.Exists() {
		answer = parsed.Get("choices.0.message.content")
	}
	if !answer.Exists() {
		answer = parsed.Get("response")
	}
	if !answer.Exists() || answer.String() == "" {
		return nil, apierrors.NewParseError("no answer found in free response", models.EndpointAskFree)
	}

	source := parsed.Get("source").String()
	if source == "" {
		source = parsed.Get("model").String()
	}

	return &models.AskResponse{
		Answer:     answer.String(),
		Source:     source,
		Confidence: parsed.Get("confidence").Float(),
	}, nil
}

// truncate caps s at n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
