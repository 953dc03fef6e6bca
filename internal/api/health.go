package api

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// Health probes the backend health endpoint. It returns the parsed health
// body; the caller decides what counts as online (status == "healthy").
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+models.EndpointHealth, nil)
	if err != nil {
		return nil, apierrors.NewNetworkError("health probe", models.EndpointHealth, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("health probe", models.EndpointHealth, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body, maxErrorBody)
	if err != nil {
		return nil, apierrors.NewNetworkError("health probe", models.EndpointHealth, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointHealth, "health probe failed", string(body))
	}

	var health models.HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, apierrors.NewParseError("health response is not valid JSON", models.EndpointHealth)
	}

	return &health, nil
}

// IsHealthy reports whether a probe result marks the backend online.
func IsHealthy(h *models.HealthResponse) bool {
	return h != nil && h.Status == models.HealthyStatus
}
