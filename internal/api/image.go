package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// GenerateImage asks the backend to generate an image for the prompt.
// A 200 response carrying success=false is reported as a GenerationError
// with the server's reason; callers map it to the fixed apology text.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (*models.ImageResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apierrors.ErrEmptyDraft
	}
	if size == "" {
		size = models.DefaultImageSize
	}

	resp, err := c.postJSON(ctx, models.EndpointImage, models.ImageRequest{Prompt: prompt, Size: size})
	if err != nil {
		return nil, apierrors.NewNetworkError("generate image", models.EndpointImage, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body, 1<<20)
	if err != nil {
		return nil, apierrors.NewNetworkError("generate image", models.EndpointImage, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointImage, "generate image failed", truncate(string(body), maxErrorBody))
	}

	var image models.ImageResponse
	if err := json.Unmarshal(body, &image); err != nil {
		return nil, apierrors.NewParseError("image response is not valid JSON", models.EndpointImage)
	}

	if !image.Success {
		return nil, apierrors.NewGenerationError(image.Error)
	}

	if image.ImageURL == "" {
		return nil, apierrors.NewParseError("image response has no image_url", models.EndpointImage)
	}

	return &image, nil
}
