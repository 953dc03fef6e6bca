package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/SmartGenzAI1/GenzAI/internal/logger"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
	"github.com/SmartGenzAI1/GenzAI/internal/server/provider"
)

// Handler serves the public API routes.
type Handler struct {
	engine *Engine
	free   provider.Chat
	image  provider.Image
	speech provider.Speech
	log    *logger.Logger
}

// NewHandler wires the route handlers to their providers. free, image
// and speech may be nil when the matching API key is not configured.
func NewHandler(engine *Engine, free provider.Chat, image provider.Image, speech provider.Speech, log *logger.Logger) *Handler {
	return &Handler{
		engine: engine,
		free:   free,
		image:  image,
		speech: speech,
		log:    log,
	}
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "GenzAI backend",
		"status":  "running",
		"version": version,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    models.HealthyStatus,
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  h.engine.Providers(),
	})
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	resp := h.engine.Ask(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAskFree(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	if h.free == nil {
		writeJSON(w, http.StatusOK, models.AskResponse{
			Answer: fallbackAnswer,
			Source: fallbackSource,
		})
		return
	}
	res, err := h.free.Ask(r.Context(), req.Question)
	if err != nil {
		h.log.Warn("free provider failed: %v", err)
		writeJSON(w, http.StatusOK, models.AskResponse{
			Answer: fallbackAnswer,
			Source: fallbackSource,
		})
		return
	}
	writeJSON(w, http.StatusOK, models.AskResponse{
		Answer:     res.Text,
		Source:     res.Source,
		Confidence: res.Confidence,
	})
}

func (h *Handler) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req models.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}
	if req.Size == "" {
		req.Size = models.DefaultImageSize
	}
	if h.image == nil {
		writeJSON(w, http.StatusOK, models.ImageResponse{
			Success: false,
			Error:   "image generation is not configured",
		})
		return
	}

	url, err := h.image.Generate(r.Context(), req.Prompt, req.Size)
	if err != nil {
		h.log.Warn("image generation failed: %v", err)
		writeJSON(w, http.StatusOK, models.ImageResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, models.ImageResponse{
		Success:  true,
		ImageURL: url,
		Source:   "openai",
	})
}

func (h *Handler) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req models.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.VoiceID == "" {
		req.VoiceID = models.DefaultVoiceID
	}
	if h.speech == nil {
		http.Error(w, "speech synthesis is not configured", http.StatusBadGateway)
		return
	}

	data, contentType, err := h.speech.Synthesize(r.Context(), req.Text, req.VoiceID)
	if err != nil {
		h.log.Warn("speech synthesis failed: %v", err)
		http.Error(w, "speech synthesis failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func decodeQuestion(w http.ResponseWriter, r *http.Request) (models.AskRequest, bool) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
