package models

// AskRequest is the body for POST /ask and /ask/free.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the body of a successful /ask reply.
type AskResponse struct {
	Answer     string  `json:"answer"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ImageRequest is the body for POST /generate-image.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

// ImageResponse is the body of a /generate-image reply. A 200 response may
// still carry Success=false with the failure reason in Error.
type ImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url,omitempty"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SpeechRequest is the body for POST /text-to-speech. The reply is the raw
// audio payload, not JSON.
type SpeechRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp,omitempty"`
	Services  []string `json:"services,omitempty"`
}
