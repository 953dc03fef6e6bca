package models

// DefaultBackendURL is the fallback backend host used when neither the
// environment nor the config file provides one.
const DefaultBackendURL = "https://genzai-backend.onrender.com"

// Endpoint paths on the GenzAI backend
const (
	EndpointHealth       = "/health"
	EndpointAsk          = "/ask"
	EndpointAskFree      = "/ask/free"
	EndpointImage        = "/generate-image"
	EndpointTextToSpeech = "/text-to-speech"
)

// Request defaults
const (
	DefaultImageSize = "1024x1024"
	DefaultVoiceID   = "Rachel"
)

// HealthyStatus is the /health body value that marks the backend online.
// Anything else, including transport failure, counts as offline.
const HealthyStatus = "healthy"

// Fixed user-visible fallback messages. Every failure class (transport,
// non-2xx, application-level failure flag) collapses to one of these;
// the raw backend error is never surfaced in the message log.
const (
	ChatApology   = "Sorry, I couldn't reach the GenzAI backend. Please try again in a moment."
	ImageApology  = "Sorry, I couldn't generate that image. Please try a different prompt."
	SpeechApology = "Sorry, voice playback isn't available right now."
)
