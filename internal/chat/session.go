// Package chat implements the client-side request orchestration: the
// connection probe, the in-memory message log, and the dispatch of chat,
// image and speech requests with their fallback behavior.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SmartGenzAI1/GenzAI/internal/api"
	apierrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// Backend is the slice of the API client the orchestrator needs.
type Backend interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
	Ask(ctx context.Context, question string) (*models.AskResponse, error)
	AskFree(ctx context.Context, question string) (*models.AskResponse, error)
	GenerateImage(ctx context.Context, prompt, size string) (*models.ImageResponse, error)
	TextToSpeech(ctx context.Context, text, voiceID string) (*api.Audio, error)
}

// Player plays a synthesized speech payload.
type Player interface {
	Play(audio *api.Audio) error
}

// action identifies one of the gated request kinds. Each action carries its
// own in-flight flag so a second request of the same kind cannot overlap the
// first, while different kinds stay independent.
type action int

const (
	actionSend action = iota
	actionImage
	actionSpeak
)

// Session owns the ordered, append-only message log and the online gate.
// All methods are safe for concurrent use; TUI commands run in goroutines.
type Session struct {
	backend Backend
	player  Player

	askFree   bool
	voiceID   string
	imageSize string

	mu       sync.Mutex
	status   models.ConnectionStatus
	messages []models.Message
	inFlight [3]bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPlayer sets the audio player used by Speak.
func WithPlayer(p Player) SessionOption {
	return func(s *Session) {
		s.player = p
	}
}

// WithAskFree routes Send through /ask/free instead of /ask.
func WithAskFree(enabled bool) SessionOption {
	return func(s *Session) {
		s.askFree = enabled
	}
}

// WithVoice sets the voice used by Speak.
func WithVoice(voiceID string) SessionOption {
	return func(s *Session) {
		s.voiceID = voiceID
	}
}

// WithImageSize sets the size requested from the image endpoint.
func WithImageSize(size string) SessionOption {
	return func(s *Session) {
		s.imageSize = size
	}
}

// NewSession creates a session starting in the testing state. Callers run
// Probe once before allowing user actions.
func NewSession(backend Backend, opts ...SessionOption) *Session {
	s := &Session{
		backend:   backend,
		status:    models.StatusTesting,
		voiceID:   models.DefaultVoiceID,
		imageSize: models.DefaultImageSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Probe performs the one-time startup health check. A body with
// status=="healthy" marks the session online; any other body, a non-2xx
// status or a transport failure marks it offline. There is no retry and no
// periodic re-check.
func (s *Session) Probe(ctx context.Context) models.ConnectionStatus {
	health, err := s.backend.Health(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil && api.IsHealthy(health) {
		s.status = models.StatusOnline
	} else {
		s.status = models.StatusOffline
	}
	return s.status
}

// Status returns the current connection status.
func (s *Session) Status() models.ConnectionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Online reports whether the probe marked the backend reachable.
func (s *Session) Online() bool {
	return s.Status() == models.StatusOnline
}

// Messages returns a copy of the message log.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Loading reports whether any request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[actionSend] || s.inFlight[actionImage] || s.inFlight[actionSpeak]
}

// begin validates the gate and claims the in-flight flag for an action.
func (s *Session) begin(act action, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != models.StatusOnline {
		return apierrors.NewOfflineError(name)
	}
	if s.inFlight[act] {
		return apierrors.ErrBusy
	}
	s.inFlight[act] = true
	return nil
}

// end releases an action's in-flight flag.
func (s *Session) end(act action) {
	s.mu.Lock()
	s.inFlight[act] = false
	s.mu.Unlock()
}

// append adds a message to the log and returns a copy of it.
func (s *Session) append(msg models.Message) models.Message {
	msg.Timestamp = time.Now()
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

// Send dispatches a chat question. An empty draft or an offline session is a
// no-op: nothing is appended and no request is issued. Otherwise the trimmed
// draft is appended as a user message, the question is sent, and either the
// assistant answer or the fixed chat apology is appended. The returned
// message is the assistant entry; the error, when non-nil, is the underlying
// failure for logging and never reaches the message log verbatim.
func (s *Session) Send(ctx context.Context, draft string) (models.Message, error) {
	question := strings.TrimSpace(draft)
	if question == "" {
		return models.Message{}, apierrors.ErrEmptyDraft
	}

	if err := s.begin(actionSend, "send message"); err != nil {
		return models.Message{}, err
	}
	defer s.end(actionSend)

	s.append(models.Message{Role: models.RoleUser, Content: question})

	var (
		answer *models.AskResponse
		err    error
	)
	if s.askFree {
		answer, err = s.backend.AskFree(ctx, question)
	} else {
		answer, err = s.backend.Ask(ctx, question)
	}

	if err != nil {
		msg := s.append(models.Message{
			Role:    models.RoleAssistant,
			Content: models.ChatApology,
			Source:  "system",
		})
		return msg, err
	}

	msg := s.append(models.Message{
		Role:    models.RoleAssistant,
		Content: answer.Answer,
		Source:  answer.Source,
	})
	return msg, nil
}

// GenerateImage dispatches an image generation request with the same gate
// and append semantics as Send. On success the assistant entry carries the
// image URL; on any failure, including a 200 with success=false, the entry
// is the fixed image apology and never the raw server error string.
func (s *Session) GenerateImage(ctx context.Context, prompt string) (models.Message, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.Message{}, apierrors.ErrEmptyDraft
	}

	if err := s.begin(actionImage, "generate image"); err != nil {
		return models.Message{}, err
	}
	defer s.end(actionImage)

	s.append(models.Message{Role: models.RoleUser, Content: prompt})

	image, err := s.backend.GenerateImage(ctx, prompt, s.imageSize)
	if err != nil {
		msg := s.append(models.Message{
			Role:    models.RoleAssistant,
			Content: models.ImageApology,
			Source:  "system",
		})
		return msg, err
	}

	msg := s.append(models.Message{
		Role:     models.RoleAssistant,
		Content:  "Here's your generated image:",
		Source:   image.Source,
		ImageURL: image.ImageURL,
	})
	return msg, nil
}

// Speak synthesizes the text and plays it through the configured player.
// Nothing is appended to the message log; failures surface only through the
// returned error, which callers present as the fixed speech apology.
func (s *Session) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apierrors.ErrEmptyDraft
	}
	if s.player == nil {
		return apierrors.NewParseError("no audio player configured", models.EndpointTextToSpeech)
	}

	if err := s.begin(actionSpeak, "play speech"); err != nil {
		return err
	}
	defer s.end(actionSpeak)

	audio, err := s.backend.TextToSpeech(ctx, text, s.voiceID)
	if err != nil {
		return err
	}

	return s.player.Play(audio)
}
