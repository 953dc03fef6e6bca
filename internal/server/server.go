// Package server implements the GenzAI backend: it fans questions out to
// the configured AI providers, picks the most confident answer, and
// exposes the chat, image and speech endpoints the client talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/SmartGenzAI1/GenzAI/internal/logger"
	"github.com/SmartGenzAI1/GenzAI/internal/server/provider"
)

const version = "2.1.0"

// DefaultPort is used when the PORT environment variable is unset.
const DefaultPort = 8000

// Environment variables holding provider credentials. A missing key
// means the matching provider is simply not registered.
const (
	EnvPort          = "PORT"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvPerplexityKey = "PERPLEXITY_API_KEY"
	EnvElevenLabsKey = "ELEVENLABS_API_KEY"
)

// Server is the backend HTTP service.
type Server struct {
	addr    string
	handler http.Handler
	log     *logger.Logger
}

// New assembles a Server from the environment. At least one chat
// provider key must be present.
func New(log *logger.Logger) (*Server, error) {
	var chats []provider.Chat
	var free provider.Chat
	var image provider.Image
	var speech provider.Speech

	if key := os.Getenv(EnvOpenAIKey); key != "" {
		openAI := provider.NewOpenAI(key)
		chats = append(chats, openAI)
		image = openAI
		log.Info("openai provider registered")
	}
	if key := os.Getenv(EnvPerplexityKey); key != "" {
		perplexity := provider.NewPerplexity(key)
		chats = append(chats, perplexity)
		// Perplexity is the cheaper chat backend, so /ask/free routes here.
		free = perplexity
		log.Info("perplexity provider registered")
	}
	if key := os.Getenv(EnvElevenLabsKey); key != "" {
		speech = provider.NewElevenLabs(key)
		log.Info("elevenlabs provider registered")
	}

	if len(chats) == 0 {
		return nil, errors.New("no chat providers configured: set " + EnvOpenAIKey + " or " + EnvPerplexityKey)
	}
	if free == nil {
		free = chats[0]
	}

	engine := NewEngine(log, chats...)
	handler := NewHandler(engine, free, image, speech, log)

	mux := http.NewServeMux()
	registerRoutes(mux, handler)

	return &Server{
		addr:    ":" + strconv.Itoa(portFromEnv()),
		handler: corsMiddleware(mux),
		log:     log,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("server listening on %s", s.addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func portFromEnv() int {
	raw := os.Getenv(EnvPort)
	if raw == "" {
		return DefaultPort
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return DefaultPort
	}
	return port
}
