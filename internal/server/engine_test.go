package server

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SmartGenzAI1/GenzAI/internal/logger"
	"github.com/SmartGenzAI1/GenzAI/internal/server/provider"
)

type stubChat struct {
	name       string
	answer     string
	confidence float64
	err        error
	calls      atomic.Int32
}

func (s *stubChat) Name() string { return s.name }

func (s *stubChat) Ask(ctx context.Context, question string) (*provider.Result, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &provider.Result{Source: s.name, Text: s.answer, Confidence: s.confidence}, nil
}

func testLogger() *logger.Logger {
	log := logger.New("test")
	log.SetOutput(io.Discard)
	return log
}

func TestEngineAskPicksHighestConfidence(t *testing.T) {
	strong := &stubChat{name: "openai", answer: "strong", confidence: 0.95}
	weak := &stubChat{name: "perplexity", answer: "weak", confidence: 0.9}
	engine := NewEngine(testLogger(), weak, strong)

	resp := engine.Ask(context.Background(), "q")

	assert.Equal(t, "strong", resp.Answer)
	assert.Equal(t, "openai", resp.Source)
	assert.Equal(t, 0.95, resp.Confidence)
	assert.Equal(t, int32(1), strong.calls.Load())
	assert.Equal(t, int32(1), weak.calls.Load())
}

func TestEngineAskSurvivesPartialFailure(t *testing.T) {
	failing := &stubChat{name: "openai", err: errors.New("quota exceeded")}
	working := &stubChat{name: "perplexity", answer: "still here", confidence: 0.9}
	engine := NewEngine(testLogger(), failing, working)

	resp := engine.Ask(context.Background(), "q")

	assert.Equal(t, "still here", resp.Answer)
	assert.Equal(t, "perplexity", resp.Source)
}

func TestEngineAskAllFailed(t *testing.T) {
	a := &stubChat{name: "openai", err: errors.New("down")}
	b := &stubChat{name: "perplexity", err: errors.New("down")}
	engine := NewEngine(testLogger(), a, b)

	resp := engine.Ask(context.Background(), "q")

	assert.Equal(t, fallbackAnswer, resp.Answer)
	assert.Equal(t, fallbackSource, resp.Source)
	assert.Zero(t, resp.Confidence)
}

func TestEngineProviders(t *testing.T) {
	engine := NewEngine(testLogger(),
		&stubChat{name: "openai"},
		&stubChat{name: "perplexity"},
	)
	assert.Equal(t, []string{"openai", "perplexity"}, engine.Providers())
}

func TestChooseBestEmpty(t *testing.T) {
	assert.Nil(t, chooseBest(nil))
}
