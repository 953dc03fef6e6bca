package server

import (
	"context"
	"sync"

	"github.com/SmartGenzAI1/GenzAI/internal/logger"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
	"github.com/SmartGenzAI1/GenzAI/internal/server/provider"
)

// fallbackAnswer is returned when every provider fails.
const (
	fallbackAnswer = "I apologize, but all AI services are currently unavailable. Please try again later."
	fallbackSource = "system"
)

// Engine fans a question out to every chat provider at once and keeps
// the answer with the highest confidence.
type Engine struct {
	chats []provider.Chat
	log   *logger.Logger
}

// NewEngine returns an Engine over the given chat providers.
func NewEngine(log *logger.Logger, chats ...provider.Chat) *Engine {
	return &Engine{chats: chats, log: log}
}

// Providers lists the registered provider names.
func (e *Engine) Providers() []string {
	names := make([]string, 0, len(e.chats))
	for _, c := range e.chats {
		names = append(names, c.Name())
	}
	return names
}

// Ask queries all providers concurrently and returns the best answer.
// Every provider failing is not an error: the caller gets the fixed
// fallback answer with source "system" and confidence zero.
func (e *Engine) Ask(ctx context.Context, question string) models.AskResponse {
	results := e.askAll(ctx, question)
	best := chooseBest(results)
	if best == nil {
		return models.AskResponse{
			Answer: fallbackAnswer,
			Source: fallbackSource,
		}
	}
	return models.AskResponse{
		Answer:     best.Text,
		Source:     best.Source,
		Confidence: best.Confidence,
	}
}

func (e *Engine) askAll(ctx context.Context, question string) []*provider.Result {
	resultChan := make(chan *provider.Result, len(e.chats))

	var wg sync.WaitGroup
	for _, c := range e.chats {
		wg.Add(1)
		go func(c provider.Chat) {
			defer wg.Done()
			res, err := c.Ask(ctx, question)
			if err != nil {
				e.log.Warn("provider %s failed: %v", c.Name(), err)
				return
			}
			resultChan <- res
		}(c)
	}
	wg.Wait()
	close(resultChan)

	results := make([]*provider.Result, 0, len(e.chats))
	for res := range resultChan {
		results = append(results, res)
	}
	return results
}

func chooseBest(results []*provider.Result) *provider.Result {
	var best *provider.Result
	for _, r := range results {
		if best == nil || r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}
