package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SmartGenzAI1/GenzAI/internal/api"
	"github.com/SmartGenzAI1/GenzAI/internal/chat"
	apperrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

type stubBackend struct{}

func (stubBackend) Health(ctx context.Context) (*models.HealthResponse, error) {
	return &models.HealthResponse{Status: models.HealthyStatus}, nil
}

func (stubBackend) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	return &models.AskResponse{Answer: "hello", Source: "openai"}, nil
}

func (stubBackend) AskFree(ctx context.Context, question string) (*models.AskResponse, error) {
	return &models.AskResponse{Answer: "hello"}, nil
}

func (stubBackend) GenerateImage(ctx context.Context, prompt, size string) (*models.ImageResponse, error) {
	return &models.ImageResponse{Success: true, ImageURL: "https://img.example/x.png"}, nil
}

func (stubBackend) TextToSpeech(ctx context.Context, text, voiceID string) (*api.Audio, error) {
	return &api.Audio{Data: []byte("audio")}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	session := chat.NewSession(stubBackend{})
	m := NewModel(session, "https://backend.example")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestModelNotReadyView(t *testing.T) {
	session := chat.NewSession(stubBackend{})
	m := NewModel(session, "https://backend.example")

	view := m.View()
	if !strings.Contains(view, "Initializing") {
		t.Errorf("expected initializing view, got %q", view)
	}
}

func TestWindowSizeMakesReady(t *testing.T) {
	m := newTestModel(t)
	if !m.ready {
		t.Error("expected model to be ready after WindowSizeMsg")
	}
	if m.viewport.Width != 96 {
		t.Errorf("viewport width = %d, want 96", m.viewport.Width)
	}
}

func TestTabCycling(t *testing.T) {
	m := newTestModel(t)

	if m.activeTab != tabChat {
		t.Fatalf("initial tab = %d, want chat", m.activeTab)
	}

	for i, want := range []tab{tabImage, tabVoice, tabSettings, tabChat} {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		if m.activeTab != want {
			t.Fatalf("after %d tabs: activeTab = %d, want %d", i+1, m.activeTab, want)
		}
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.activeTab != tabSettings {
		t.Errorf("shift+tab from chat should wrap to settings, got %d", m.activeTab)
	}
}

func TestEnterWithEmptyInputIsNoOp(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.loading {
		t.Error("empty input should not start loading")
	}
	if cmd != nil {
		t.Error("empty input should not produce a command")
	}
}

func TestEnterDispatchesChatMessage(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("what is go")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if !m.loading {
		t.Error("expected loading after dispatch")
	}
	if cmd == nil {
		t.Error("expected a command after dispatch")
	}
	if m.textarea.Value() != "" {
		t.Error("textarea should be cleared after dispatch")
	}
}

func TestEnterWhileLoadingIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m.loading = true
	m.textarea.SetValue("queued")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd != nil {
		t.Error("dispatch while loading should be a no-op")
	}
	if m.textarea.Value() != "queued" {
		t.Error("draft should be preserved while loading")
	}
}

func TestSendDoneClearsLoading(t *testing.T) {
	m := newTestModel(t)
	m.loading = true

	updated, _ := m.Update(sendDoneMsg{})
	m = updated.(Model)

	if m.loading {
		t.Error("sendDoneMsg should clear loading")
	}
}

func TestVoiceFailureShowsFixedApology(t *testing.T) {
	m := newTestModel(t)
	m.activeTab = tabVoice
	m.loading = true

	failure := apperrors.NewAPIError(502, "/text-to-speech", "synthesis rejected")
	updated, _ := m.Update(speakDoneMsg{err: failure})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, models.SpeechApology) {
		t.Error("voice failure view missing the fixed apology")
	}
	if strings.Contains(view, "API error") || strings.Contains(view, "synthesis rejected") {
		t.Error("raw backend error leaked into the view")
	}
}

func TestSpeechFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		apology bool
	}{
		{"nil", nil, false},
		{"busy passes through", apperrors.ErrBusy, false},
		{"offline passes through", apperrors.NewOfflineError("play speech"), false},
		{"backend failure", apperrors.NewAPIError(502, "/text-to-speech", "boom"), true},
		{"playback failure", errors.New("no audio device"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speechFailure(tt.err)
			if tt.apology {
				if got == nil || got.Error() != models.SpeechApology {
					t.Errorf("speechFailure() = %v, want the fixed apology", got)
				}
			} else if got != tt.err {
				t.Errorf("speechFailure() = %v, want %v unchanged", got, tt.err)
			}
		})
	}
}

func TestQuitCommands(t *testing.T) {
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		t.Run(input, func(t *testing.T) {
			m := newTestModel(t)
			m.textarea.SetValue(input)

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("expected QuitMsg, got %T", cmd())
			}
		})
	}
}

func TestFilterSessionErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		surface bool
	}{
		{"nil", nil, false},
		{"empty draft", apperrors.ErrEmptyDraft, true},
		{"busy", apperrors.ErrBusy, true},
		{"offline", apperrors.NewOfflineError("send"), true},
		{"remote failure already apologized", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterSessionErr(tt.err)
			if tt.surface && got == nil {
				t.Error("expected error to surface")
			}
			if !tt.surface && got != nil {
				t.Errorf("expected error to be swallowed, got %v", got)
			}
		})
	}
}

func TestViewShowsOfflineBanner(t *testing.T) {
	session := chat.NewSession(stubBackend{})
	m := NewModel(session, "https://backend.example")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	// Before the probe completes, no banner.
	if strings.Contains(m.View(), "offline. Messages") {
		t.Error("banner should not show while status is testing")
	}
}

func TestRenderTabsMarksActive(t *testing.T) {
	m := newTestModel(t)
	m.activeTab = tabImage

	tabsLine := m.renderTabs()
	for _, name := range tabNames {
		if !strings.Contains(tabsLine, name) {
			t.Errorf("tabs line missing %q", name)
		}
	}
}

func TestRenderLoadingAnimationFrames(t *testing.T) {
	m := newTestModel(t)

	seen := make(map[string]bool)
	for frame := 0; frame < 8; frame++ {
		m.animationFrame = frame
		seen[m.renderLoadingAnimation()] = true
	}
	if len(seen) < 2 {
		t.Error("loading animation should differ across frames")
	}
}

func TestInputLabelPerTab(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		tab   tab
		label string
	}{
		{tabChat, "You"},
		{tabImage, "Prompt"},
		{tabVoice, "Text to speak"},
	}
	for _, tt := range tests {
		m.activeTab = tt.tab
		if got := m.inputLabel(); got != tt.label {
			t.Errorf("inputLabel for tab %d = %q, want %q", tt.tab, got, tt.label)
		}
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != "" {
		t.Error("nil error should format to empty string")
	}

	msg := FormatError(apperrors.NewAPIError(503, "/ask", "service unavailable"))
	if !strings.Contains(msg, "503") {
		t.Errorf("expected HTTP status in output, got %q", msg)
	}

	netMsg := FormatError(apperrors.NewNetworkError("send", "/ask", errors.New("dial tcp: refused")))
	if !strings.Contains(netMsg, "internet connection") {
		t.Errorf("expected network hint, got %q", netMsg)
	}
}
