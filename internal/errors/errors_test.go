package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewNetworkError("ask", "/ask", inner)

	if !IsNetworkError(err) {
		t.Error("IsNetworkError() = false, want true")
	}
	if !errors.Is(err, inner) {
		t.Error("NetworkError should unwrap to the inner error")
	}
	want := "network error during ask (/ask): connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(503, "/ask", "ask failed")

	if !IsAPIError(err) {
		t.Error("IsAPIError() = false, want true")
	}
	if got := GetHTTPStatus(err); got != 503 {
		t.Errorf("GetHTTPStatus() = %d, want 503", got)
	}
	want := "API error [503] at /ask: ask failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAPIErrorWithBody(t *testing.T) {
	err := NewAPIErrorWithBody(500, "/generate-image", "image failed", `{"detail":"boom"}`)
	if err.Body != `{"detail":"boom"}` {
		t.Errorf("Body = %q, want raw body preserved", err.Body)
	}
}

func TestGenerationError(t *testing.T) {
	err := NewGenerationError("bad prompt")

	if !IsGenerationError(err) {
		t.Error("IsGenerationError() = false, want true")
	}
	if err.Error() != "generation failed: bad prompt" {
		t.Errorf("Error() = %q", err.Error())
	}

	empty := NewGenerationError("")
	if empty.Error() != "generation failed" {
		t.Errorf("Error() = %q, want %q", empty.Error(), "generation failed")
	}
}

func TestOfflineError(t *testing.T) {
	err := NewOfflineError("send message")

	if !IsOffline(err) {
		t.Error("IsOffline() = false, want true")
	}
	if !errors.Is(err, ErrOffline) {
		t.Error("errors.Is(err, ErrOffline) = false, want true")
	}
	want := "cannot send message: backend is offline"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	// Wrapped offline errors still classify
	wrapped := fmt.Errorf("dispatch: %w", err)
	if !IsOffline(wrapped) {
		t.Error("IsOffline(wrapped) = false, want true")
	}
}

func TestGetHTTPStatus_NonAPIError(t *testing.T) {
	if got := GetHTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("GetHTTPStatus(plain error) = %d, want 0", got)
	}
	if got := GetHTTPStatus(nil); got != 0 {
		t.Errorf("GetHTTPStatus(nil) = %d, want 0", got)
	}
}

func TestClassifiersRejectOtherKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		fn   func(error) bool
	}{
		{"network is not api", NewNetworkError("ask", "/ask", errors.New("x")), IsAPIError},
		{"api is not network", NewAPIError(500, "/ask", "x"), IsNetworkError},
		{"generation is not offline", NewGenerationError("x"), IsOffline},
		{"parse is not generation", NewParseError("x", "/ask"), IsGenerationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn(tt.err) {
				t.Errorf("classifier matched the wrong error kind: %v", tt.err)
			}
		})
	}
}
