// Package models defines the shared domain types for the GenzAI client
// and backend: chat messages, connection state and the wire formats of
// every backend endpoint.
package models

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in the session message log. The log is ordered
// and append-only for the lifetime of a session; messages have no identity
// beyond their position.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConnectionStatus is the tri-state result of the startup health probe.
type ConnectionStatus int

const (
	StatusTesting ConnectionStatus = iota
	StatusOnline
	StatusOffline
)

// String returns a human-readable status label.
func (s ConnectionStatus) String() string {
	switch s {
	case StatusTesting:
		return "testing"
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}
