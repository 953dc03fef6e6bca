package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// ExportToMarkdown renders a conversation as a markdown document.
func (s *Store) ExportToMarkdown(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")

	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n**Updated:** ")
	sb.WriteString(conv.UpdatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString(fmt.Sprintf("\n**Messages:** %d\n\n---\n\n", len(conv.Messages)))

	for i, msg := range conv.Messages {
		role := "User"
		if msg.Role == models.RoleAssistant {
			role = "Assistant"
			if msg.Source != "" {
				role = fmt.Sprintf("Assistant (%s)", msg.Source)
			}
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if msg.ImageURL != "" {
			sb.WriteString("\n![generated image](")
			sb.WriteString(msg.ImageURL)
			sb.WriteString(")\n")
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// ExportToJSON renders a conversation as indented JSON.
func (s *Store) ExportToJSON(id string) ([]byte, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(conv, "", "  ")
}
