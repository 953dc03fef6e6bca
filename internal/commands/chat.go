package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/config"
	"github.com/SmartGenzAI1/GenzAI/internal/history"
	"github.com/SmartGenzAI1/GenzAI/internal/render"
	"github.com/SmartGenzAI1/GenzAI/internal/tui"
)

var noSaveFlag bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with GenzAI.

The session keeps an in-memory message log and checks backend health
on startup. Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	chatCmd.Flags().BoolVar(&noSaveFlag, "no-save", false, "Do not save the conversation to history")
}

func runChat() error {
	cfg, _ := config.LoadConfig()

	if cfg.TUITheme != "" {
		if render.SetTUITheme(cfg.TUITheme) {
			tui.UpdateTheme()
		}
	}

	session, err := newSession(cfg, cfg.AskFree)
	if err != nil {
		return err
	}

	if err := tui.Run(session, getBackendURL(cfg)); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}

	// Persist the transcript once the session ends.
	messages := session.Messages()
	if noSaveFlag || len(messages) == 0 {
		return nil
	}

	store, err := history.DefaultStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return nil
	}
	conv, err := store.CreateConversation(getBackendURL(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save conversation: %v\n", err)
		return nil
	}
	for _, msg := range messages {
		if err := store.AddMessage(conv.ID, msg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save message: %v\n", err)
			return nil
		}
	}
	fmt.Fprintf(os.Stderr, "Conversation saved as %s\n", conv.ID)
	return nil
}
