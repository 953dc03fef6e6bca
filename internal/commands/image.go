package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/config"
)

var imageSizeFlag string

var imageCmd = &cobra.Command{
	Use:   "image <prompt>",
	Short: "Generate an image from a prompt",
	Long: `Generate an image from a text prompt and print its URL.

The backend routes the prompt to its image provider. A generation
failure prints an apology rather than an error dump.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImage(args[0])
	},
}

func init() {
	imageCmd.Flags().StringVar(&imageSizeFlag, "size", "", "Image size (e.g. 1024x1024)")
}

func runImage(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg, _ := config.LoadConfig()
	if imageSizeFlag != "" {
		cfg.ImageSize = imageSizeFlag
	}

	session, err := newSession(cfg, false)
	if err != nil {
		return err
	}

	if !probeWithSpinner(session, false) {
		return fmt.Errorf("backend is offline")
	}

	spin := newSpinner("Generating image")
	spin.start()

	msg, err := session.GenerateImage(context.Background(), prompt)
	if err != nil && msg.Content == "" {
		spin.stopWithError()
		return fmt.Errorf("image generation failed: %w", err)
	}
	spin.stopWithSuccess("Done")

	if msg.ImageURL != "" {
		urlStyle := lipgloss.NewStyle().Foreground(colorPrimary).Underline(true)
		fmt.Println(urlStyle.Render(msg.ImageURL))
		return nil
	}

	// The apology entry, styled like a normal assistant reply.
	fmt.Println(assistantBubbleStyle.Render(msg.Content))
	return nil
}
