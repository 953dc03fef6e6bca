package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/api"
	"github.com/SmartGenzAI1/GenzAI/internal/audio"
	"github.com/SmartGenzAI1/GenzAI/internal/config"
	apperrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

var (
	voiceFlag    string
	saveAudioDir string
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Convert text to speech and play it",
	Long: `Convert text to speech through the backend and play it on the
default audio device. Use --save to write the audio to a directory
instead of playing it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeak(args[0])
	},
}

func init() {
	speakCmd.Flags().StringVar(&voiceFlag, "voice", "", "Voice ID to use")
	speakCmd.Flags().StringVar(&saveAudioDir, "save", "", "Save audio to directory instead of playing")
}

func runSpeak(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	cfg, _ := config.LoadConfig()
	if voiceFlag != "" {
		cfg.DefaultVoice = voiceFlag
	}

	// Saving bypasses the player, so use the API client directly.
	if saveAudioDir != "" {
		return saveSpeech(cfg, text)
	}

	session, err := newSession(cfg, false)
	if err != nil {
		return err
	}

	if !probeWithSpinner(session, false) {
		return fmt.Errorf("backend is offline")
	}

	spin := newSpinner("Synthesizing speech")
	spin.start()

	if err := session.Speak(context.Background(), text); err != nil {
		spin.stopWithError()
		return speechFailure(err)
	}
	spin.stopWithSuccess("Played")
	return nil
}

// speechFailure collapses synthesis and playback failures to the fixed
// voice apology; guard errors pass through unchanged.
func speechFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrEmptyDraft),
		errors.Is(err, apperrors.ErrBusy),
		apperrors.IsOffline(err):
		return err
	default:
		return errors.New(models.SpeechApology)
	}
}

func saveSpeech(cfg config.Config, text string) error {
	client, err := api.NewClient(getBackendURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	spin := newSpinner("Synthesizing speech")
	spin.start()

	payload, err := client.TextToSpeech(context.Background(), text, cfg.DefaultVoice)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("speech failed: %w", err)
	}

	path, err := audio.NewPlayer(saveAudioDir).Save(payload)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("saving audio: %w", err)
	}
	spin.stopWithSuccess("Saved to " + path)
	return nil
}
