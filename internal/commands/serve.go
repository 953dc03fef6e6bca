package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/config"
	"github.com/SmartGenzAI1/GenzAI/internal/logger"
	"github.com/SmartGenzAI1/GenzAI/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GenzAI backend locally",
	Long: `Run the backend HTTP service. Provider credentials come from the
environment (or a .env file):

  OPENAI_API_KEY       chat and image generation
  PERPLEXITY_API_KEY   chat (also serves the free tier)
  ELEVENLABS_API_KEY   text to speech
  PORT                 listen port (default 8000)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, _ := config.LoadConfig()

	log := logger.New("server")
	log.SetVerbose(cfg.Verbose)

	srv, err := server.New(log)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
