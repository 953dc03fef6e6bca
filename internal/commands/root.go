// Package commands provides CLI commands for genzai.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/config"
)

var (
	// Global flags
	backendFlag string
	outputFlag  string
	fileFlag    string
	rawFlag     bool
	freeFlag    bool

	// Version info (set at build time)
	Version   = "2.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "genzai [question]",
	Short: "CLI for the GenzAI assistant",
	Long: `genzai is a command-line client for the GenzAI backend. It asks
questions, generates images and speaks answers out loud, routing each
request to the best available AI service.

Examples:
  genzai chat                       Start interactive chat
  genzai "What is Go?"              Ask a single question
  genzai -f prompt.md               Read the question from a file
  cat prompt.md | genzai            Read the question from stdin
  genzai "Hello" -o response.md     Save the answer to a file
  genzai image "a red fox"          Generate an image
  genzai speak "Hello there"        Speak text out loud
  genzai serve                      Run the backend locally`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("genzai %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	config.LoadEnv()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Backend base URL (overrides config)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save answer to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print only the raw answer text")
	rootCmd.Flags().BoolVar(&freeFlag, "free", false, "Use the free tier endpoint")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

// getBackendURL returns the backend base URL (from flag or config)
func getBackendURL(cfg config.Config) string {
	if backendFlag != "" {
		return backendFlag
	}
	return cfg.BackendURL
}
