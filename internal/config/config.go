// Package config handles configuration for the genzai client and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

// EnvBackendURL is the environment variable that overrides the backend base
// URL from the config file.
const EnvBackendURL = "GENZAI_BACKEND_URL"

// MarkdownConfig configures markdown rendering of assistant messages
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", "dracula", "notty", "ascii"
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`        // Enable word wrap in table cells
}

// Config represents the user configuration
type Config struct {
	// BackendURL is the base address of the GenzAI backend. The
	// GENZAI_BACKEND_URL environment variable takes precedence.
	BackendURL string `json:"backend_url"`
	// AskFree routes one-shot questions through /ask/free instead of /ask.
	AskFree bool `json:"ask_free"`
	// DefaultVoice is the voice_id sent to /text-to-speech.
	DefaultVoice string `json:"default_voice"`
	// ImageSize is the size string sent to /generate-image.
	ImageSize string `json:"image_size"`
	// CopyToClipboard copies one-shot answers to the system clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// Verbose enables detailed logging of request timing and sources.
	Verbose     bool           `json:"verbose"`
	TUITheme    string         `json:"tui_theme,omitempty"`
	DownloadDir string         `json:"download_dir,omitempty"` // Directory for saved audio/images
	Markdown    MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BackendURL:      models.DefaultBackendURL,
		AskFree:         false,
		DefaultVoice:    models.DefaultVoiceID,
		ImageSize:       models.DefaultImageSize,
		CopyToClipboard: false,
		Verbose:         false,
		TUITheme:        "tokyonight",
		DownloadDir:     filepath.Join(homeDir, ".genzai", "media"),
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".genzai"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetDownloadDir returns the media download directory, creating it if necessary
func GetDownloadDir(cfg Config) (string, error) {
	dir := cfg.DownloadDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".genzai", "media")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	return dir, nil
}

// LoadConfig loads the configuration from disk, applying environment
// overrides. A missing config file is not an error; defaults apply.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("failed to parse config file: %w", err)
	}

	return applyEnv(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory if present.
// Missing files are ignored; real process env always wins.
func LoadEnv() {
	_ = godotenv.Load()
}

// applyEnv overlays environment variables onto a loaded config.
func applyEnv(cfg Config) Config {
	if url := os.Getenv(EnvBackendURL); url != "" {
		cfg.BackendURL = url
	}
	return cfg
}
