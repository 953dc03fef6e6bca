package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/config"
	"github.com/SmartGenzAI1/GenzAI/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long:  `Show the current configuration, or change a setting with 'config set'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a configuration value. Keys:

  backend_url        Backend base URL
  ask_free           Route questions through the free tier (true/false)
  default_voice      Voice ID for text-to-speech
  image_size         Image size for generation (e.g. 1024x1024)
  copy_to_clipboard  Copy one-shot answers to the clipboard (true/false)
  verbose            Verbose logging (true/false)
  tui_theme          TUI color theme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Warning: %v (showing defaults)\n\n", err)
	}

	fmt.Printf("backend_url        %s\n", cfg.BackendURL)
	fmt.Printf("ask_free           %t\n", cfg.AskFree)
	fmt.Printf("default_voice      %s\n", cfg.DefaultVoice)
	fmt.Printf("image_size         %s\n", cfg.ImageSize)
	fmt.Printf("copy_to_clipboard  %t\n", cfg.CopyToClipboard)
	fmt.Printf("verbose            %t\n", cfg.Verbose)
	fmt.Printf("tui_theme          %s\n", cfg.TUITheme)
	fmt.Printf("download_dir       %s\n", cfg.DownloadDir)
	return nil
}

func runConfigSet(key, value string) error {
	cfg, _ := config.LoadConfig()

	switch strings.ToLower(key) {
	case "backend_url":
		cfg.BackendURL = value
	case "ask_free":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ask_free must be true or false")
		}
		cfg.AskFree = b
	case "default_voice":
		cfg.DefaultVoice = value
	case "image_size":
		cfg.ImageSize = value
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false")
		}
		cfg.CopyToClipboard = b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b
	case "tui_theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)",
				value, strings.Join(render.TUIThemeNames(), ", "))
		}
		cfg.TUITheme = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("%s set to %s\n", key, value)
	return nil
}
