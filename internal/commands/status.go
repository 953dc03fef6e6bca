package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/api"
	"github.com/SmartGenzAI1/GenzAI/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity",
	Long:  `Probe the backend /health endpoint and report its status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func runStatus() error {
	cfg, _ := config.LoadConfig()
	baseURL := getBackendURL(cfg)

	client, err := api.NewClient(baseURL)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	fmt.Printf("Backend: %s\n", baseURL)

	health, err := client.Health(context.Background())
	if err != nil {
		offline := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
		fmt.Println("Status:  " + offline.Render("offline"))
		fmt.Printf("Reason:  %v\n", err)
		return nil
	}

	if api.IsHealthy(health) {
		online := lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
		fmt.Println("Status:  " + online.Render("online"))
	} else {
		degraded := lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true)
		fmt.Printf("Status:  %s (reported %q)\n", degraded.Render("degraded"), health.Status)
	}

	if health.Timestamp != "" {
		fmt.Printf("Time:    %s\n", health.Timestamp)
	}
	if len(health.Services) > 0 {
		fmt.Printf("Services: %s\n", strings.Join(health.Services, ", "))
	}
	return nil
}
