package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SmartGenzAI1/GenzAI/internal/history"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
	"github.com/SmartGenzAI1/GenzAI/internal/render"
)

var exportFormatFlag string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage conversation history",
	Long:  `View and manage your local conversation history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all conversations",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a conversation as markdown or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversations",
	RunE:  runHistoryClear,
}

func init() {
	historyExportCmd.Flags().StringVar(&exportFormatFlag, "format", "markdown", "Export format (markdown or json)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(conversations) == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t--------\t-------")

	for _, conv := range conversations {
		updated := conv.UpdatedAt.Format("2006-01-02 15:04")
		title := conv.Title
		if len(title) > 40 {
			title = title[:40] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			conv.ID, title, len(conv.Messages), updated)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conv, err := store.GetConversation(args[0])
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	fmt.Printf("%s\n", conv.Title)
	fmt.Printf("Started %s, %d messages\n\n", conv.CreatedAt.Format("2006-01-02 15:04"), len(conv.Messages))

	for _, msg := range conv.Messages {
		if msg.Role == models.RoleUser {
			fmt.Printf("You:\n%s\n\n", msg.Content)
			continue
		}

		label := "GenzAI"
		if msg.Source != "" {
			label += " (" + msg.Source + ")"
		}
		rendered, err := render.MarkdownWithWidth(msg.Content, 100)
		if err != nil {
			rendered = msg.Content
		}
		fmt.Printf("%s:\n%s\n", label, strings.TrimRight(rendered, "\n"))
		if msg.ImageURL != "" {
			fmt.Printf("Image: %s\n", msg.ImageURL)
		}
		fmt.Println()
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	switch strings.ToLower(exportFormatFlag) {
	case "markdown", "md":
		out, err := store.ExportToMarkdown(args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Print(out)
	case "json":
		out, err := store.ExportToJSON(args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown format %q (markdown or json)", exportFormatFlag)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if err := store.DeleteConversation(args[0]); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if err := store.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}
