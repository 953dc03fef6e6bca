package history

import (
	"strings"
	"testing"
	"time"

	"github.com/SmartGenzAI1/GenzAI/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() returned error: %v", err)
	}
	return store
}

func TestCreateAndGetConversation(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("http://localhost:8000")
	if err != nil {
		t.Fatalf("CreateConversation() returned error: %v", err)
	}
	if !strings.HasPrefix(conv.ID, "conv-") {
		t.Errorf("ID = %q, want conv- prefix", conv.ID)
	}
	if conv.Backend != "http://localhost:8000" {
		t.Errorf("Backend = %q", conv.Backend)
	}

	got, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation() returned error: %v", err)
	}
	if got.ID != conv.ID || got.Title != conv.Title {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, conv)
	}
}

func TestAddMessage_TitleFromFirstUserMessage(t *testing.T) {
	store := newTestStore(t)
	conv, _ := store.CreateConversation("")

	err := store.AddMessage(conv.ID, models.Message{
		Role:    models.RoleUser,
		Content: "explain goroutines to me",
	})
	if err != nil {
		t.Fatalf("AddMessage() returned error: %v", err)
	}

	got, _ := store.GetConversation(conv.ID)
	if got.Title != "explain goroutines to me" {
		t.Errorf("Title = %q, want first user message", got.Title)
	}

	// Long first messages are truncated
	conv2, _ := store.CreateConversation("")
	long := strings.Repeat("x", 80)
	store.AddMessage(conv2.ID, models.Message{Role: models.RoleUser, Content: long})
	got2, _ := store.GetConversation(conv2.ID)
	if len(got2.Title) != 53 { // 50 + "..."
		t.Errorf("long title length = %d, want 53", len(got2.Title))
	}
}

func TestAddMessage_PreservesSourceAndImageURL(t *testing.T) {
	store := newTestStore(t)
	conv, _ := store.CreateConversation("")

	store.AddMessage(conv.ID, models.Message{Role: models.RoleUser, Content: "a cat"})
	store.AddMessage(conv.ID, models.Message{
		Role:     models.RoleAssistant,
		Content:  "Here's your generated image:",
		Source:   "openai",
		ImageURL: "https://img.example/cat.png",
	})

	got, _ := store.GetConversation(conv.ID)
	if len(got.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(got.Messages))
	}
	last := got.Messages[1]
	if last.Source != "openai" || last.ImageURL != "https://img.example/cat.png" {
		t.Errorf("assistant message = %+v", last)
	}
}

func TestListConversations_SortedByUpdate(t *testing.T) {
	store := newTestStore(t)

	older, _ := store.CreateConversation("")
	time.Sleep(10 * time.Millisecond)
	newer, _ := store.CreateConversation("")

	list, err := store.ListConversations()
	if err != nil {
		t.Fatalf("ListConversations() returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d conversations, want 2", len(list))
	}
	if list[0].ID != newer.ID {
		t.Error("most recently updated conversation should come first")
	}

	// Touching the older one moves it to the front
	time.Sleep(10 * time.Millisecond)
	store.AddMessage(older.ID, models.Message{Role: models.RoleUser, Content: "bump"})
	list, _ = store.ListConversations()
	if list[0].ID != older.ID {
		t.Error("adding a message should refresh the sort position")
	}
}

func TestDeleteConversation(t *testing.T) {
	store := newTestStore(t)
	conv, _ := store.CreateConversation("")

	if err := store.DeleteConversation(conv.ID); err != nil {
		t.Fatalf("DeleteConversation() returned error: %v", err)
	}
	if _, err := store.GetConversation(conv.ID); err == nil {
		t.Error("deleted conversation should not load")
	}
	if err := store.DeleteConversation(conv.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestClearAll(t *testing.T) {
	store := newTestStore(t)
	store.CreateConversation("")
	store.CreateConversation("")

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() returned error: %v", err)
	}

	list, _ := store.ListConversations()
	if len(list) != 0 {
		t.Errorf("got %d conversations after ClearAll, want 0", len(list))
	}
}

func TestExportToMarkdown(t *testing.T) {
	store := newTestStore(t)
	conv, _ := store.CreateConversation("")

	store.AddMessage(conv.ID, models.Message{Role: models.RoleUser, Content: "what is Go?"})
	store.AddMessage(conv.ID, models.Message{Role: models.RoleAssistant, Content: "A language.", Source: "gpt"})

	md, err := store.ExportToMarkdown(conv.ID)
	if err != nil {
		t.Fatalf("ExportToMarkdown() returned error: %v", err)
	}

	for _, want := range []string{"# what is Go?", "## User", "## Assistant (gpt)", "A language."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown export missing %q:\n%s", want, md)
		}
	}
}

func TestExportToJSON(t *testing.T) {
	store := newTestStore(t)
	conv, _ := store.CreateConversation("")
	store.AddMessage(conv.ID, models.Message{Role: models.RoleUser, Content: "hi"})

	data, err := store.ExportToJSON(conv.ID)
	if err != nil {
		t.Fatalf("ExportToJSON() returned error: %v", err)
	}
	if !strings.Contains(string(data), `"role": "user"`) {
		t.Errorf("JSON export missing message data:\n%s", data)
	}
}
