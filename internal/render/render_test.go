package render

import (
	"strings"
	"testing"
)

func TestMarkdown_Basic(t *testing.T) {
	out, err := Markdown("# Hello\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("rendered output missing heading text: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("rendered output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	content := strings.Repeat("word ", 50)
	out, err := MarkdownWithWidth(content, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() returned error: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		// +10 slack for ANSI escapes and indentation
		if len([]rune(stripANSI(line))) > 50 {
			t.Errorf("line exceeds wrap width: %q", line)
		}
	}
}

func TestMarkdown_CodeBlock(t *testing.T) {
	input := "Text before\n\n```go\nfunc main() {}\n```\n\nText after"
	out, err := Markdown(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	// Syntax highlighting interleaves escape sequences between tokens,
	// so compare against the stripped output.
	if plain := stripANSI(out); !strings.Contains(plain, "func main") {
		t.Errorf("code block content missing from output: %q", plain)
	}
}

func TestRendererPooling(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatal(err)
	}
	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize() = %d, want 1 pool for identical options", got)
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatal(err)
	}
	if got := CacheSize(); got != 2 {
		t.Errorf("CacheSize() = %d, want 2 pools for distinct options", got)
	}
}

func TestMarkdown_ConcurrentUse(t *testing.T) {
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := Markdown("# Concurrent\n\n- a\n- b", DefaultOptions())
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Markdown() returned error: %v", err)
		}
	}
}

func TestTUIThemes(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := GetTUIThemeByName(name)
		if !ok {
			t.Errorf("GetTUIThemeByName(%q) not found", name)
			continue
		}
		if theme.Primary == "" || theme.Text == "" {
			t.Errorf("theme %q has unset colors", name)
		}
	}

	if _, ok := GetTUIThemeByName("no-such-theme"); ok {
		t.Error("unknown theme name should not resolve")
	}
}

func TestSetTUITheme(t *testing.T) {
	t.Cleanup(func() { SetTUITheme("tokyonight") })

	if !SetTUITheme("dracula") {
		t.Fatal("SetTUITheme(dracula) = false")
	}
	if GetTUITheme().Name != "dracula" {
		t.Errorf("active theme = %q, want dracula", GetTUITheme().Name)
	}

	if SetTUITheme("bogus") {
		t.Error("SetTUITheme(bogus) = true, want false")
	}
	if GetTUITheme().Name != "dracula" {
		t.Error("failed SetTUITheme must not change the active theme")
	}
}

// stripANSI removes escape sequences for width assertions.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
