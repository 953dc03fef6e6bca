package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SmartGenzAI1/GenzAI/internal/chat"
	apperrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
	"github.com/SmartGenzAI1/GenzAI/internal/models"
	"github.com/SmartGenzAI1/GenzAI/internal/render"
)

// tab identifies one of the top-level views.
type tab int

const (
	tabChat tab = iota
	tabImage
	tabVoice
	tabSettings
)

var tabNames = []string{"Chat", "Image", "Voice", "Settings"}

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	probeDoneMsg struct {
		status models.ConnectionStatus
	}
	sendDoneMsg struct {
		err error
	}
	imageDoneMsg struct {
		err error
	}
	speakDoneMsg struct {
		err error
	}
)

// Model represents the TUI state
type Model struct {
	session    *chat.Session
	backendURL string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	activeTab      tab
	loading        bool
	ready          bool
	err            error
	notice         string
	animationFrame int

	// Settings state
	themeNames  []string
	themeCursor int

	// Dimensions
	width  int
	height int
}

// NewModel creates the main TUI model over a chat session.
func NewModel(session *chat.Session, backendURL string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:    session,
		backendURL: backendURL,
		textarea:   ta,
		spinner:    s,
		themeNames: render.TUIThemeNames(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.probe(),
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		tabHeight := 1
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - tabHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "tab":
			m.activeTab = (m.activeTab + 1) % tab(len(tabNames))
			m.notice = ""
			m.err = nil

		case "shift+tab":
			m.activeTab--
			if m.activeTab < 0 {
				m.activeTab = tab(len(tabNames) - 1)
			}
			m.notice = ""
			m.err = nil

		case "up":
			if m.activeTab == tabSettings && m.themeCursor > 0 {
				m.themeCursor--
			}

		case "down":
			if m.activeTab == tabSettings && m.themeCursor < len(m.themeNames)-1 {
				m.themeCursor++
			}

		case "enter":
			if m.activeTab == tabSettings {
				if m.themeCursor < len(m.themeNames) {
					render.SetTUITheme(m.themeNames[m.themeCursor])
					UpdateTheme()
					m.notice = "Theme changed to " + m.themeNames[m.themeCursor]
				}
				return m, nil
			}

			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}

			m.loading = true
			m.err = nil
			m.notice = ""
			m.animationFrame = 0
			m.textarea.Reset()

			switch m.activeTab {
			case tabChat:
				cmd = m.sendMessage(input)
			case tabImage:
				cmd = m.generateImage(input)
			case tabVoice:
				cmd = m.speak(input)
			}

			m.updateViewport()
			m.viewport.GotoBottom()

			return m, tea.Batch(cmd, m.spinner.Tick, animationTick())
		}

	case probeDoneMsg:
		m.updateViewport()

	case sendDoneMsg:
		m.loading = false
		m.err = filterSessionErr(msg.err)
		m.updateViewport()
		m.viewport.GotoBottom()

	case imageDoneMsg:
		m.loading = false
		m.err = filterSessionErr(msg.err)
		m.updateViewport()
		m.viewport.GotoBottom()

	case speakDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = speechFailure(msg.err)
		} else {
			m.notice = "Played."
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading && m.activeTab != tabSettings {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// filterSessionErr drops errors whose outcome is already visible in the
// message log as an apology entry. Guard errors (offline, busy, empty
// draft) appended nothing, so those are surfaced directly.
func filterSessionErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrEmptyDraft),
		errors.Is(err, apperrors.ErrBusy),
		apperrors.IsOffline(err):
		return err
	default:
		return nil
	}
}

// speechFailure collapses synthesis and playback failures to the fixed
// voice apology. Guard errors pass through so the user sees why nothing
// was played.
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

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))
	sections = append(sections, m.renderTabs())

	if m.session.Status() == models.StatusOffline {
		banner := bannerStyle.Width(contentWidth).Render(
			"⚠ Backend is offline. Messages cannot be sent.",
		)
		sections = append(sections, banner)
	}

	switch m.activeTab {
	case tabSettings:
		sections = append(sections, m.renderSettings(contentWidth))
	default:
		var content string
		if len(m.session.Messages()) == 0 {
			content = m.renderWelcome()
		} else {
			content = m.viewport.View()
		}
		panel := messagesAreaStyle.
			Width(contentWidth).
			Height(m.viewport.Height).
			Render(content)
		sections = append(sections, panel)

		var inputContent string
		if m.loading {
			inputContent = m.renderLoadingAnimation()
		} else {
			inputContent = lipgloss.JoinVertical(
				lipgloss.Left,
				inputLabelStyle.Render(m.inputLabel()),
				m.textarea.View(),
			)
		}
		sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	} else if m.notice != "" {
		sections = append(sections, hintStyle.Render("  "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(contentWidth int) string {
	headerParts := []string{
		titleStyle.Render("✦ GenzAI Pro"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.backendURL),
		hintStyle.Render("  •  "),
		m.renderStatusPill(),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	return headerStyle.Width(contentWidth).Render(headerContent)
}

func (m Model) renderStatusPill() string {
	switch m.session.Status() {
	case models.StatusOnline:
		return onlineStyle.Render("● online")
	case models.StatusOffline:
		return offlineStyle.Render("● offline")
	default:
		return testingStyle.Render("● testing...")
	}
}

func (m Model) renderTabs() string {
	var parts []string
	for i, name := range tabNames {
		if tab(i) == m.activeTab {
			parts = append(parts, tabActiveStyle.Render(name))
		} else {
			parts = append(parts, tabInactiveStyle.Render(name))
		}
	}
	return "  " + strings.Join(parts, "   ")
}

func (m Model) inputLabel() string {
	switch m.activeTab {
	case tabImage:
		return "Prompt"
	case tabVoice:
		return "Text to speak"
	default:
		return "You"
	}
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to GenzAI Pro")
	subtitle := welcomeStyle.Width(width).Render("Start a conversation by typing a message below")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" GenzAI is thinking ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

func (m Model) renderSettings(contentWidth int) string {
	var content strings.Builder
	content.WriteString(settingsTitleStyle.Render("Theme"))
	content.WriteString("\n")

	current := render.GetTUITheme().Name
	for i, name := range m.themeNames {
		cursor := "  "
		style := settingsItemStyle
		if i == m.themeCursor {
			cursor = settingsCursorStyle.Render("▸ ")
			style = settingsSelectedStyle
		}
		marker := "  "
		if name == current {
			marker = settingsValueStyle.Render(" (active)")
		}
		content.WriteString(fmt.Sprintf("%s%s%s\n", cursor, style.Render(name), marker))
	}

	content.WriteString("\n")
	content.WriteString(settingsValueStyle.Render("  Backend: " + m.backendURL))

	return messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(content.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Switch view"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// probe checks backend health once at startup.
func (m Model) probe() tea.Cmd {
	return func() tea.Msg {
		return probeDoneMsg{status: m.session.Probe(context.Background())}
	}
}

// sendMessage creates a command that sends a chat message
func (m Model) sendMessage(draft string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Send(context.Background(), draft)
		return sendDoneMsg{err: err}
	}
}

// generateImage creates a command that requests an image
func (m Model) generateImage(prompt string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.GenerateImage(context.Background(), prompt)
		return imageDoneMsg{err: err}
	}
}

// speak creates a command that plays the text as speech
func (m Model) speak(text string) tea.Cmd {
	return func() tea.Msg {
		return speakDoneMsg{err: m.session.Speak(context.Background(), text)}
	}
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.session.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ GenzAI")
			if msg.Source != "" {
				label += sourceTagStyle.Render(" via " + msg.Source)
			}

			rendered, err := render.MarkdownWithWidth(msg.Content, bubbleWidth-4)
			if err != nil {
				rendered = msg.Content
			}
			rendered = strings.TrimRight(rendered, "\n")

			if msg.ImageURL != "" {
				rendered += "\n" + imageLinkStyle.Render(msg.ImageURL)
			}

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the TUI over the given session.
func Run(session *chat.Session, backendURL string) error {
	m := NewModel(session, backendURL)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
