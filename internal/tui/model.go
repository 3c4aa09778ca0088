package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragu/kaiwa/internal/chat"
	"github.com/ragu/kaiwa/internal/models"
	"github.com/ragu/kaiwa/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// exchangeDoneMsg is sent when the controller finishes one exchange.
// The outcome (reply or apology) is already in the transcript by then.
type exchangeDoneMsg struct{}

// Model represents the TUI state
type Model struct {
	controller *chat.Controller
	modelName  string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	copied         bool
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model over an exchange controller
func NewChatModel(controller *chat.Controller, modelName string) Model {
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
		controller: controller,
		modelName:  modelName,
		textarea:   ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
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

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2      // Extra spacing

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
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
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				// Dismiss the composing indicator only; the request runs
				// to completion and its turn still lands.
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "ctrl+y":
			m.copied = m.copyLastReply()

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if m.loading || input == "" {
				break
			}

			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}

			// Optimistic clear: the buffer empties regardless of outcome.
			m.textarea.Reset()
			m.loading = true
			m.copied = false
			m.animationFrame = 0

			return m, tea.Batch(
				m.submit(input),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case exchangeDoneMsg:
		m.loading = false
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			// The user turn lands in the transcript as soon as the
			// exchange starts; pick it up on the next tick.
			m.updateViewport()
			m.viewport.GotoBottom()
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit creates a command that runs one full exchange on the controller.
func (m Model) submit(input string) tea.Cmd {
	return func() tea.Msg {
		m.controller.Submit(input)
		return exchangeDoneMsg{}
	}
}

// copyLastReply puts the most recent assistant turn on the clipboard.
func (m Model) copyLastReply() bool {
	turns := m.controller.Turns()
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.RoleAssistant {
			return clipboard.WriteAll(turns[i].Content) == nil
		}
	}
	return false
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerParts := []string{
		titleStyle.Render("会 Kaiwa"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())
	sections = append(sections, messagesPanel)

	var inputContent string
	if m.loading {
		inputContent = m.renderComposingIndicator()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderComposingIndicator renders the animated indicator shown while an
// exchange is in flight.
func (m Model) renderComposingIndicator() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

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

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Composing a reply ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy reply"},
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

	if m.copied {
		items = append(items, statusDescStyle.Render("copied ✓"))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the transcript
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, turn := range m.controller.Turns() {
		if i > 0 {
			content.WriteString("\n")
		}

		if turn.IsUser() {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(turn.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Kaiwa")

			rendered, err := render.MarkdownWithWidth(turn.Content, bubbleWidth-4)
			if err != nil {
				rendered = turn.Content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI
func RunChat(controller *chat.Controller, modelName string) error {
	m := NewChatModel(controller, modelName)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
