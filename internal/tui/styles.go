// Package tui provides the interactive chat interface for kaiwa.
package tui

import "github.com/charmbracelet/lipgloss"

// Gradient colors for the composing animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorBorder   = lipgloss.Color("#3b4261")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorAccent   = lipgloss.Color("#bb9af7")
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	messagesAreaStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Foreground(colorText).
			Padding(0, 1)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
