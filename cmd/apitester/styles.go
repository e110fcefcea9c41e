package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/natsuyasai/api-tester-sub003/pkg/notify"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	TextColor    = lipgloss.Color("#e0e0e0")
	AccentColor  = lipgloss.Color("#7aa2f7")
	ErrorColor   = lipgloss.Color("#f7768e")
	SuccessColor = lipgloss.Color("#9ece6a")
	WarningColor = lipgloss.Color("#e0af68")
)

var (
	SectionStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)
)

// notifyStyles maps notification types to their display style.
var notifyStyles = map[notify.Type]lipgloss.Style{
	notify.TypeSuccess: lipgloss.NewStyle().Foreground(SuccessColor),
	notify.TypeError:   lipgloss.NewStyle().Foreground(ErrorColor),
	notify.TypeWarning: lipgloss.NewStyle().Foreground(WarningColor),
	notify.TypeInfo:    lipgloss.NewStyle().Foreground(AccentColor),
}

// styleRawView highlights the section markers and leaves the wire text alone.
func styleRawView(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "=== ") {
			lines[i] = SectionStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderNotification formats one notification line for terminal output.
func renderNotification(n notify.Notification) string {
	style, ok := notifyStyles[n.Type]
	if !ok {
		style = HintStyle
	}
	line := style.Render(string(n.Type)) + "  " + TitleStyle.Render(n.Title)
	if n.Message != "" {
		line += "  " + n.Message
	}
	return line
}
