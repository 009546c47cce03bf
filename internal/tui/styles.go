// Package tui provides the interactive chat front-end. It is a thin
// caller over the chat engine; none of the understanding core lives here.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#FFD166")
	// BotColor styles assistant messages.
	BotColor = lipgloss.Color("#4ECDC4")
	// UserColor styles user messages.
	UserColor = lipgloss.Color("#95E1D3")
	// SubtleColor styles less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")
	// WarnColor styles degraded-mode notices.
	WarnColor = lipgloss.Color("#FFE66D")

	// TitleStyle is used for the header line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// BotStyle formats assistant replies.
	BotStyle = lipgloss.NewStyle().
			Foreground(BotColor)

	// UserStyle formats echoed user input.
	UserStyle = lipgloss.NewStyle().
			Foreground(UserColor)

	// SubtleStyle formats hints and timestamps.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// WarnStyle formats degraded-mode notices.
	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)
)
