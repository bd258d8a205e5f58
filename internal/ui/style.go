// Package ui renders the console notices printed by dizzymouse.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used for notices
type Colors struct {
	Subtle  lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:  lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Warning: lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F5C542"},
	Error:   lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used for console output
type Style struct {
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle()

	return Style{
		Info: base.
			Foreground(defaultColors.Subtle),

		Warning: base.
			Bold(true).
			Foreground(defaultColors.Warning),

		Error: base.
			Foreground(defaultColors.Error),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
