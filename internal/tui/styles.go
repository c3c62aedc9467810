package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colours the view is drawn with, as lipgloss colour
// strings (ANSI numbers or hex).
type Theme struct {
	Listing   string
	Directory string
	Highlight string
	Preview   string
	Info      string
	Error     string
}

// DefaultTheme is the yellow/blue/green look of the default configuration.
var DefaultTheme = Theme{
	Listing:   "3",
	Directory: "4",
	Highlight: "3",
	Preview:   "12",
	Info:      "2",
	Error:     "1",
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	// Pane frames
	Listing lipgloss.Style
	Preview lipgloss.Style
	Info    lipgloss.Style

	// Listing rows
	File      lipgloss.Style
	Directory lipgloss.Style
	Selected  lipgloss.Style

	// Error banner on the command line
	Error lipgloss.Style

	Help lipgloss.Style
}

func frame(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(color))
}

// NewStyles builds the styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		Listing: frame(t.Listing),
		Preview: frame(t.Preview),
		Info:    frame(t.Info),

		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Directory)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Highlight)).
			Foreground(lipgloss.Color("0")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Reverse(true),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}
