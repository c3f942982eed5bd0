package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains pre-configured lipgloss styles for the chat.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Question style for user questions in the transcript.
	Question lipgloss.Style

	// Answer style for generated answers.
	Answer lipgloss.Style

	// Muted style for hints and metadata.
	Muted lipgloss.Style

	// Grounded marks answers generated from retrieved excerpts.
	Grounded lipgloss.Style

	// Fallback marks context-free answers.
	Fallback lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style
}

// DefaultStyles returns the default chat styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Question: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Answer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Grounded: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Fallback: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}
