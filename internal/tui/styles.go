// Package tui implements the Bubble Tea display surface for moment.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/moment/internal/styles"
)

// Fade endpoints. Text blends from colorText toward colorFaded and back.
const (
	colorText  = "#c0caf5" // foreground
	colorFaded = "#1a1b26" // background
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 3).
			Width(64)

	authorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Italic(true).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed)

	buttonStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(styles.ColorGray).
				Padding(0, 1)

	buttonDoneStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen).
			Padding(0, 1)

	buttonFailedStyle = lipgloss.NewStyle().
				Foreground(styles.ColorRed).
				Padding(0, 1)

	helpRowStyle = lipgloss.NewStyle().PaddingLeft(1).MarginTop(1)
)
