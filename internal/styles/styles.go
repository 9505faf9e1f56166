// Package styles holds the palette and banner shared by the TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen = lipgloss.Color("#9ece6a")
	ColorBlue  = lipgloss.Color("#7aa2f7")
	ColorRed   = lipgloss.Color("#d75f6b")
	ColorGray  = lipgloss.Color("#565f89")
	ColorWhite = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the header.
const Banner = `
 ╔╦╗╔═╗╔╦╗╔═╗╔╗╔╔╦╗
 ║║║║ ║║║║║╣ ║║║ ║
 ╩ ╩╚═╝╩ ╩╚═╝╝╚╝ ╩ `

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true).
	PaddingLeft(1).
	PaddingBottom(1)
