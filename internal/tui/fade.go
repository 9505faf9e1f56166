package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// fadeDirection is the direction of the running text transition.
type fadeDirection int

const (
	fadeNone fadeDirection = iota
	fadeOut
	fadeIn
)

// fadeFrameMsg advances the transition by one color step.
type fadeFrameMsg struct {
	dir fadeDirection
}

// fadeDoneMsg is the transition-completion signal for the fade-out.
type fadeDoneMsg struct{}

// settleMsg fires after the settle delay following the content swap.
type settleMsg struct{}

// scheduleFadeFrame returns a command that emits the next frame.
func scheduleFadeFrame(interval time.Duration, dir fadeDirection) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return fadeFrameMsg{dir: dir}
	})
}

func scheduleSettle(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settleMsg{}
	})
}

// fadeColor returns the text color at frame of frames. Frame 0 is fully
// visible; frame == frames is fully faded.
func fadeColor(frame, frames int) lipgloss.Color {
	if frames < 1 || frame <= 0 {
		return lipgloss.Color(colorText)
	}
	if frame >= frames {
		return lipgloss.Color(colorFaded)
	}

	from, err := colorful.Hex(colorText)
	if err != nil {
		return lipgloss.Color(colorText)
	}
	to, err := colorful.Hex(colorFaded)
	if err != nil {
		return lipgloss.Color(colorText)
	}

	t := float64(frame) / float64(frames)
	return lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
}
