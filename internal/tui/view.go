package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/moment/internal/actions"
	"github.com/hay-kot/moment/internal/styles"
	"github.com/hay-kot/moment/internal/widget"
)

const (
	loadingText = "Загрузка цитат..."
	nextLabel   = "Следующая цитата"
	maxCardW    = 64
)

var icons = map[actions.Icon]string{
	actions.IconCopy:  "⧉",
	actions.IconShare: "↗",
	actions.IconCheck: "✔",
	actions.IconCross: "✘",
}

// View renders the widget.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.BannerStyle.Render(styles.Banner),
		m.renderCard(),
		m.renderControls(),
		helpRowStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderCard() string {
	card := cardStyle
	if m.width > 0 && m.width-2 < maxCardW {
		card = card.Width(max(m.width-2, 10))
	}

	v := m.ctrl.View()

	switch v.Phase {
	case widget.PhaseLoading:
		return card.Render(m.spinner.View() + " " + loadingText)
	case widget.PhaseFailed:
		return card.Render(errorStyle.Render(v.Error))
	}

	text := lipgloss.NewStyle().
		Foreground(fadeColor(m.fadeFrame, m.cfg.Animation.Frames)).
		Render(v.Text)

	if v.Author == "" {
		return card.Render(text)
	}

	author := authorStyle.
		Foreground(fadeColor(m.fadeFrame, m.cfg.Animation.Frames)).
		Render(v.Author)
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, text, author))
}

func (m Model) renderControls() string {
	next := buttonStyle
	if !m.ctrl.View().NextEnabled {
		next = buttonDisabledStyle
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		next.Render("→ "+nextLabel),
		renderButton(m.actions.CopyButton(), m.controlsReady()),
		renderButton(m.actions.ShareButton(), m.controlsReady()),
	)
}

func renderButton(b actions.Button, ready bool) string {
	style := buttonStyle
	switch {
	case b.Icon == actions.IconCheck:
		style = buttonDoneStyle
	case b.Icon == actions.IconCross:
		style = buttonFailedStyle
	case b.Disabled || !ready:
		style = buttonDisabledStyle
	}
	return style.Render(icons[b.Icon] + " " + b.Label)
}
