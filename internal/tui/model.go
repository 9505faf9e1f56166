package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/moment/internal/actions"
	"github.com/hay-kot/moment/internal/core/config"
	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/source"
	"github.com/hay-kot/moment/internal/styles"
	"github.com/hay-kot/moment/internal/widget"
)

const keyCtrlC = "ctrl+c"

// quotesFetchedMsg carries the result of the startup fetch.
type quotesFetchedMsg struct {
	quotes []quote.Quote
	err    error
}

// copyResultMsg is sent when a clipboard write finishes.
type copyResultMsg struct {
	err error
}

// shareResultMsg is sent when a share call returns.
type shareResultMsg struct {
	err error
}

// revertCopyMsg and revertShareMsg end the control affordances.
type (
	revertCopyMsg  struct{}
	revertShareMsg struct{}
)

// fetched replays a completed fetch so the controller can initialize on
// the UI loop while the network call runs in a command.
type fetched struct {
	quotes []quote.Quote
	err    error
}

func (f fetched) Fetch(context.Context) ([]quote.Quote, error) {
	return f.quotes, f.err
}

// Model is the Bubble Tea model for the quote widget.
type Model struct {
	cfg     *config.Config
	ctrl    *widget.Controller
	actions *actions.Handler
	src     source.Source

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	fadeDir   fadeDirection
	fadeFrame int

	width    int
	quitting bool
}

// New creates a new TUI model. The controller must not be initialized yet;
// the model fetches from src on Init.
func New(cfg *config.Config, ctrl *widget.Controller, handler *actions.Handler, src source.Source) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorBlue)

	h := help.New()
	helpStyle := lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle
	h.ShortSeparator = " • "

	m := Model{
		cfg:     cfg,
		ctrl:    ctrl,
		actions: handler,
		src:     src,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: s,
	}
	m.syncKeys()
	return m
}

// Init starts the fetch and the loading indicator.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchQuotes(), m.spinner.Tick)
}

func (m Model) fetchQuotes() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		quotes, err := src.Fetch(context.Background())
		return quotesFetchedMsg{quotes: quotes, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case quotesFetchedMsg:
		// Errors are logged by the controller and shown in the view.
		_ = m.ctrl.Initialize(context.Background(), fetched(msg))
		m.syncKeys()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Phase() != widget.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fadeFrameMsg:
		return m.handleFadeFrame(msg)

	case fadeDoneMsg:
		if !m.ctrl.TransitionEnd(context.Background()) {
			return m, nil
		}
		m.fadeDir = fadeIn
		m.fadeFrame = m.cfg.Animation.Frames
		return m, tea.Batch(
			scheduleFadeFrame(m.cfg.FrameInterval(), fadeIn),
			scheduleSettle(m.cfg.Animation.Settle),
		)

	case settleMsg:
		m.ctrl.Settle()
		m.syncKeys()
		return m, nil

	case copyResultMsg:
		if m.actions.CopyDone(msg.err) {
			m.syncKeys()
			return m, after(m.cfg.AffordanceDuration, revertCopyMsg{})
		}
		return m, nil

	case shareResultMsg:
		if m.actions.ShareDone(msg.err) {
			m.syncKeys()
			return m, after(m.cfg.AffordanceDuration, revertShareMsg{})
		}
		return m, nil

	case revertCopyMsg:
		m.actions.RevertCopy()
		m.syncKeys()
		return m, nil

	case revertShareMsg:
		m.actions.RevertShare()
		m.syncKeys()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if !m.ctrl.RequestAdvance() {
			return m, nil
		}
		m.syncKeys()
		m.fadeDir = fadeOut
		m.fadeFrame = 0
		return m, scheduleFadeFrame(m.cfg.FrameInterval(), fadeOut)

	case key.Matches(msg, m.keys.Copy):
		if !m.controlsReady() || !m.actions.CanCopy() {
			return m, nil
		}
		return m, m.copyQuote(m.ctrl.View().FullText())

	case key.Matches(msg, m.keys.Share):
		if !m.controlsReady() || !m.actions.CanShare() {
			return m, nil
		}
		return m, m.shareQuote(actions.Payload{
			Title: m.cfg.Share.Title,
			Text:  m.ctrl.View().FullText(),
			URL:   m.cfg.Share.URL,
		})
	}

	return m, nil
}

// handleFadeFrame steps the running fade. The last fade-out frame emits
// the completion signal; stale frames from another direction are dropped.
func (m Model) handleFadeFrame(msg fadeFrameMsg) (tea.Model, tea.Cmd) {
	if msg.dir != m.fadeDir {
		return m, nil
	}

	frames := m.cfg.Animation.Frames

	switch m.fadeDir {
	case fadeOut:
		m.fadeFrame++
		if m.fadeFrame >= frames {
			m.fadeFrame = frames
			m.fadeDir = fadeNone
			return m, func() tea.Msg { return fadeDoneMsg{} }
		}
		return m, scheduleFadeFrame(m.cfg.FrameInterval(), fadeOut)

	case fadeIn:
		m.fadeFrame--
		if m.fadeFrame <= 0 {
			m.fadeFrame = 0
			m.fadeDir = fadeNone
			return m, nil
		}
		return m, scheduleFadeFrame(m.cfg.FrameInterval(), fadeIn)
	}

	return m, nil
}

func (m Model) copyQuote(text string) tea.Cmd {
	handler := m.actions
	return func() tea.Msg {
		return copyResultMsg{err: handler.Copy(context.Background(), text)}
	}
}

func (m Model) shareQuote(p actions.Payload) tea.Cmd {
	handler := m.actions
	return func() tea.Msg {
		return shareResultMsg{err: handler.Share(context.Background(), p)}
	}
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// controlsReady reports whether copy and share have a quote to act on.
func (m Model) controlsReady() bool {
	return m.ctrl.Phase() == widget.PhaseReady
}

func (m *Model) syncKeys() {
	ready := m.controlsReady()
	m.keys.sync(
		m.ctrl.View().NextEnabled,
		ready && m.actions.CanCopy(),
		ready && m.actions.CanShare(),
	)
}
