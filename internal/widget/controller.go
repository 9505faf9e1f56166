// Package widget implements the presentation controller: one-shot
// initialization and the fade state machine that gates quote advances.
package widget

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/rotation"
	"github.com/hay-kot/moment/internal/source"
)

// Fixed display messages.
const (
	MsgInitFailed     = "Ошибка загрузки цитат."
	MsgRotationFailed = "Не удалось загрузить цитаты. Попробуйте обновить страницу."
)

// Phase is the initialization phase of the widget.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

// State is the position in the advance state machine.
type State int

const (
	StateIdle State = iota
	StateFadingOut
	StateUpdating
	StateFadingIn
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFadingOut:
		return "fading-out"
	case StateUpdating:
		return "updating"
	case StateFadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// View is what the display surface renders.
type View struct {
	Phase       Phase
	Text        string
	Author      string
	Quote       quote.Quote
	HasQuote    bool
	Busy        bool
	NextEnabled bool
	Error       string
}

// Controller drives a single widget instance. It is not safe for
// concurrent use; all methods run on the UI loop.
type Controller struct {
	engineFn func([]quote.Quote) *rotation.Engine
	log      zerolog.Logger

	engine *rotation.Engine
	phase  Phase
	state  State
	view   View
}

// New creates a controller. newEngine builds the rotation engine for the
// fetched collection, letting callers inject clock and randomness.
func New(newEngine func([]quote.Quote) *rotation.Engine, log zerolog.Logger) *Controller {
	return &Controller{
		engineFn: newEngine,
		log:      log,
		phase:    PhaseLoading,
		view:     View{Phase: PhaseLoading},
	}
}

// Phase returns the initialization phase.
func (c *Controller) Phase() Phase { return c.phase }

// State returns the advance state.
func (c *Controller) State() State { return c.state }

// View returns the current display state.
func (c *Controller) View() View { return c.view }

// Engine returns the rotation engine, nil before a successful fetch.
func (c *Controller) Engine() *rotation.Engine { return c.engine }

// Initialize runs the startup sequence once: fetch, validate, resume or
// create the session, draw and render the first quote. Any failure leaves
// the controller in PhaseFailed with MsgInitFailed; there is no retry.
func (c *Controller) Initialize(ctx context.Context, src source.Source) error {
	if c.phase != PhaseLoading {
		return fmt.Errorf("widget already initialized")
	}

	if err := c.initialize(ctx, src); err != nil {
		c.log.Error().Err(err).Msg("initialization failed")
		c.phase = PhaseFailed
		c.view = View{Phase: PhaseFailed, Error: MsgInitFailed}
		return err
	}

	c.phase = PhaseReady
	c.state = StateIdle
	c.view.Phase = PhaseReady
	c.view.NextEnabled = true
	return nil
}

func (c *Controller) initialize(ctx context.Context, src source.Source) error {
	quotes, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch quotes: %w", err)
	}
	if err := quote.Validate(quotes); err != nil {
		return err
	}

	c.engine = c.engineFn(quotes)
	c.engine.Resume(ctx)

	if err := c.engine.EnsureBuffer(ctx); err != nil {
		return fmt.Errorf("load first chunk: %w", err)
	}

	q, err := c.engine.DrawNext(ctx)
	if err != nil {
		return fmt.Errorf("draw first quote: %w", err)
	}

	c.render(q)
	c.log.Info().Int("quotes", len(quotes)).Int("chunks", c.engine.NumChunks()).Msg("widget ready")
	return nil
}

// RequestAdvance starts a transition to the next quote. It returns false
// and does nothing unless the widget is ready and idle.
func (c *Controller) RequestAdvance() bool {
	if c.phase != PhaseReady || c.state != StateIdle {
		return false
	}

	c.state = StateFadingOut
	c.view.NextEnabled = false
	c.view.Busy = true
	return true
}

// TransitionEnd is the fade-out completion signal. It draws the next quote
// and moves to StateFadingIn. Calls in any state other than StateFadingOut
// are ignored and return false.
func (c *Controller) TransitionEnd(ctx context.Context) bool {
	if c.state != StateFadingOut {
		return false
	}

	c.state = StateUpdating

	q, err := c.engine.DrawNext(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("no quote available")
		c.view.Text = MsgRotationFailed
		c.view.Author = ""
		c.view.Quote = quote.Quote{}
		c.view.HasQuote = false
	} else {
		c.render(q)
	}

	c.state = StateFadingIn
	return true
}

// Settle ends the fade-in after the settle delay, re-enabling the next
// control. Calls outside StateFadingIn are ignored and return false.
func (c *Controller) Settle() bool {
	if c.state != StateFadingIn {
		return false
	}

	c.state = StateIdle
	c.view.NextEnabled = true
	c.view.Busy = false
	return true
}

func (c *Controller) render(q quote.Quote) {
	c.view.Quote = q
	c.view.HasQuote = true
	c.view.Text = q.DisplayText()
	c.view.Author = q.DisplayAuthor()
	c.view.Error = ""
}

// FullText is the displayed quote and attribution as one line, the text
// the copy and share controls act on.
func (v View) FullText() string {
	if v.Author == "" {
		return v.Text
	}
	return v.Text + " " + v.Author
}
