package actions

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Handler owns the copy and share controls. Capability calls (Copy, Share)
// may run off the UI loop; every other method must be called from it.
type Handler struct {
	clipboard Clipboard
	sharer    Sharer
	log       zerolog.Logger

	copyBtn  Button
	shareBtn Button
}

// NewHandler creates a handler with both controls in their resting state.
func NewHandler(cb Clipboard, sh Sharer, log zerolog.Logger) *Handler {
	return &Handler{
		clipboard: cb,
		sharer:    sh,
		log:       log,
		copyBtn:   copyButton(),
		shareBtn:  shareButton(),
	}
}

// CopyButton returns the copy control state.
func (h *Handler) CopyButton() Button { return h.copyBtn }

// ShareButton returns the share control state.
func (h *Handler) ShareButton() Button { return h.shareBtn }

// CanCopy reports whether the copy control accepts a press.
func (h *Handler) CanCopy() bool { return !h.copyBtn.Disabled }

// CanShare reports whether the share control accepts a press.
func (h *Handler) CanShare() bool { return !h.shareBtn.Disabled }

// Copy writes text to the clipboard.
func (h *Handler) Copy(ctx context.Context, text string) error {
	return h.clipboard.WriteText(ctx, text)
}

// Share hands the payload to the share target.
func (h *Handler) Share(ctx context.Context, p Payload) error {
	return h.sharer.Share(ctx, p)
}

// CopyDone applies the outcome of Copy. On success the control shows the
// confirmation and true is returned: the caller reverts it with RevertCopy
// after the affordance delay. Failures are only logged.
func (h *Handler) CopyDone(err error) bool {
	if err != nil {
		h.log.Error().Err(err).Msg("failed to copy text")
		return false
	}

	h.copyBtn = Button{Icon: IconCheck, Label: LabelCopied, Disabled: true}
	return true
}

// RevertCopy restores the copy control.
func (h *Handler) RevertCopy() {
	h.copyBtn = copyButton()
}

// ShareDone applies the outcome of Share. Success and cancellation leave
// the control untouched; any other failure shows the failure state and
// returns true so the caller schedules RevertShare.
func (h *Handler) ShareDone(err error) bool {
	if err == nil || errors.Is(err, ErrShareCanceled) {
		return false
	}

	if !errors.Is(err, ErrShareUnavailable) {
		h.log.Error().Err(err).Msg("error sharing")
	}

	h.shareBtn = Button{Icon: IconCross, Label: LabelShareFailed, Disabled: true}
	return true
}

// RevertShare restores the share control.
func (h *Handler) RevertShare() {
	h.shareBtn = shareButton()
}
