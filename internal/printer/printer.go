// Package printer writes human-facing command output: quotes, doctor
// reports and error boxes. ANSI styling is only emitted to terminals.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorWhite     = "\033[38;2;192;202;245m" // #c0caf5
	ColorBold      = "\033[1m"
	ColorItalic    = "\033[3m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer io.Writer
	color  bool
}

// New creates a Printer for w. Colors are enabled when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{
		writer: w,
		color:  IsTerminal(w),
	}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Quote prints a quote and its attribution. Terminals get the text and
// the author on separate styled lines; anything else gets one plain line,
// the same text the copy action puts on the clipboard.
func (p *Printer) Quote(text, author string) {
	if !p.color {
		if author != "" {
			text += " " + author
		}
		p.line(text)
		return
	}

	p.line(p.colorize(ColorWhite, text))
	if author != "" {
		p.line(p.colorize(ColorGray+ColorItalic, author))
	}
}

// FatalError prints a formatted error box and does NOT exit
// Caller should handle exit code
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	p.line(p.colorize(ColorRed, "╭ Error"))
	p.line(p.colorize(ColorRed, "│") + " " + p.colorize(ColorGray, err.Error()))
	p.line(p.colorize(ColorRed, "╵"))
}

// printValidationErrors lists config field errors under the wrapping
// context, e.g. "load config: invalid config".
func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	errContext := ""
	if idx := strings.Index(wrappedErr.Error(), fieldErrs.Error()); idx > 0 {
		errContext = strings.TrimSuffix(wrappedErr.Error()[:idx], ": ")
	}

	bar := p.colorize(ColorRed, "│")

	p.line(p.colorize(ColorRed, "╭ Invalid configuration"))
	if errContext != "" {
		p.line(bar + " " + p.colorize(ColorGray, errContext))
		p.line(bar)
	}

	for _, fe := range fieldErrs {
		field := ""
		if fe.Field != "" {
			field = p.colorize(ColorGray, fe.Field+": ")
		}
		p.line(bar + " " + p.colorize(ColorRed, Cross) + " " + field + fe.Err.Error())
	}

	p.line(p.colorize(ColorRed, "╵"))
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.colorize(ColorRed, Cross+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.colorize(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.colorize(ColorGray, Dot+" "+fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a doctor section header.
func (p *Printer) Section(title string) {
	p.line(p.colorize(ColorBold+ColorUnderline, title))
}

// CheckItem prints a passing doctor item.
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints a doctor warning.
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints a failed doctor item.
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	s := "  " + p.colorize(color, symbol) + " " + label
	if detail != "" {
		s += ": " + detail
	}
	p.line(s)
}

func (p *Printer) colorize(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}
