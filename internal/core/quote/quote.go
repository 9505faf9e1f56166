// Package quote defines the quote domain type and its display formatting.
package quote

import (
	"errors"
	"strings"
)

// ErrEmptyCollection is returned when a quote collection has no entries.
var ErrEmptyCollection = errors.New("quote collection is empty")

// UnknownAuthor is shown in place of a missing author.
const UnknownAuthor = "Неизвестный автор"

// Quote is a single entry of the quote collection.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author,omitempty"`
}

// HasAuthor reports whether the quote carries an attribution.
func (q Quote) HasAuthor() bool {
	return strings.TrimSpace(q.Author) != ""
}

// DisplayText returns the quote wrapped in guillemets with inner straight
// quotes replaced by typographic ones.
func (q Quote) DisplayText() string {
	return "«" + FormatInnerQuotes(q.Text) + "»"
}

// DisplayAuthor returns the attribution line, falling back to UnknownAuthor.
func (q Quote) DisplayAuthor() string {
	if !q.HasAuthor() {
		return "— " + UnknownAuthor
	}
	return "— " + q.Author
}

// FullText is the text handed to the clipboard and share targets.
func (q Quote) FullText() string {
	return q.DisplayText() + " " + q.DisplayAuthor()
}

// FormatInnerQuotes replaces straight double quotes with alternating „ and “
// marks, starting with the opening mark.
func FormatInnerQuotes(text string) string {
	if !strings.Contains(text, `"`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)

	opening := true
	for _, r := range text {
		if r != '"' {
			b.WriteRune(r)
			continue
		}
		if opening {
			b.WriteRune('„')
		} else {
			b.WriteRune('“')
		}
		opening = !opening
	}

	return b.String()
}

// Validate checks that a collection is usable.
func Validate(quotes []Quote) error {
	if len(quotes) == 0 {
		return ErrEmptyCollection
	}
	return nil
}
