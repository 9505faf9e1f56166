package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInnerQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no quotes", in: "plain text", want: "plain text"},
		{name: "single pair", in: `A"B"C`, want: "A„B“C"},
		{name: "two pairs", in: `"a" and "b"`, want: "„a“ and „b“"},
		{name: "unbalanced", in: `say "hi`, want: "say „hi"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInnerQuotes(tt.in))
		})
	}
}

func TestQuote_Display(t *testing.T) {
	q := Quote{Text: `A"B"C`, Author: "X"}

	assert.Equal(t, "«A„B“C»", q.DisplayText())
	assert.Equal(t, "— X", q.DisplayAuthor())
	assert.Equal(t, "«A„B“C» — X", q.FullText())
}

func TestQuote_DisplayAuthorMissing(t *testing.T) {
	for _, author := range []string{"", "   "} {
		q := Quote{Text: "t", Author: author}
		assert.False(t, q.HasAuthor())
		assert.Equal(t, "— "+UnknownAuthor, q.DisplayAuthor())
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmptyCollection)
	assert.ErrorIs(t, Validate([]Quote{}), ErrEmptyCollection)
	assert.NoError(t, Validate([]Quote{{Text: "a"}}))
}
