package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/rotation"
	"github.com/hay-kot/moment/internal/source"
)

// SourceCheck fetches the quote collection and reports its shape.
type SourceCheck struct {
	src       source.Source
	location  string
	chunkSize int
}

// NewSourceCheck creates a check for the collection at location.
func NewSourceCheck(src source.Source, location string, chunkSize int) *SourceCheck {
	return &SourceCheck{src: src, location: location, chunkSize: chunkSize}
}

func (c *SourceCheck) Name() string {
	return "Quote Source"
}

func (c *SourceCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	quotes, err := c.src.Fetch(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Fetch",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if err := quote.Validate(quotes); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Collection",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Fetch",
		Status: StatusPass,
		Detail: c.location,
	})

	chunks := len(rotation.Chunk(quotes, c.chunkSize))
	result.Items = append(result.Items, CheckItem{
		Label:  "Collection",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d quotes in %d chunk(s)", len(quotes), chunks),
	})

	var anonymous int
	for _, q := range quotes {
		if !q.HasAuthor() {
			anonymous++
		}
	}
	if anonymous > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Authors",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d quote(s) without author, shown as %q", anonymous, quote.UnknownAuthor),
		})
	}

	return result
}
