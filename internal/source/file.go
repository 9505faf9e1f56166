package source

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/moment/internal/core/quote"
)

// File reads the collection from a path or a doublestar glob. Matching files
// are concatenated in sorted path order so chunking stays deterministic.
type File struct {
	pattern string
}

// NewFile creates a file source for pattern.
func NewFile(pattern string) *File {
	return &File{pattern: pattern}
}

// Fetch reads and validates the collection.
func (f *File) Fetch(ctx context.Context) ([]quote.Quote, error) {
	paths, err := doublestar.FilepathGlob(f.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", f.pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no quote files match %s", f.pattern)
	}
	slices.Sort(paths)

	var all []quote.Quote
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		quotes, err := readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, quotes...)
	}

	if err := quote.Validate(all); err != nil {
		return nil, err
	}

	return all, nil
}

func readFile(path string) ([]quote.Quote, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer fh.Close() //nolint:errcheck

	quotes, err := decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return quotes, nil
}
