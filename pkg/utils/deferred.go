// Package utils holds small helpers shared by the CLI entrypoint.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter buffers log lines while a full-screen program owns the
// terminal and replays them afterwards.
type DeferredWriter struct {
	mu    sync.Mutex
	lines [][]byte
}

// Write stores a copy of p. zerolog calls Write once per event.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	line := make([]byte, len(p))
	copy(line, p)
	d.lines = append(d.lines, line)
	return len(p), nil
}

// Len returns the number of buffered lines.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

// Flush writes all buffered lines to w in order and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	lines := d.lines
	d.lines = nil
	d.mu.Unlock()

	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
