package loader

import (
	"fmt"
	"io"
	"time"
)

// Progress reports pipeline phases with an elapsed time prefix.
type Progress struct {
	out     io.Writer
	start   time.Time
	verbose bool
}

// NewProgress creates a progress reporter writing to out.
// A nil out discards everything.
func NewProgress(out io.Writer, verbose bool) *Progress {
	if out == nil {
		out = io.Discard
	}
	return &Progress{out: out, start: time.Now(), verbose: verbose}
}

// Log prints a progress message.
func (p *Progress) Log(format string, args ...any) {
	if p == nil {
		return
	}
	elapsed := time.Since(p.start)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	fmt.Fprintf(p.out, "[%02d:%02d] %s\n", mins, secs, fmt.Sprintf(format, args...))
}

// Verbose prints only when verbose mode is enabled.
func (p *Progress) Verbose(format string, args ...any) {
	if p != nil && p.verbose {
		p.Log(format, args...)
	}
}
