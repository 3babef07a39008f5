package emit

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/mpyw/panicreach/internal/span"
)

// ErrNoSource is returned when the text under a span cannot be obtained.
var ErrNoSource = errors.New("source text unavailable")

// Source provides the text covered by a span.
type Source interface {
	Text(s span.Span) ([]byte, error)
}

// Files reads source text from disk through a FileSet, caching each file.
type Files struct {
	fset  *token.FileSet
	cache map[string][]byte
}

// NewFiles creates a Source backed by the files registered in fset.
func NewFiles(fset *token.FileSet) *Files {
	return &Files{fset: fset, cache: make(map[string][]byte)}
}

// Text implements Source.
func (f *Files) Text(s span.Span) ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: invalid span %v", ErrNoSource, s)
	}

	tf := f.fset.File(s.Start)
	if tf == nil {
		return nil, fmt.Errorf("%w: no file for span %v", ErrNoSource, s)
	}
	lo, hi := int(s.Start)-tf.Base(), int(s.End)-tf.Base()
	if hi > tf.Size() {
		return nil, fmt.Errorf("%w: span %v crosses the end of %s", ErrNoSource, s, tf.Name())
	}

	content, ok := f.cache[tf.Name()]
	if !ok {
		var err error
		content, err = os.ReadFile(tf.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSource, err)
		}
		f.cache[tf.Name()] = content
	}

	if hi > len(content) {
		return nil, fmt.Errorf("%w: span %v beyond end of %s", ErrNoSource, s, tf.Name())
	}
	return content[lo:hi], nil
}
