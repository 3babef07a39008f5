package emit

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mpyw/panicreach/internal/localize"
)

// Renderer prints records as annotated source snippets.
type Renderer struct {
	fset *token.FileSet
	src  Source

	warn    *color.Color
	gutter  *color.Color
	primary *color.Color
	context *color.Color
}

// NewRenderer creates a renderer reading text from src. The choice of
// noColor overrides color.NoColor, which only reflects whether stdout is a
// terminal.
func NewRenderer(fset *token.FileSet, src Source, noColor bool) *Renderer {
	r := &Renderer{
		fset:    fset,
		src:     src,
		warn:    color.New(color.FgYellow, color.Bold),
		gutter:  color.New(color.FgBlue, color.Bold),
		primary: color.New(color.FgRed, color.Bold),
		context: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.warn, r.gutter, r.primary, r.context} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return r
}

// annotation marks [lo, hi) of the body text, relative to the body start.
type annotation struct {
	lo, hi  int
	label   string
	primary bool
}

// Render writes one record. The snippet is the caller's body; the
// declaration gets a context annotation and every witness a primary one.
// It fails with ErrNoSource when the declaration text is unavailable.
func (r *Renderer) Render(w io.Writer, rec *localize.Record) error {
	text, err := r.src.Text(rec.Body)
	if err != nil {
		return fmt.Errorf("render %s: %w", rec.Caller.Name(), err)
	}

	lo, hi, ok := rec.Decl.Offset(rec.Body)
	if !ok {
		return fmt.Errorf("render %s: %w: declaration %v outside body %v",
			rec.Caller.Name(), ErrNoSource, rec.Decl, rec.Body)
	}
	annots := []annotation{{lo: lo, hi: hi, label: LabelContext}}

	for _, wit := range rec.Witnesses {
		lo, hi, ok := wit.Span.Offset(rec.Body)
		if !ok {
			continue
		}
		annots = append(annots, annotation{lo: lo, hi: hi, label: LabelWitness, primary: true})
	}

	start := r.fset.Position(rec.Body.Start)
	lines := bytes.Split(text, []byte("\n"))
	width := len(strconv.Itoa(start.Line + len(lines) - 1))
	indent := strings.Repeat(" ", start.Column-1)

	var b strings.Builder
	b.WriteString(r.warn.Sprint("warning"))
	fmt.Fprintf(&b, ": "+MessageSpot+"\n", rec.Caller.Name())
	fmt.Fprintf(&b, "%s %s\n", r.gutter.Sprint(strings.Repeat(" ", width)+"-->"), r.fset.Position(rec.Decl.Start))
	fmt.Fprintf(&b, "%s\n", r.gutter.Sprint(strings.Repeat(" ", width+1)+"|"))

	offset := 0
	for i, line := range lines {
		lead := ""
		if i == 0 {
			lead = indent
		}
		num := fmt.Sprintf("%*d |", width, start.Line+i)
		fmt.Fprintf(&b, "%s %s%s\n", r.gutter.Sprint(num), lead, line)

		end := offset + len(line)
		for _, a := range annots {
			if a.lo < offset || a.lo > end {
				continue
			}
			b.WriteString(r.underline(a, lead+blank(line[:a.lo-offset]), end, width))
		}
		offset = end + 1
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// blank replaces everything but tabs in prefix with spaces so that markers
// line up under the text.
func blank(prefix []byte) string {
	return strings.Map(func(c rune) rune {
		if c == '\t' {
			return c
		}
		return ' '
	}, string(prefix))
}

func (r *Renderer) underline(a annotation, pad string, lineEnd, width int) string {
	hi := min(a.hi, lineEnd)
	n := max(hi-a.lo, 1)

	mark, c := "-", r.context
	if a.primary {
		mark, c = "^", r.primary
	}

	return fmt.Sprintf("%s %s%s\n",
		r.gutter.Sprint(strings.Repeat(" ", width+1)+"|"),
		pad,
		c.Sprint(strings.Repeat(mark, n)+" "+a.label),
	)
}
