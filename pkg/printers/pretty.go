package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

const (
	openGlyph = "•"
	doneGlyph = "✕"
	// DefaultWidth is the wrap width for thought text.
	DefaultWidth = 72
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
	// Loc renders timestamps; nil means time.Local.
	Loc *time.Location
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

// Thoughts prints list numbered from 1, the same numbers the commands accept
// in place of an id.
func (pp *PrettyPrint) Thoughts(list ...thought.Thought) {
	w := pp.out()
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tag := color.New(color.FgCyan, color.Faint)
	num := color.New(color.Faint)

	for i, th := range list {
		if pp.ShowID {
			id := th.ID
			if th.Provisional() {
				id = "(pending)"
			}
			_, _ = y.Fprint(w, id)
			_, _ = y.Fprint(w, strings.Repeat(" ", max(1, len(spacing)-len(id))))
		}
		prefix := fmt.Sprintf("%3d ", i+1)
		_, _ = num.Fprint(w, prefix)

		glyph, body := openGlyph, t
		if th.IsCompleted {
			glyph, body = doneGlyph, done
		}
		text := wordwrap.String(th.Text, pp.width())
		lines := strings.SplitN(text, "\n", 2)
		_, _ = body.Fprintf(w, "%s %s", glyph, lines[0])
		for _, tg := range th.Tags {
			_, _ = tag.Fprintf(w, " #%s", tg)
		}
		if th.Session != nil {
			_, _ = num.Fprintf(w, " (%s %d)", th.Session.Mode.Label(), th.Session.SessionNumber)
		}
		_, _ = fmt.Fprintln(w, "")
		if len(lines) > 1 {
			pad := uint(len(prefix) + 2)
			if pp.ShowID {
				pad += uint(len(spacing))
			}
			_, _ = body.Fprintln(w, indent.String(lines[1], pad))
		}
	}
	_, _ = fmt.Fprintln(w, "")
}

// Note prints a faint line.
func (pp *PrettyPrint) Note(format string, args ...any) {
	_, _ = color.New(color.Faint).Fprintf(pp.out(), format+"\n", args...)
}

func (pp *PrettyPrint) Warn(format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(pp.out(), "warning: "+format+"\n", args...)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
