package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/errfrom/errfrom/internal/codefmt"
)

// Format selects how a [Reporter] renders diagnostics.
type Format string

const (
	// Text renders "file:line:col: message" lines.
	Text Format = "text"

	// JSON renders one JSON object per line.
	JSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON:
		return f, nil
	case "":
		return Text, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or json)", s)
}

// Reporter writes diagnostics to a writer. Every diagnostic is written
// exactly once, in the order given by [Collect].
type Reporter struct {
	W      io.Writer
	Format Format
	Color  bool
}

const (
	posColor  = color.Faint
	failColor = color.FgRed
	noteColor = color.Faint
)

// Report renders all errors in err and returns the number of diagnostics
// written. Errors that are not diagnostics are written as they are.
func (r Reporter) Report(err error) (int, error) {
	diags, others := Collect(err)

	for _, err := range others {
		if werr := r.writeOther(err); werr != nil {
			return 0, werr
		}
	}
	for i, d := range diags {
		if werr := r.write(d); werr != nil {
			return i, werr
		}
	}
	return len(diags), nil
}

func (r Reporter) write(d *Diagnostic) error {
	if r.Format == JSON {
		return json.NewEncoder(r.W).Encode(newRecord(d))
	}

	if !d.Pos().IsValid() {
		_, err := fmt.Fprintln(r.W, r.paint(failColor, d.Message()))
		return err
	}

	pos := codefmt.FormatPosition(d.Position())
	_, err := fmt.Fprintf(r.W, "%s: %s\n", r.paint(posColor, pos), r.paintMessage(d.Message()))
	return err
}

func (r Reporter) writeOther(err error) error {
	if r.Format == JSON {
		return json.NewEncoder(r.W).Encode(record{Message: err.Error()})
	}
	_, werr := fmt.Fprintln(r.W, r.paint(failColor, err.Error()))
	return werr
}

// paintMessage colors the first line of a message as a failure and the
// indented lines below it as notes.
func (r Reporter) paintMessage(msg string) string {
	if !r.Color {
		return msg
	}
	head, rest, ok := strings.Cut(msg, "\n")
	if !ok {
		return r.paint(failColor, msg)
	}
	return r.paint(failColor, head) + "\n" + r.paint(noteColor, rest)
}

// paint colors s regardless of whether the output is a terminal. The caller
// decides by Color.
func (r Reporter) paint(attr color.Attribute, s string) string {
	if !r.Color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// record is the JSON form of a diagnostic.
type record struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Decl    string `json:"decl,omitempty"`
	Message string `json:"message"`
}

func newRecord(d *Diagnostic) record {
	pos := d.Position()
	return record{
		File:    pos.Filename,
		Line:    pos.Line,
		Column:  pos.Column,
		Kind:    d.Kind,
		Decl:    d.Decl,
		Message: d.Message(),
	}
}
