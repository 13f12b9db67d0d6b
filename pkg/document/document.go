// Package document holds a Python buffer as a sequence of lines, each with
// its highlighted spans, carried LineState and fold level.
//
// Edits recompute only what they affect: the edited lines, then following
// lines for as long as their recomputed state or level differs from the
// recorded one. Blank and comment-only lines are passed through because the
// fold level after them depends on the line before them.
package document

import (
	"strings"

	"github.com/yaklabco/pylex/pkg/fold"
	"github.com/yaklabco/pylex/pkg/indent"
	"github.com/yaklabco/pylex/pkg/syntax"
)

// Line is one line of a Document.
type Line struct {
	Text  string           `json:"text"`
	State syntax.LineState `json:"state"`
	Level int              `json:"level"`
	Spans []syntax.Span    `json:"spans,omitempty"`
	Zones []indent.Zone    `json:"zones,omitempty"`
}

// Update is the half-open range of lines [From, To) that were recomputed.
type Update struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Empty reports whether no line was recomputed.
func (u Update) Empty() bool {
	return u.To <= u.From
}

// Options configures the engines a Document runs.
type Options struct {
	Highlight syntax.Options
	Indent    indent.Options
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		Highlight: syntax.DefaultOptions(),
		Indent:    indent.DefaultOptions(),
	}
}

// Document is a line buffer with incrementally maintained lexical state.
// It is not safe for concurrent use.
type Document struct {
	highlighter *syntax.Highlighter
	detector    *fold.Detector
	inferrer    *indent.Inferrer
	lines       []Line
}

// New returns an empty document.
func New(opts Options) *Document {
	inferrer := indent.New(opts.Indent)
	return &Document{
		highlighter: syntax.NewHighlighter(opts.Highlight),
		detector:    fold.NewDetector(inferrer.Options().Width),
		inferrer:    inferrer,
	}
}

// NewFromText returns a document holding text.
func NewFromText(text string, opts Options) *Document {
	d := New(opts)
	d.SetText(text)
	return d
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Text returns the text of line i.
func (d *Document) Text(i int) string {
	return d.lines[i].Text
}

// State returns the state line i ends in.
func (d *Document) State(i int) syntax.LineState {
	return d.lines[i].State
}

// Level returns the fold level of line i.
func (d *Document) Level(i int) int {
	return d.lines[i].Level
}

// Spans returns the highlighted spans of line i.
func (d *Document) Spans(i int) []syntax.Span {
	return d.lines[i].Spans
}

// Line returns a copy of line i.
func (d *Document) Line(i int) Line {
	return d.lines[i]
}

// Lines returns a copy of every line.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// String joins the lines with "\n".
func (d *Document) String() string {
	texts := make([]string, len(d.lines))
	for i, l := range d.lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// DisabledZones returns the ranges of line i where indent inference is off.
func (d *Document) DisabledZones(i int) []indent.Zone {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i].Zones
}

// SetDisabledZones replaces the disabled zones of line i. Zones are cleared
// whenever the line's text is replaced.
func (d *Document) SetDisabledZones(i int, zones []indent.Zone) {
	if i < 0 || i >= len(d.lines) {
		return
	}
	d.lines[i].Zones = zones
}

// InferIndent returns the insertion for a line break at col of line.
func (d *Document) InferIndent(line, col int) indent.Result {
	return d.inferrer.Infer(d, line, col)
}

// SetText replaces the whole buffer.
func (d *Document) SetText(text string) Update {
	texts := SplitLines(text)
	d.lines = make([]Line, len(texts))
	for i, t := range texts {
		d.lines[i].Text = t
	}
	return d.propagate(0, len(d.lines))
}

// Insert adds lines before line at. at == Len() appends.
func (d *Document) Insert(at int, texts ...string) Update {
	at = max(0, min(at, len(d.lines)))
	added := make([]Line, len(texts))
	for i, t := range texts {
		added[i].Text = t
	}
	d.lines = append(d.lines[:at], append(added, d.lines[at:]...)...)
	return d.propagate(at, at+len(added))
}

// Remove deletes n lines starting at line at.
func (d *Document) Remove(at, n int) Update {
	if at < 0 || at >= len(d.lines) || n <= 0 {
		return Update{From: at, To: at}
	}
	n = min(n, len(d.lines)-at)
	d.lines = append(d.lines[:at], d.lines[at+n:]...)
	return d.propagate(at, at)
}

// Replace sets the text of line at. Text containing line breaks is split
// into several lines.
func (d *Document) Replace(at int, text string) Update {
	if at < 0 || at >= len(d.lines) {
		return Update{From: at, To: at}
	}
	texts := SplitLines(text)
	if len(texts) == 1 {
		d.lines[at] = Line{Text: texts[0], State: d.lines[at].State, Level: d.lines[at].Level}
		return d.propagate(at, at+1)
	}

	added := make([]Line, len(texts))
	for i, t := range texts {
		added[i].Text = t
	}
	d.lines = append(d.lines[:at], append(added, d.lines[at+1:]...)...)
	return d.propagate(at, at+len(added))
}

// propagate recomputes the dirty lines [from, to) and continues forward
// until a line's recomputed state and level equal the recorded ones.
func (d *Document) propagate(from, to int) Update {
	i := from
	for i < len(d.lines) {
		old := d.lines[i]
		d.compute(i)
		i++
		if i <= to {
			continue
		}
		cur := d.lines[i-1]
		if cur.State == old.State && cur.Level == old.Level && !transparent(cur.Text) {
			break
		}
	}
	return Update{From: from, To: i}
}

func (d *Document) compute(i int) {
	prev := syntax.StateNormal
	if i > 0 {
		prev = d.lines[i-1].State
	}
	d.lines[i].Spans, d.lines[i].State = d.highlighter.Highlight(d.lines[i].Text, prev)
	d.lines[i].Level = d.detector.Level(d, i)
}

// transparent lines pass the fold context of earlier lines through.
func transparent(text string) bool {
	return syntax.IsBlank(text) || syntax.IsCommentOnly(text)
}
