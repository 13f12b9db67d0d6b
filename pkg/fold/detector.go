// Package fold computes per-line nesting depths for Python source.
//
// A fold level is derived from indentation, but an increase over the
// previous line is only accepted after a colon-terminated logical line.
// Lines inside a multi-line docstring take the level of the line that
// opened it, so a docstring folds as a unit with its body.
package fold

import (
	"github.com/yaklabco/pylex/pkg/syntax"
)

// DefaultWidth is the indent-stop width used when none is configured.
const DefaultWidth = 4

// Lines is the index-addressable view the detector reads. State and Level
// are only consulted for lines before the one being computed.
type Lines interface {
	Len() int
	Text(i int) string
	// State is the state line i ends in.
	State(i int) syntax.LineState
	Level(i int) int
}

// Detector computes fold levels for one indent-stop width.
type Detector struct {
	width int
}

// NewDetector returns a detector; a non-positive width selects DefaultWidth.
func NewDetector(width int) *Detector {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Detector{width: width}
}

// Width returns the indent-stop width.
func (d *Detector) Width() int {
	return d.width
}

// Level returns the fold level of line i. Levels of lines 0..i-1 must
// already be final.
func (d *Detector) Level(lines Lines, i int) int {
	if i < 0 || i >= lines.Len() {
		return 0
	}

	text := lines.Text(i)
	raw := syntax.IndentWidth(text, d.width) / d.width
	if i == 0 {
		return raw
	}

	prevState := lines.State(i - 1)
	prevLevel := lines.Level(i - 1)

	var level int
	switch {
	case prevState.InDocstring():
		level = lines.Level(openerOf(lines, i))
	case prevState.Open():
		level = prevLevel
	case syntax.IsBlank(text) || syntax.IsCommentOnly(text):
		level = prevLevel
	default:
		j := previousLogical(lines, i)
		switch {
		case j < 0:
			level = raw
		case colonTerminated(lines, j):
			level = lines.Level(j) + 1
		default:
			level = min(raw, lines.Level(j))
		}
	}

	return max(0, min(level, prevLevel+1))
}

// openerOf finds the line that opened the string region line i is inside.
// It walks back while the preceding line also ends inside a triple region.
func openerOf(lines Lines, i int) int {
	j := i - 1
	for j > 0 && lines.State(j-1).Mode.IsTriple() {
		j--
	}
	return j
}

// previousLogical returns the nearest line before i that carries code,
// skipping blank and comment-only lines, or -1.
func previousLogical(lines Lines, i int) int {
	for j := i - 1; j >= 0; j-- {
		text := lines.Text(j)
		startsInString := j > 0 && lines.State(j-1).Open()
		if startsInString || !(syntax.IsBlank(text) || syntax.IsCommentOnly(text)) {
			return j
		}
	}
	return -1
}

// colonTerminated reports whether line j is code that ends with a colon
// outside any string or comment.
func colonTerminated(lines Lines, j int) bool {
	if lines.State(j).Open() {
		return false
	}
	if j > 0 && lines.State(j-1).Open() {
		return false
	}
	return syntax.EndsWithColon(lines.Text(j))
}

// Compute returns the fold level of every line given the texts and the
// end-of-line states produced by the highlighter.
func Compute(texts []string, states []syntax.LineState, width int) []int {
	view := &sliceLines{texts: texts, states: states, levels: make([]int, len(texts))}
	d := NewDetector(width)
	for i := range texts {
		view.levels[i] = d.Level(view, i)
	}
	return view.levels
}

type sliceLines struct {
	texts  []string
	states []syntax.LineState
	levels []int
}

func (s *sliceLines) Len() int { return len(s.texts) }
func (s *sliceLines) Text(i int) string { return s.texts[i] }
func (s *sliceLines) State(i int) syntax.LineState { return s.states[i] }
func (s *sliceLines) Level(i int) int { return s.levels[i] }
