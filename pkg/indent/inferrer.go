// Package indent infers the indentation of a line opened by a line break.
//
// The inferrer works from raw text only. It shares the lexical primitives of
// package syntax (comment stripping, quote parity and bracket frames) but not
// the carried line state.
package indent

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/pylex/pkg/syntax"
)

// Source is the buffer the inferrer reads.
type Source interface {
	Len() int
	Text(i int) string
}

// ZoneSource is implemented by sources that mark column ranges of a line
// where indentation assistance is disabled.
type ZoneSource interface {
	DisabledZones(line int) []Zone
}

// Zone is a half-open byte range [Start, End) of one line.
type Zone struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether col lies inside the zone.
func (z Zone) Contains(col int) bool {
	return col >= z.Start && col < z.End
}

// Result is the text to insert around a line break.
type Result struct {
	// Prefix is inserted before the break, at the cursor.
	Prefix string `json:"prefix"`

	// Indent starts the new line.
	Indent string `json:"indent"`
}

// maxStatementLines bounds the backward search for a statement's first line.
const maxStatementLines = 64

// Inferrer computes Results for one set of options.
type Inferrer struct {
	opts Options
	stop string
}

// New creates an inferrer. Missing option values fall back to the defaults.
func New(opts Options) *Inferrer {
	opts = opts.withDefaults()
	stop := strings.Repeat(" ", opts.Width)
	if opts.UseTabs {
		stop = "\t"
	}
	return &Inferrer{opts: opts, stop: stop}
}

// Options returns the effective options.
func (in *Inferrer) Options() Options {
	return in.opts
}

// Infer returns the insertion for a break at byte column col of line.
// Out-of-range lines yield an empty result; col is clamped to the line.
func (in *Inferrer) Infer(src Source, line, col int) Result {
	if line < 0 || line >= src.Len() {
		return Result{}
	}

	full := src.Text(line)
	col = max(0, min(col, len(full)))
	head := full[:col]
	base := syntax.LeadingWhitespace(full)
	res := Result{Indent: base}

	if col <= len(base) || inDisabledZone(src, line, col) {
		return res
	}

	if syntax.IsCommentOnly(head) {
		res.Indent = base + "# "
		return res
	}

	trimmed := strings.TrimRight(full, " \t")
	if strings.HasSuffix(trimmed, `"""`) || strings.HasSuffix(trimmed, `'''`) {
		return res
	}

	start := in.statementStart(src, line)
	frames, closer := openFrames(src, start, line, head)

	if quote := syntax.OpenQuote(head); quote != 0 && syntax.CountQuote(full[col:], quote) == 1 {
		q := string(quote)
		if len(frames) > 0 {
			res.Prefix = q
			res.Indent = in.align(src, frames[len(frames)-1]) + q
			return res
		}
		res.Prefix = q + " \\"
		res.Indent = base + in.stop + q
		return res
	}

	code := syntax.Code(full)
	headCode := syntax.Code(head)
	last := syntax.LastWord(headCode)

	switch {
	case strings.HasSuffix(code, ":"):
		res.Indent = in.colonIndent(src, line, start, closer) + in.stop
	case strings.HasSuffix(headCode, `\`):
		res.Indent = base + in.stop
	case closer != nil && endsWithCloser(headCode):
		res.Indent = syntax.LeadingWhitespace(src.Text(closer.line))
	case len(frames) > 0:
		if strings.Contains(headCode, ",") || last == "%" {
			res.Indent = in.align(src, frames[len(frames)-1])
		} else {
			res.Indent = base + in.stop
		}
	case in.isOperator(last) && !strings.ContainsAny(full, `\#`):
		res.Prefix = ` \`
		if strings.HasSuffix(head, " ") {
			res.Prefix = `\`
		}
		res.Indent = base + in.stop
	case in.isDedent(last) || in.isDedent(syntax.FirstWord(src.Text(start))):
		res.Indent = in.removeStop(base)
	}

	return res
}

// colonIndent returns the indentation a colon-terminated statement is
// governed by: the line that opened a bracket closed here, else the nearest
// governing-keyword line of the statement, else the statement's first line.
func (in *Inferrer) colonIndent(src Source, line, start int, closer *frame) string {
	if closer != nil {
		return syntax.LeadingWhitespace(src.Text(closer.line))
	}
	for i := line; i >= start; i-- {
		code := syntax.Code(src.Text(i))
		for _, kw := range in.opts.GoverningKeywords {
			if syntax.ContainsWord(code, kw) {
				return syntax.LeadingWhitespace(src.Text(i))
			}
		}
	}
	return syntax.LeadingWhitespace(src.Text(start))
}

// statementStart returns the first line of the statement containing line:
// the earliest line whose brackets are still open when line begins, or the
// head of a chain of backslash continuations. The search stops at a line that
// opens or closes a triple-quoted string, so string contents are never
// counted as brackets.
func (in *Inferrer) statementStart(src Source, line int) int {
	start := line
	need := 0
	for k := line - 1; k >= 0 && line-k <= maxStatementLines; k-- {
		text := src.Text(k)
		if togglesTriple(text) {
			break
		}
		opened, closed := syntax.ScanBrackets(text)
		unmatched := len(opened) - need
		need = max(0, need-len(opened)) + closed
		continued := k == start-1 && strings.HasSuffix(syntax.Code(text), `\`)
		if unmatched > 0 || continued {
			start = k
		}
	}
	return start
}

// align returns spaces reaching the display column just after f's bracket.
func (in *Inferrer) align(src Source, f frame) string {
	text := src.Text(f.line)
	return strings.Repeat(" ", displayWidth(text[:f.Pos+1], in.opts.Width))
}

func (in *Inferrer) isOperator(word string) bool {
	if word == "" {
		return false
	}
	for _, op := range in.opts.Operators {
		if word == op || (isSymbolic(op) && strings.HasSuffix(word, op)) {
			return true
		}
	}
	return false
}

func (in *Inferrer) isDedent(word string) bool {
	for _, kw := range in.opts.DedentKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

// removeStop drops one indent stop from the end of indent, never below zero.
func (in *Inferrer) removeStop(indent string) string {
	if strings.HasSuffix(indent, "\t") {
		return indent[:len(indent)-1]
	}
	trimmed := strings.TrimRight(indent, " ")
	spaces := len(indent) - len(trimmed)
	return indent[:len(indent)-min(spaces, in.opts.Width)]
}

// frame is a bracket frame tagged with the line it sits on.
type frame struct {
	syntax.BracketFrame
	line int
}

// openFrames replays the brackets of lines start..line-1 and of head on the
// cursor line. It returns the brackets still open and, when head closes a
// bracket opened on an earlier line, the opener its last closer matches.
func openFrames(src Source, start, line int, head string) ([]frame, *frame) {
	var stack []frame
	for i := start; i < line; i++ {
		stack = replay(stack, src.Text(i), i)
	}

	opened, closed := syntax.ScanBrackets(head)
	var closer *frame
	if n := min(closed, len(stack)); n > 0 {
		matched := stack[len(stack)-n]
		closer = &matched
		stack = stack[:len(stack)-n]
	}
	for _, o := range opened {
		stack = append(stack, frame{BracketFrame: o, line: line})
	}
	return stack, closer
}

func replay(stack []frame, text string, line int) []frame {
	opened, closed := syntax.ScanBrackets(text)
	stack = stack[:len(stack)-min(closed, len(stack))]
	for _, o := range opened {
		stack = append(stack, frame{BracketFrame: o, line: line})
	}
	return stack
}

func inDisabledZone(src Source, line, col int) bool {
	zs, ok := src.(ZoneSource)
	if !ok {
		return false
	}
	for _, z := range zs.DisabledZones(line) {
		if z.Contains(col) {
			return true
		}
	}
	return false
}

// togglesTriple reports whether text holds an odd number of triple-quote
// markers, so that it either opens or closes a multi-line string.
func togglesTriple(text string) bool {
	return (strings.Count(text, `"""`)+strings.Count(text, `'''`))%2 == 1
}

func endsWithCloser(code string) bool {
	return strings.HasSuffix(code, ")") || strings.HasSuffix(code, "]") || strings.HasSuffix(code, "}")
}

func isSymbolic(op string) bool {
	for _, r := range op {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

// displayWidth returns the terminal column reached after s, expanding tabs.
func displayWidth(s string, tabWidth int) int {
	col := 0
	for _, r := range s {
		if r == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}
