package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/fsutil"
	"github.com/yaklabco/pylex/pkg/langdetect"
	"github.com/yaklabco/pylex/pkg/mdextract"
	"github.com/yaklabco/pylex/pkg/syntax"
)

// ErrBinaryFile is returned for files that look binary.
var ErrBinaryFile = errors.New("binary file")

// Kind identifies how a file was analyzed.
type Kind string

const (
	// KindPython is a Python source file analyzed as one document.
	KindPython Kind = "python"
	// KindMarkdown is a Markdown file whose Python fences are analyzed.
	KindMarkdown Kind = "markdown"
)

// KindOf returns the kind for path, based on its extension.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindPython
	}
}

// Finding reports a string left open at the end of a document.
type Finding struct {
	// Line is the 1-based file line where the string was opened.
	Line int `json:"line"`
	// Column is the 1-based column of the opening quote.
	Column int `json:"column"`
	// Mode is the lexical mode the document ended in.
	Mode syntax.Mode `json:"mode"`
	// Message describes the finding.
	Message string `json:"message"`
}

// Snippet is the analysis of one document: a whole file or one fence.
type Snippet struct {
	Language   string                  `json:"language"`
	StartLine  int                     `json:"start_line"`
	Lines      []document.Line         `json:"lines,omitempty"`
	Regions    []Region                `json:"regions"`
	Categories map[syntax.Category]int `json:"categories"`
	MaxLevel   int                     `json:"max_level"`
	FinalState syntax.LineState        `json:"final_state"`
}

// Len returns the number of lines in the snippet.
func (s *Snippet) Len() int {
	return len(s.Lines)
}

// AnalyzeLines runs a document over lines. startLine is the 0-based file
// line of the first line and is only used to place findings.
func AnalyzeLines(lines []string, startLine int, opts document.Options) Snippet {
	doc := document.New(opts)
	doc.Insert(0, lines...)

	snippet := Snippet{
		Language:   langdetect.Python,
		StartLine:  startLine,
		Lines:      doc.Lines(),
		Categories: make(map[syntax.Category]int),
	}

	levels := make([]int, len(snippet.Lines))
	for i, line := range snippet.Lines {
		levels[i] = line.Level
		snippet.MaxLevel = max(snippet.MaxLevel, line.Level)
		for _, span := range line.Spans {
			snippet.Categories[span.Category]++
		}
	}
	snippet.Regions = Regions(levels)
	if n := len(snippet.Lines); n > 0 {
		snippet.FinalState = snippet.Lines[n-1].State
	}

	return snippet
}

// OpenString returns a finding when the snippet ends inside a string.
func (s *Snippet) OpenString() (Finding, bool) {
	if !s.FinalState.Open() {
		return Finding{}, false
	}

	// Walk back to the line that opened the string.
	opener := len(s.Lines) - 1
	for opener > 0 && s.Lines[opener-1].State.Open() {
		opener--
	}

	column := 1
	for _, span := range s.Lines[opener].Spans {
		if span.Category.IsStringLike() {
			column = span.Start + 1
		}
	}

	kind := "string"
	switch {
	case s.FinalState.InDocstring():
		kind = "docstring"
	case s.FinalState.Mode.IsTriple():
		kind = "triple-quoted string"
	}

	return Finding{
		Line:    s.StartLine + opener + 1,
		Column:  column,
		Mode:    s.FinalState.Mode,
		Message: fmt.Sprintf("unterminated %s (%s)", kind, s.FinalState.Mode.Quote()),
	}, true
}

// FileResult is the analysis of one file.
type FileResult struct {
	Path      string    `json:"path"`
	Kind      Kind      `json:"kind"`
	LineCount int       `json:"line_count"`
	Snippets  []Snippet `json:"snippets"`
	Findings  []Finding `json:"findings"`
}

// Categories sums span counts over all snippets.
func (r *FileResult) Categories() map[syntax.Category]int {
	total := make(map[syntax.Category]int)
	for _, snippet := range r.Snippets {
		for cat, n := range snippet.Categories {
			total[cat] += n
		}
	}
	return total
}

// RegionCount returns the number of fold regions over all snippets.
func (r *FileResult) RegionCount() int {
	var n int
	for _, snippet := range r.Snippets {
		n += len(snippet.Regions)
	}
	return n
}

// MaxLevel returns the deepest fold level over all snippets.
func (r *FileResult) MaxLevel() int {
	var level int
	for _, snippet := range r.Snippets {
		level = max(level, snippet.MaxLevel)
	}
	return level
}

// FileOptions configures file analysis.
type FileOptions struct {
	// Document configures the per-snippet engine.
	Document document.Options

	// Markdown enables analysis of Python fences in Markdown files.
	// When false, Markdown files produce no snippets.
	Markdown bool
}

// DefaultFileOptions returns FileOptions with sensible defaults.
func DefaultFileOptions() FileOptions {
	return FileOptions{
		Document: document.DefaultOptions(),
		Markdown: true,
	}
}

// Analyzer analyzes files. It is safe for concurrent use.
type Analyzer struct {
	opts      FileOptions
	extractor *mdextract.Extractor
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts FileOptions) *Analyzer {
	return &Analyzer{
		opts:      opts,
		extractor: mdextract.New(),
	}
}

// ProcessFile reads and analyzes the file at path.
func (a *Analyzer) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if fsutil.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}
	return a.Analyze(path, content), nil
}

// Analyze analyzes content as the file at path.
func (a *Analyzer) Analyze(path string, content []byte) *FileResult {
	lines := document.SplitLines(string(content))
	result := &FileResult{
		Path:      path,
		Kind:      KindOf(path),
		LineCount: len(lines),
	}

	switch result.Kind {
	case KindMarkdown:
		if !a.opts.Markdown {
			break
		}
		for _, block := range a.extractor.Python(content) {
			snippet := AnalyzeLines(block.Lines, block.StartLine, a.opts.Document)
			snippet.Language = block.Language
			result.Snippets = append(result.Snippets, snippet)
		}
	default:
		result.Snippets = []Snippet{AnalyzeLines(lines, 0, a.opts.Document)}
	}

	for i := range result.Snippets {
		if finding, ok := result.Snippets[i].OpenString(); ok {
			result.Findings = append(result.Findings, finding)
		}
	}

	return result
}
