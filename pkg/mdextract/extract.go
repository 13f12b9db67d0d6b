// Package mdextract pulls fenced code blocks out of Markdown documents.
package mdextract

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/langdetect"
)

// Block is a fenced code block.
type Block struct {
	// Info is the raw fence info string (e.g. "python title=x.py").
	Info string `json:"info,omitempty"`

	// Language is the detected or declared language.
	Language string `json:"language"`

	// StartLine is the 0-based line of the first code line in the Markdown file.
	StartLine int `json:"start_line"`

	// Lines holds the code lines without line terminators.
	Lines []string `json:"-"`
}

// Text joins the block lines with newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Extractor parses Markdown with goldmark and returns its fenced code blocks.
type Extractor struct {
	md goldmark.Markdown
}

// New creates an Extractor. GFM extensions are enabled so that fences
// nested in tables and task lists are found.
func New() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Blocks returns every fenced code block in content, in document order.
func (e *Extractor) Blocks(content []byte) []Block {
	reader := text.NewReader(content)
	root := e.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))
	index := document.BuildLines(content)

	var blocks []Block
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := newBlock(fence, content, index); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// Python returns the blocks that hold Python code: fences labeled as Python
// and unlabeled fences whose content is detected as Python.
func (e *Extractor) Python(content []byte) []Block {
	var out []Block
	for _, block := range e.Blocks(content) {
		switch {
		case langdetect.IsPythonFence(block.Info):
			block.Language = langdetect.Python
		case block.Info == "" && langdetect.Detect([]byte(block.Text())) == langdetect.Python:
			block.Language = langdetect.Python
		default:
			continue
		}
		out = append(out, block)
	}
	return out
}

func newBlock(fence *ast.FencedCodeBlock, content []byte, index []document.LineInfo) (Block, bool) {
	block := Block{Language: langdetect.Text}
	if fence.Info != nil {
		block.Info = strings.TrimSpace(string(fence.Info.Value(content)))
	}
	if fields := strings.Fields(block.Info); len(fields) > 0 {
		block.Language = strings.ToLower(fields[0])
	}

	segments := fence.Lines()
	if segments.Len() == 0 {
		return block, false
	}

	block.StartLine = lineOf(index, segments.At(0).Start)
	block.Lines = make([]string, 0, segments.Len())
	for i := range segments.Len() {
		seg := segments.At(i)
		line := string(seg.Value(content))
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		block.Lines = append(block.Lines, line)
	}

	return block, true
}

// lineOf returns the 0-based line containing offset.
func lineOf(index []document.LineInfo, offset int) int {
	i := sort.Search(len(index), func(i int) bool {
		return index[i].StartOffset > offset
	})
	return max(i-1, 0)
}
