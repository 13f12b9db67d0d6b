package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/indent"
	"github.com/yaklabco/pylex/pkg/syntax"
)

func levels(d *document.Document) []int {
	out := make([]int, d.Len())
	for i := range out {
		out[i] = d.Level(i)
	}
	return out
}

func states(d *document.Document) []syntax.LineState {
	out := make([]syntax.LineState, d.Len())
	for i := range out {
		out[i] = d.State(i)
	}
	return out
}

// requireConsistent checks d against a document built from scratch.
func requireConsistent(t *testing.T, d *document.Document) {
	t.Helper()

	fresh := document.NewFromText(d.String(), document.DefaultOptions())
	require.Equal(t, fresh.Lines(), d.Lines())
}

func TestNewFromText_Docstring(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("def f():\n    \"\"\"\n    doc\n    \"\"\"", document.DefaultOptions())

	require.Equal(t, 4, d.Len())
	assert.Equal(t, []int{0, 1, 1, 1}, levels(d))
	assert.Equal(t, syntax.LineState{Mode: syntax.ModeDoubleTriple, IsDocstring: true}, d.State(1))
	assert.Equal(t, syntax.ModeNormal, d.State(3).Mode)
	assert.Equal(t, []syntax.Span{{Start: 0, Length: 7, Category: syntax.CategoryDocstring}}, d.Spans(2))
}

func TestReplace_StopsWhenStateSettles(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("x = 1\n", 99) + "x = 1"
	d := document.NewFromText(text, document.DefaultOptions())
	require.Equal(t, 100, d.Len())

	update := d.Replace(10, "y = 2")

	assert.Equal(t, document.Update{From: 10, To: 12}, update)
	assert.Equal(t, "y = 2", d.Text(10))
	requireConsistent(t, d)
}

func TestReplace_OpeningStringPropagates(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("a = 1\nb = 2\nc = 3\nd = 4", document.DefaultOptions())

	update := d.Replace(1, `b = """`)
	assert.Equal(t, document.Update{From: 1, To: 4}, update)
	assert.Equal(t, syntax.LineState{Mode: syntax.ModeDoubleTriple}, d.State(3))
	requireConsistent(t, d)

	update = d.Replace(1, "b = 2")
	assert.Equal(t, document.Update{From: 1, To: 4}, update)
	assert.Equal(t, syntax.StateNormal, d.State(3))
	requireConsistent(t, d)

	update = d.Replace(2, `c = """x"""`)
	assert.Equal(t, document.Update{From: 2, To: 4}, update)
	requireConsistent(t, d)
}

func TestInsert_ColonChangesFollowingLevel(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("y = 1\nz = 2", document.DefaultOptions())

	update := d.Insert(0, "if x:")
	assert.Equal(t, document.Update{From: 0, To: 3}, update)
	assert.Equal(t, []int{0, 1, 0}, levels(d))
	requireConsistent(t, d)

	update = d.Remove(0, 1)
	assert.Equal(t, document.Update{From: 0, To: 2}, update)
	assert.Equal(t, []int{0, 0}, levels(d))
	requireConsistent(t, d)
}

func TestReplace_PassesThroughBlankLines(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("x = 1\n\n\n    y = 2\nz = 3", document.DefaultOptions())
	require.Equal(t, []int{0, 0, 0, 0, 0}, levels(d))

	update := d.Replace(0, "if x:")

	assert.Equal(t, document.Update{From: 0, To: 5}, update)
	assert.Equal(t, []int{0, 0, 0, 1, 0}, levels(d))
	requireConsistent(t, d)
}

func TestEdits_MatchFullRecompute(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("class A:\n    def f(self):\n        return 1", document.DefaultOptions())

	d.Insert(2, `        '''Docstring`, "        more", `        '''`)
	requireConsistent(t, d)

	d.Replace(3, "        more'''")
	requireConsistent(t, d)

	d.Remove(4, 1)
	requireConsistent(t, d)

	d.Insert(d.Len(), "", "# trailer", "def g():", "    s = 'open\\")
	requireConsistent(t, d)

	d.Replace(0, "x = [\n  1,\n]")
	requireConsistent(t, d)

	assert.Equal(t, syntax.ModeSingle, d.State(d.Len()-1).Mode)
}

func TestRemove_OutOfRange(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("a\nb", document.DefaultOptions())

	assert.True(t, d.Remove(5, 1).Empty())
	assert.True(t, d.Remove(0, 0).Empty())
	assert.Equal(t, 2, d.Len())

	d.Remove(1, 10)
	assert.Equal(t, "a", d.String())
}

func TestDisabledZones(t *testing.T) {
	t.Parallel()

	d := document.NewFromText("    if x:", document.DefaultOptions())

	assert.Equal(t, indent.Result{Indent: "        "}, d.InferIndent(0, 9))

	d.SetDisabledZones(0, []indent.Zone{{Start: 4, End: 10}})
	assert.Equal(t, []indent.Zone{{Start: 4, End: 10}}, d.DisabledZones(0))
	assert.Equal(t, indent.Result{Indent: "    "}, d.InferIndent(0, 9))

	d.Replace(0, "    if y:")
	assert.Empty(t, d.DisabledZones(0))
	assert.Nil(t, d.DisabledZones(7))
}

func TestDocstringHeuristicOption(t *testing.T) {
	t.Parallel()

	opts := document.DefaultOptions()
	opts.Highlight.DocstringHeuristic = false
	d := document.NewFromText("print('''\ntext\n''')", opts)

	assert.Equal(t, syntax.LineState{Mode: syntax.ModeSingleTriple}, d.State(0))
	assert.Equal(t, syntax.CategoryString, d.Spans(1)[0].Category)
}
