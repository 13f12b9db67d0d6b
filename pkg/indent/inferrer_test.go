package indent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pylex/pkg/indent"
)

type buffer []string

func (b buffer) Len() int          { return len(b) }
func (b buffer) Text(i int) string { return b[i] }

type zonedBuffer struct {
	buffer
	zones map[int][]indent.Zone
}

func (z zonedBuffer) DisabledZones(line int) []indent.Zone { return z.zones[line] }

func TestInfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		line     int
		col      int // -1 means end of line
		expected indent.Result
	}{
		{
			name:     "indent after colon",
			lines:    []string{"class Foo:"},
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "indent after colon with comment",
			lines:    []string{"    if x:  # check"},
			col:      -1,
			expected: indent.Result{Indent: "        "},
		},
		{
			name:     "dedent after return",
			lines:    []string{"    return"},
			col:      -1,
			expected: indent.Result{Indent: ""},
		},
		{
			name:     "dedent after pass never below zero",
			lines:    []string{"  pass"},
			col:      -1,
			expected: indent.Result{Indent: ""},
		},
		{
			name:     "dedent after return with value",
			lines:    []string{"        return x"},
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "plain line keeps indentation",
			lines:    []string{"    x = 1"},
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "bracket alignment after comma",
			lines:    []string{"print(foo, (1, 2)"},
			col:      -1,
			expected: indent.Result{Indent: "      "},
		},
		{
			name:     "bracket alignment after percent",
			lines:    []string{`x = ("%d" %`},
			col:      -1,
			expected: indent.Result{Indent: "     "},
		},
		{
			name:     "open bracket without comma adds a stop",
			lines:    []string{"    x = foo(a"},
			col:      -1,
			expected: indent.Result{Indent: "        "},
		},
		{
			name:     "bracket alignment on a continuation line",
			lines:    []string{"result = call(first,", "              second,"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "              "},
		},
		{
			name:     "closing bracket returns to opener line",
			lines:    []string{"    x = foo(a,", "            b)"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "colon governed by bracket opener line",
			lines:    []string{"    if (a and", "            b):"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "        "},
		},
		{
			name:     "colon governed by keyword line across backslash",
			lines:    []string{"if a and \\", "        b:"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "backslash continuation",
			lines:    []string{"    x = 1 + \\"},
			col:      -1,
			expected: indent.Result{Indent: "        "},
		},
		{
			name:     "operator continuation inserts backslash",
			lines:    []string{"x = a +"},
			col:      -1,
			expected: indent.Result{Prefix: ` \`, Indent: "    "},
		},
		{
			name:     "operator continuation after space",
			lines:    []string{"    y = a or "},
			col:      -1,
			expected: indent.Result{Prefix: `\`, Indent: "        "},
		},
		{
			name:     "operator continuation skipped with comment",
			lines:    []string{"x = a +  # sum"},
			col:      7,
			expected: indent.Result{Indent: ""},
		},
		{
			name:     "comment continues",
			lines:    []string{"    # note"},
			col:      -1,
			expected: indent.Result{Indent: "    # "},
		},
		{
			name:     "open string is split",
			lines:    []string{`    x = "abc"`},
			col:      12,
			expected: indent.Result{Prefix: `" \`, Indent: `        "`},
		},
		{
			name:     "open string inside brackets aligns",
			lines:    []string{`foo("abc")`},
			col:      8,
			expected: indent.Result{Prefix: `"`, Indent: `    "`},
		},
		{
			name:     "triple quote line keeps indentation",
			lines:    []string{`    s = """`},
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "cursor in leading whitespace",
			lines:    []string{"    if x:"},
			col:      2,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "governing keyword search stays within the statement",
			lines:    []string{"def f(p):", "    with open(p) as fh:"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "        "},
		},
		{
			name:     "bracket inside earlier string is not replayed",
			lines:    []string{`s = """`, "(", `"""`, "x = 1"},
			line:     3,
			col:      -1,
			expected: indent.Result{Indent: ""},
		},
		{
			name:     "bracket inside docstring does not indent the body",
			lines:    []string{"def f():", `    """`, "    Example: (", `    """`, "    y = 1"},
			line:     4,
			col:      -1,
			expected: indent.Result{Indent: "    "},
		},
		{
			name:     "empty triple string does not stop the statement",
			lines:    []string{`call(a, """""",`, "     b,"},
			line:     1,
			col:      -1,
			expected: indent.Result{Indent: "     "},
		},
		{
			name:     "out of range line",
			lines:    []string{"x"},
			line:     3,
			expected: indent.Result{},
		},
	}

	inferrer := indent.New(indent.DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			col := tt.col
			if col < 0 {
				col = len(tt.lines[tt.line])
			}
			assert.Equal(t, tt.expected, inferrer.Infer(buffer(tt.lines), tt.line, col))
		})
	}
}

func TestInfer_DisabledZone(t *testing.T) {
	t.Parallel()

	src := zonedBuffer{
		buffer: buffer{"    if x:"},
		zones:  map[int][]indent.Zone{0: {{Start: 6, End: 20}}},
	}
	inferrer := indent.New(indent.DefaultOptions())

	assert.Equal(t, indent.Result{Indent: "    "}, inferrer.Infer(src, 0, 9))
	assert.Equal(t, indent.Result{Indent: "        "}, inferrer.Infer(src.buffer, 0, 9))

	src.zones[0] = []indent.Zone{{Start: 9, End: 12}}
	assert.Equal(t, indent.Result{Indent: "    "}, inferrer.Infer(src, 0, 9))

	// A zone starting after the cursor does not apply.
	src.zones[0] = []indent.Zone{{Start: 10, End: 12}}
	assert.Equal(t, indent.Result{Indent: "        "}, inferrer.Infer(src, 0, 9))
}

func TestInfer_Tabs(t *testing.T) {
	t.Parallel()

	inferrer := indent.New(indent.Options{UseTabs: true})

	assert.Equal(t, indent.Result{Indent: "\t\t"}, inferrer.Infer(buffer{"\tif x:"}, 0, 6))
	assert.Equal(t, indent.Result{Indent: "\t"}, inferrer.Infer(buffer{"\t\treturn"}, 0, 8))
	assert.Equal(t, "\t\t", inferrer.Infer(buffer{"\tx = a and"}, 0, 10).Indent)
}

func TestInfer_CustomKeywords(t *testing.T) {
	t.Parallel()

	inferrer := indent.New(indent.Options{
		Width:          2,
		DedentKeywords: []string{"raise"},
		Operators:      []string{"->"},
	})

	assert.Equal(t, indent.Result{Indent: ""}, inferrer.Infer(buffer{"  raise"}, 0, 7))
	assert.Equal(t, indent.Result{Indent: "  "}, inferrer.Infer(buffer{"  return"}, 0, 8))
	assert.Equal(t, indent.Result{Prefix: ` \`, Indent: "  "}, inferrer.Infer(buffer{"x ->"}, 0, 4))
	assert.Equal(t, indent.Result{Indent: "  "}, inferrer.Infer(buffer{"class A:"}, 0, 8))
}
