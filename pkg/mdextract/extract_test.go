package mdextract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pylex/pkg/mdextract"
)

const readme = "# Example\n" +
	"\n" +
	"```python\n" +
	"def f():\n" +
	"    return 1\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"package main\n" +
	"```\n" +
	"\n" +
	"```\n" +
	"import os\n" +
	"print(os.sep)\n" +
	"```\n" +
	"\n" +
	"```\n" +
	"just words\n" +
	"```\n"

func TestBlocks(t *testing.T) {
	t.Parallel()

	blocks := mdextract.New().Blocks([]byte(readme))
	require.Len(t, blocks, 4)

	assert.Equal(t, "python", blocks[0].Info)
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, []string{"def f():", "    return 1"}, blocks[0].Lines)

	assert.Equal(t, "go", blocks[1].Language)
	assert.Equal(t, 8, blocks[1].StartLine)

	assert.Empty(t, blocks[2].Info)
	assert.Equal(t, "text", blocks[2].Language)
	assert.Equal(t, 12, blocks[2].StartLine)
}

func TestPython(t *testing.T) {
	t.Parallel()

	blocks := mdextract.New().Python([]byte(readme))
	require.Len(t, blocks, 2)

	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, "python", blocks[0].Language)

	assert.Equal(t, 12, blocks[1].StartLine)
	assert.Equal(t, "python", blocks[1].Language)
	assert.Equal(t, "import os\nprint(os.sep)", blocks[1].Text())
}

func TestBlocks_CRLFAndIndentedFence(t *testing.T) {
	t.Parallel()

	content := "- item\n\n  ```py\n  x = 1\n  ```\n\r\n```py\r\ny = (\r\n```\r\n"
	blocks := mdextract.New().Python([]byte(content))
	require.Len(t, blocks, 2)

	assert.Equal(t, []string{"x = 1"}, blocks[0].Lines)
	assert.Equal(t, 3, blocks[0].StartLine)

	assert.Equal(t, []string{"y = ("}, blocks[1].Lines)
	assert.Equal(t, 7, blocks[1].StartLine)
}

func TestBlocks_EmptyFenceSkipped(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mdextract.New().Blocks([]byte("```python\n```\n")))
	assert.Empty(t, mdextract.New().Blocks(nil))
}
