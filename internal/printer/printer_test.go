package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false)

	require.NoError(t, p.PrintFile("src/main.go", []byte("package main")))
	require.NoError(t, p.PrintFile("README.md", []byte("# hi")))
	require.NoError(t, p.Finalize())

	assert.Equal(t, "src/main.go:\n\npackage main\n\nREADME.md:\n\n# hi\n\n", buf.String())
	assert.Equal(t, int64(2), p.GetCount())
}

func TestPrinter_PlainColoredHeader(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(true)

	require.NoError(t, p.PrintFile("a.go", []byte("x")))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "a.go:")
}

func TestPrinter_Markdown(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatMarkdown)

	require.NoError(t, p.PrintFile("a.py", []byte("print(1)")))
	assert.Equal(t, "file: a.py\n\n```\nprint(1)\n```\n\n", buf.String())
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatJSON)

	require.NoError(t, p.PrintFile("a.txt", []byte("one")))
	require.NoError(t, p.PrintFile("b/c.txt", []byte("two\n")))
	require.NoError(t, p.Finalize())

	var entries []JSONFileEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, []JSONFileEntry{
		{Path: "a.txt", Content: "one"},
		{Path: "b/c.txt", Content: "two\n"},
	}, entries)
}

func TestPrinter_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatJSON)
	require.NoError(t, p.Finalize())

	var entries []JSONFileEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Empty(t, entries)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrinter_WriteErrorSticks(t *testing.T) {
	p := New().WithOutput(failingWriter{})

	err := p.PrintFile("a", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, err, p.PrintFile("b", []byte("y")))
	assert.Equal(t, err, p.Finalize())
	assert.Equal(t, int64(1), p.GetCount())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, []string{"a.py", "b.md"}, false))
	assert.Equal(t, "Files read:\na.py\nb.md\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintList(&buf, nil, true))
	assert.Equal(t, "Files to be read:\n", buf.String())
}

func TestReadContent(t *testing.T) {
	dir := t.TempDir()

	utf := filepath.Join(dir, "utf.txt")
	require.NoError(t, os.WriteFile(utf, []byte("héllo"), 0o644))
	content, err := ReadContent(utf, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "héllo", string(content))

	latin := filepath.Join(dir, "latin.txt")
	require.NoError(t, os.WriteFile(latin, []byte{'c', 'a', 'f', 0xe9}, 0o644))
	content, err = ReadContent(latin, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "café", string(content))

	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, bytes.Repeat([]byte("x"), 64), 0o644))
	_, err = ReadContent(big, 10, nil)
	assert.ErrorContains(t, err, "exceeds limit")

	_, err = ReadContent(filepath.Join(dir, "gone.txt"), 0, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadContent(dir, 0, nil)
	assert.ErrorContains(t, err, "not a regular file")
}
