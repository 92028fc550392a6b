// FILE: loglens/src/internal/source/source_test.go
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s Source) []Line {
	t.Helper()
	out := make(chan Line, 100)
	require.NoError(t, s.Read(context.Background(), out))
	close(out)

	var lines []Line
	for l := range out {
		lines = append(lines, l)
	}
	return lines
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSource_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "one\n  two\n\nthree")

	s := NewFileSource(path, 0, log.NewLogger())
	lines := collect(t, s)

	require.Len(t, lines, 4)
	assert.Equal(t, Line{Source: path, Number: 2, Text: "  two"}, lines[1])
	assert.Equal(t, "", lines[2].Text)
	assert.Equal(t, "three", lines[3].Text)

	stats := s.GetStats()
	assert.Equal(t, "file", stats.Type)
	assert.Equal(t, uint64(4), stats.TotalLines)
	assert.False(t, stats.LastEntryTime.IsZero())
}

func TestFileSource_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log.1.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	lines := collect(t, NewFileSource(path, 0, log.NewLogger()))
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[1].Text)
}

func TestFileSource_LineTooLong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	writeFile(t, path, strings.Repeat("x", 2048)+"\n")

	out := make(chan Line, 1)
	err := NewFileSource(path, 1, log.NewLogger()).Read(context.Background(), out)
	assert.Error(t, err)
}

func TestFileSource_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "a\nb\nc\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered and never drained
	err := NewFileSource(path, 0, log.NewLogger()).Read(ctx, make(chan Line))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReaderSource(t *testing.T) {
	s := newReaderSource(strings.NewReader("x\ny\n"), 0, log.NewLogger())
	lines := collect(t, s)
	require.Len(t, lines, 2)
	assert.Equal(t, StdinName, lines[0].Source)
	assert.Equal(t, "stdin", s.GetStats().Type)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.log"), "b\n")
	writeFile(t, filepath.Join(dir, "a.log"), "a\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "n\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.log"), 0o755))
	logger := log.NewLogger()

	t.Run("Pattern", func(t *testing.T) {
		sources, err := Open(filepath.Join(dir, "*.log"), 0, logger)
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, filepath.Join(dir, "a.log"), sources[0].Name())
		assert.Equal(t, filepath.Join(dir, "b.log"), sources[1].Name())
	})

	t.Run("SingleFile", func(t *testing.T) {
		sources, err := Open(filepath.Join(dir, "notes.txt"), 0, logger)
		require.NoError(t, err)
		require.Len(t, sources, 1)
	})

	t.Run("Stdin", func(t *testing.T) {
		sources, err := Open("-", 0, logger)
		require.NoError(t, err)
		assert.Equal(t, StdinName, sources[0].Name())
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := Open("", 0, logger)
		assert.Error(t, err)
		_, err = Open(filepath.Join(dir, "missing.log"), 0, logger)
		assert.Error(t, err)
		_, err = Open(filepath.Join(dir, "*.gz"), 0, logger)
		assert.Error(t, err)
		_, err = Open(dir, 0, logger)
		assert.Error(t, err)
	})
}

func TestGlobToRegex(t *testing.T) {
	assert.Equal(t, `^access.*\.log$`, globToRegex("access*.log"))
	assert.Equal(t, `^a.\.log$`, globToRegex("a?.log"))
}
