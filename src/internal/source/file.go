// FILE: loglens/src/internal/source/file.go
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/lixenwraith/log"
)

// FileSource reads one log file from start to end. Files ending in .gz are
// decompressed on the fly.
type FileSource struct {
	path      string
	maxLineKB int
	logger    *log.Logger

	counters
}

// NewFileSource creates a source for a single file.
func NewFileSource(path string, maxLineKB int, logger *log.Logger) *FileSource {
	s := &FileSource{
		path:      path,
		maxLineKB: maxLineKB,
		logger:    logger,
	}
	s.init()
	return s
}

func (s *FileSource) Name() string { return s.path }

// Read streams the file's lines.
func (s *FileSource) Read(ctx context.Context, out chan<- Line) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(s.path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream %s: %w", s.path, err)
		}
		defer gz.Close()
		r = gz
	}

	s.logger.Debug("msg", "File source started",
		"component", "file_source",
		"path", s.path)

	if err := scanLines(ctx, r, s.path, s.maxLineKB, &s.counters, out); err != nil {
		s.logger.Error("msg", "Scanner error while reading file",
			"component", "file_source",
			"path", s.path,
			"error", err)
		return err
	}

	s.logger.Debug("msg", "File source finished",
		"component", "file_source",
		"path", s.path,
		"lines", s.totalLines.Load())
	return nil
}

func (s *FileSource) GetStats() SourceStats {
	return s.stats("file", s.path, map[string]any{
		"compressed": strings.HasSuffix(s.path, ".gz"),
	})
}

// Open expands an input path into sources. "-" selects stdin; a path whose
// base name contains * or ? is matched against its directory.
func Open(path string, maxLineKB int, logger *log.Logger) ([]Source, error) {
	if path == "" {
		return nil, fmt.Errorf("input path is empty")
	}
	if path == StdinName {
		return []Source{NewStdinSource(maxLineKB, logger)}, nil
	}

	dir, pattern := filepath.Split(path)
	if !strings.ContainsAny(pattern, "*?") {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("input %s is a directory, use a pattern such as %s", path, filepath.Join(path, "*.log"))
		}
		return []Source{NewFileSource(path, maxLineKB, logger)}, nil
	}

	if dir == "" {
		dir = "."
	}
	files, err := scanDir(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %s", path)
	}

	logger.Debug("msg", "Expanded input pattern",
		"component", "file_source",
		"pattern", path,
		"files", len(files))

	out := make([]Source, len(files))
	for i, f := range files {
		out[i] = NewFileSource(f, maxLineKB, logger)
	}
	return out, nil
}

// scanDir finds all regular files in dir whose name matches pattern, sorted by name.
func scanDir(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(globToRegex(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern regex: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); re.MatchString(name) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// globToRegex converts a simple glob pattern to a regular expression.
func globToRegex(glob string) string {
	regex := regexp.QuoteMeta(glob)
	regex = strings.ReplaceAll(regex, `\*`, `.*`)
	regex = strings.ReplaceAll(regex, `\?`, `.`)
	return "^" + regex + "$"
}
