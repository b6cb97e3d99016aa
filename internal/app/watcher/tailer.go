package watcher

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"orslog/internal/app/logs"
)

// Tailer remembers how far each file has been read
type Tailer interface {
	Seed(path string)
	ReadNew(path string) ([]string, error)
	Forget(path string)
}

type tailer struct {
	offsets map[string]int64
	mu      sync.Mutex
}

// NewTailer creates an empty tailer
func NewTailer() Tailer {
	return &tailer{
		offsets: make(map[string]int64),
	}
}

// Seed starts tracking an existing file from its current end
func (t *tailer) Seed(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.offsets[path] = info.Size()
}

// ReadNew returns complete lines appended since the previous read; a file
// that shrank is read again from the start
func (t *tailer) ReadNew(path string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	offset := t.offsets[path]
	if info.Size() < offset {
		offset = 0
	}

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	var lines []string

	reader := bufio.NewReader(file)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		offset += int64(len(line))

		text := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(text) != "" {
			lines = append(lines, text)
		}
	}

	t.offsets[path] = offset

	return lines, nil
}

// Forget stops tracking a removed or renamed file
func (t *tailer) Forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.offsets, path)
}

var severityPatterns = []struct {
	pattern  *regexp.Regexp
	severity logs.Severity
}{
	{pattern: regexp.MustCompile(`(?i)\b(ERROR|FATAL|ERR|PANIC)\b`), severity: logs.Error},
	{pattern: regexp.MustCompile(`(?i)\b(WARNING|WARN|WRN)\b`), severity: logs.Warning},
	{pattern: regexp.MustCompile(`(?i)\b(DEBUG|DBG)\b`), severity: logs.Debug},
	{pattern: regexp.MustCompile(`(?i)\b(TRACE|VERBOSE|TRC)\b`), severity: logs.Verbose},
}

// DetectSeverity guesses a severity from level markers in a log line, defaulting to INFO
func DetectSeverity(line string) logs.Severity {
	for _, p := range severityPatterns {
		if p.pattern.MatchString(line) {
			return p.severity
		}
	}

	return logs.Info
}
