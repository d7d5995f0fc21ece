package run

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gitlab.com/tozd/go/errors"
)

// StampFormat names run artifacts by run start time. Every file a run writes
// shares one stamp, so a run's log, invocation logs, and transferred-items
// report sort together.
const StampFormat = "20060102_150405"

// 📜 RunLog is the run-level append log: one `<event> <context>` line per
// entry, UTF-8, no byte-order mark, never mutated after the run ends.
type RunLog struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// 🏭 OpenRunLog creates the run-level log `<dir>/<stamp>.log`, creating the
// log directory if needed.
func OpenRunLog(dir, stamp string) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, stamp+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Errorf("opening run log: %w", err)
	}
	return &RunLog{f: f, path: path}, nil
}

// 📝 Event appends one `<event> <context>` line.
func (l *RunLog) Event(event, context string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	fmt.Fprintf(l.f, "%s %s\n", event, context)
}

// Eventf appends a formatted event line.
func (l *RunLog) Eventf(event, format string, args ...any) {
	l.Event(event, fmt.Sprintf(format, args...))
}

// Path returns the run log's file path, for attaching to notifications.
func (l *RunLog) Path() string {
	return l.path
}

// Close flushes and closes the log.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// InvocationLogPath names the per-invocation log for the folder at the given
// list position: `<dir>/<stamp>_<index>.log`. The sequential index is what
// makes folder-list order significant.
func InvocationLogPath(dir, stamp string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.log", stamp, index))
}

// 🗒️ WriteTransferredItems materializes the run's transferred-items report:
// one path per line, or a single explanatory line when nothing moved.
func WriteTransferredItems(dir, stamp string, paths []string) (string, error) {
	path := filepath.Join(dir, stamp+"_transferred.txt")

	var b strings.Builder
	if len(paths) == 0 {
		b.WriteString("no items were transferred during this run\n")
	}
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.Errorf("writing transferred-items report: %w", err)
	}
	return path, nil
}

// Stamp returns the artifact stamp for a run starting now.
func Stamp(now time.Time) string {
	return now.Format(StampFormat)
}
