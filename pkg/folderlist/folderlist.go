// Package folderlist reads the line-oriented list of source folders that
// drives a mirror run and maps each source onto the destination tree.
package folderlist

import (
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrNoEntries is returned when the folder list yields zero usable lines.
var ErrNoEntries = errors.New("folder list contains no usable entries")

// 📁 Entry is one source folder to mirror. The path is kept verbatim from the
// list file so that whitespace and unicode survive the round trip to the
// copy tool's command line.
type Entry struct {
	SourcePath string
}

// 📖 Read parses the folder list at path. Lines are trimmed for the purpose of
// filtering only: a line that is empty after trimming or whose trimmed form
// starts with '#' is skipped, every other line becomes exactly one Entry with
// its trimmed content preserved. Order is significant: the orchestrator uses
// the sequential index to name per-invocation logs.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading folder list: %w", err)
	}

	var entries []Entry
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{SourcePath: line})
	}

	if len(entries) == 0 {
		return nil, errors.Errorf("%w: %s", ErrNoEntries, path)
	}

	return entries, nil
}
