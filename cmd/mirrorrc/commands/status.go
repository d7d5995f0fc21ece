package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
)

// runLogName matches run-level logs, not the indexed per-invocation ones.
var runLogName = regexp.MustCompile(`^\d{8}_\d{6}\.log$`)

// NewStatusCmd creates the status command: report the most recent run's
// summary from the log directory without executing anything.
func NewStatusCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the most recent run's summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx, *opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			latest, err := latestRunLog(cfg.LogDir)
			if err != nil {
				return err
			}

			summary, err := summaryLine(latest)
			if err != nil {
				return err
			}

			stamp := strings.TrimSuffix(filepath.Base(latest), ".log")
			fmt.Fprintf(cmd.OutOrStdout(), "last run %s: %s\n", stamp, summary)
			return nil
		},
	}
}

// latestRunLog returns the newest run-level log in dir. Stamps sort
// lexicographically in time order, so no mtime inspection is needed.
func latestRunLog(dir string) (string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Errorf("reading log directory: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		if !e.IsDir() && runLogName.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", errors.Errorf("no run logs found in %s", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// summaryLine extracts the summary event from a run log.
func summaryLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var summary string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "summary ") {
			summary = strings.TrimPrefix(line, "summary ")
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Errorf("scanning run log: %w", err)
	}
	if summary == "" {
		return "", errors.Errorf("run log %s has no summary (run interrupted?)", path)
	}
	return summary, nil
}
