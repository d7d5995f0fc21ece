package run

import (
	"github.com/mirrorrc/mirrorrc/pkg/robocopy"
	"github.com/mirrorrc/mirrorrc/pkg/translog"
)

// 📊 FolderOutcome is the classified result for one folder-list entry.
// Exactly one outcome exists per entry; the sequence is append-only and
// ordered by folder-list position.
type FolderOutcome struct {
	SourcePath string
	DestPath   string
	ExitCode   int
	Kind       robocopy.Outcome
}

// 📈 Summary aggregates one run. Built once when the folder loop finishes and
// immutable afterwards; it is the sole input to the console report and the
// notification body.
type Summary struct {
	CopiedCount   int
	SyncedCount   int
	SkippedCount  int
	FailedCount   int
	FailedFolders []string
	Transferred   []translog.Item
}

// Processed returns the number of folder entries the run handled.
func (s Summary) Processed() int {
	return s.CopiedCount + s.SyncedCount + s.SkippedCount + s.FailedCount
}

// 🧮 BuildSummary is pure aggregation over the outcome sequence plus the
// run-wide transferred-items sequence. It never re-reads logs.
func BuildSummary(outcomes []FolderOutcome, transferred []translog.Item) Summary {
	s := Summary{Transferred: transferred}
	for _, o := range outcomes {
		switch o.Kind {
		case robocopy.OutcomeCopied:
			s.CopiedCount++
		case robocopy.OutcomeSynced:
			s.SyncedCount++
		case robocopy.OutcomeSkippedMissing:
			s.SkippedCount++
		case robocopy.OutcomeFailed:
			s.FailedCount++
			s.FailedFolders = append(s.FailedFolders, o.SourcePath)
		}
	}
	return s
}
