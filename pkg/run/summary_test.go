package run

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirrorrc/mirrorrc/pkg/robocopy"
	"github.com/mirrorrc/mirrorrc/pkg/translog"
)

func TestBuildSummary(t *testing.T) {
	outcomes := []FolderOutcome{
		{SourcePath: `D:\a`, Kind: robocopy.OutcomeCopied, ExitCode: 1},
		{SourcePath: `D:\b`, Kind: robocopy.OutcomeSynced, ExitCode: 0},
		{SourcePath: `D:\c`, Kind: robocopy.OutcomeFailed, ExitCode: 16},
		{SourcePath: `D:\d`, Kind: robocopy.OutcomeSkippedMissing},
		{SourcePath: `D:\e`, Kind: robocopy.OutcomeFailed, ExitCode: 8},
		{SourcePath: `D:\f`, Kind: robocopy.OutcomeSynced, ExitCode: 4},
	}
	items := []translog.Item{{Path: `D:\a\x.txt`}}

	s := BuildSummary(outcomes, items)

	assert.Equal(t, 1, s.CopiedCount)
	assert.Equal(t, 2, s.SyncedCount)
	assert.Equal(t, 1, s.SkippedCount)
	assert.Equal(t, 2, s.FailedCount)
	assert.Equal(t, []string{`D:\c`, `D:\e`}, s.FailedFolders, "failed folders keep list order")
	assert.Equal(t, items, s.Transferred)
	assert.Equal(t, len(outcomes), s.Processed(), "counts must add up to entries processed")
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, nil)
	assert.Zero(t, s.Processed())
	assert.Empty(t, s.FailedFolders)
	assert.Empty(t, s.Transferred)
}
