package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirrorrc/mirrorrc/pkg/run"
	"github.com/mirrorrc/mirrorrc/pkg/translog"
)

func sampleSummary() run.Summary {
	return run.Summary{
		CopiedCount:   2,
		SyncedCount:   3,
		SkippedCount:  1,
		FailedCount:   2,
		FailedFolders: []string{`D:\Music\Jazz`, `D:\Photos`},
		Transferred:   []translog.Item{{Path: `D:\Music\Jazz\a.flac`}},
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name         string
		summary      run.Summary
		simulateOnly bool
		want         string
	}{
		{
			name:    "failures_flagged",
			summary: sampleSummary(),
			want:    "mirror run FAILED for 2 folder(s)",
		},
		{
			name:    "clean_run",
			summary: run.Summary{CopiedCount: 4},
			want:    "mirror run completed",
		},
		{
			name:         "dry_run_marked",
			summary:      run.Summary{SyncedCount: 4},
			simulateOnly: true,
			want:         "mirror run completed [DRY RUN]",
		},
		{
			name:         "dry_run_with_failures",
			summary:      run.Summary{FailedCount: 1, FailedFolders: []string{`D:\x`}},
			simulateOnly: true,
			want:         "mirror run FAILED for 1 folder(s) [DRY RUN]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject(tt.summary, tt.simulateOnly))
		})
	}
}

func TestBody(t *testing.T) {
	body := Body(sampleSummary(), false)

	assert.Contains(t, body, "Folders copied:  2")
	assert.Contains(t, body, "Folders in sync: 3")
	assert.Contains(t, body, "Folders skipped: 1")
	assert.Contains(t, body, "Folders failed:  2")
	assert.Contains(t, body, `D:\Music\Jazz`)
	assert.Contains(t, body, `D:\Photos`)
}

func TestBodyCleanRunOmitsFailedList(t *testing.T) {
	body := Body(run.Summary{CopiedCount: 1}, false)
	assert.NotContains(t, body, "Failed folders")
}

func TestBodyDryRunNotice(t *testing.T) {
	body := Body(run.Summary{}, true)
	assert.Contains(t, body, "simulate-only run")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).PrintSummary(sampleSummary(), false)

	out := buf.String()
	assert.Contains(t, out, "2 copied")
	assert.Contains(t, out, "3 in sync")
	assert.Contains(t, out, "1 skipped")
	assert.Contains(t, out, "2 failed")
	assert.Contains(t, out, `D:\Music\Jazz`)
}
