package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestRunLog(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"20260825_030000.log",
		"20260826_030000.log",
		"20260826_030000_001.log", // per-invocation logs are not run logs
		"unrelated.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	latest, err := latestRunLog(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260826_030000.log"), latest)
}

func TestLatestRunLogEmptyDir(t *testing.T) {
	_, err := latestRunLog(t.TempDir())
	require.Error(t, err)
}

func TestSummaryLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20260826_030000.log")
	content := "run-start folders=2 simulate=false\n" +
		"folder-done D:\\Music\\Jazz exit=1 outcome=copied\n" +
		"summary copied=1 synced=1 skipped=0 failed=0 transferred=3\n" +
		"run-end processed=2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := summaryLine(path)
	require.NoError(t, err)
	assert.Equal(t, "copied=1 synced=1 skipped=0 failed=0 transferred=3", got)
}

func TestSummaryLineMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20260826_030000.log")
	require.NoError(t, os.WriteFile(path, []byte("run-start folders=2\n"), 0o644))
	_, err := summaryLine(path)
	require.Error(t, err)
}
