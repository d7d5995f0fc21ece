// Package run is the sync-run orchestrator: it walks the folder list in
// order, drives one copy-tool invocation per existing source folder,
// classifies each outcome, accumulates the transferred-items sequence, and
// aggregates everything into a Summary. Per-folder failures never abort the
// run; only pre-loop setup can.
package run

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
	"github.com/mirrorrc/mirrorrc/pkg/folderlist"
	"github.com/mirrorrc/mirrorrc/pkg/robocopy"
	"github.com/mirrorrc/mirrorrc/pkg/translog"
)

// 🔌 Invoker runs the copy tool for one folder. Satisfied by
// *robocopy.Invoker; tests substitute fakes.
type Invoker interface {
	Invoke(ctx context.Context, sourcePath, destPath string, cfg config.RunConfig, logPath string) (robocopy.InvocationResult, error)
}

// 🔧 Options configures an Orchestrator.
type Options struct {
	Config  config.RunConfig
	LogDir  string
	Stamp   string
	Invoker Invoker
	Parser  *translog.Parser
	RunLog  *RunLog

	// OnFolder, when set, is called once per entry as its outcome is decided.
	OnFolder func(FolderOutcome)
}

// 🎮 Orchestrator owns one run's state from first folder to final summary.
type Orchestrator struct {
	cfg      config.RunConfig
	logDir   string
	stamp    string
	invoker  Invoker
	parser   *translog.Parser
	runLog   *RunLog
	onFolder func(FolderOutcome)
}

// 🏭 New creates an orchestrator with the given options.
func New(opts Options) (*Orchestrator, error) {
	if opts.Invoker == nil {
		return nil, errors.Errorf("invoker is required")
	}
	if opts.Parser == nil {
		return nil, errors.Errorf("transfer-log parser is required")
	}
	if opts.RunLog == nil {
		return nil, errors.Errorf("run log is required")
	}
	return &Orchestrator{
		cfg:      opts.Config,
		logDir:   opts.LogDir,
		stamp:    opts.Stamp,
		invoker:  opts.Invoker,
		parser:   opts.Parser,
		runLog:   opts.RunLog,
		onFolder: opts.OnFolder,
	}, nil
}

// 🏃 Execute processes the folder list strictly sequentially, one copy-tool
// invocation at a time. The sequential index names each invocation log. The
// returned Summary is complete: every entry contributed exactly one outcome.
func (o *Orchestrator) Execute(ctx context.Context, entries []folderlist.Entry) Summary {
	logger := zerolog.Ctx(ctx)

	outcomes := make([]FolderOutcome, 0, len(entries))
	var transferred []translog.Item

	for i, entry := range entries {
		if _, err := os.Stat(entry.SourcePath); err != nil {
			// Missing sources are skipped without ever starting the tool.
			outcomes = o.record(outcomes, FolderOutcome{
				SourcePath: entry.SourcePath,
				Kind:       robocopy.OutcomeSkippedMissing,
			})
			o.runLog.Eventf("skip-missing", "%s", entry.SourcePath)
			logger.Warn().Str("source", entry.SourcePath).Msg("source folder does not exist, skipping")
			continue
		}

		destPath := folderlist.MapDestination(entry.SourcePath, o.cfg.DestinationRoot)
		logPath := InvocationLogPath(o.logDir, o.stamp, i)

		res, err := o.invoker.Invoke(ctx, entry.SourcePath, destPath, o.cfg, logPath)
		if err != nil {
			// Recovered per-folder: marked failed, loop continues.
			outcomes = o.record(outcomes, FolderOutcome{
				SourcePath: entry.SourcePath,
				DestPath:   destPath,
				ExitCode:   res.ExitCode,
				Kind:       robocopy.OutcomeFailed,
			})
			o.runLog.Eventf("invoke-failed", "%s: %v", entry.SourcePath, err)
			logger.Error().Err(err).Str("source", entry.SourcePath).Msg("copy tool invocation failed")
			continue
		}

		kind := robocopy.Classify(res.ExitCode)
		outcomes = o.record(outcomes, FolderOutcome{
			SourcePath: entry.SourcePath,
			DestPath:   destPath,
			ExitCode:   res.ExitCode,
			Kind:       kind,
		})
		o.runLog.Eventf("folder-done", "%s exit=%d outcome=%s", entry.SourcePath, res.ExitCode, kind)

		// Even a failed invocation may have moved files before the failure,
		// so every written log is parsed.
		items, err := o.parser.ExtractTransferred(res.LogPath)
		if err != nil {
			o.runLog.Eventf("parse-failed", "%s: %v", res.LogPath, err)
			logger.Warn().Err(err).Str("log", res.LogPath).Msg("could not parse invocation log")
			continue
		}
		transferred = append(transferred, items...)
	}

	summary := BuildSummary(outcomes, transferred)
	o.runLog.Eventf("summary", "copied=%d synced=%d skipped=%d failed=%d transferred=%d",
		summary.CopiedCount, summary.SyncedCount, summary.SkippedCount, summary.FailedCount, len(summary.Transferred))
	return summary
}

// record appends one outcome and notifies the per-folder hook.
func (o *Orchestrator) record(outcomes []FolderOutcome, fo FolderOutcome) []FolderOutcome {
	if o.onFolder != nil {
		o.onFolder(fo)
	}
	return append(outcomes, fo)
}
