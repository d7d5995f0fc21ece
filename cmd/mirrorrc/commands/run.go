package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
	"github.com/mirrorrc/mirrorrc/pkg/creds"
	"github.com/mirrorrc/mirrorrc/pkg/executil"
	"github.com/mirrorrc/mirrorrc/pkg/folderlist"
	"github.com/mirrorrc/mirrorrc/pkg/mount"
	"github.com/mirrorrc/mirrorrc/pkg/notify"
	"github.com/mirrorrc/mirrorrc/pkg/report"
	"github.com/mirrorrc/mirrorrc/pkg/robocopy"
	"github.com/mirrorrc/mirrorrc/pkg/run"
	"github.com/mirrorrc/mirrorrc/pkg/translog"
)

// RootOptions contains shared options used by all commands
type RootOptions struct {
	ConfigFile *string
}

// runFlags are the per-run switches.
type runFlags struct {
	dryRun     bool
	noNotify   bool
	altCreds   bool
	folderList string
	async      bool
}

// NewRunCmd creates the run command: one complete mirror pass over the
// folder list.
func NewRunCmd(opts *RootOptions) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one mirror run over the folder list",
		Long: `Run reads the folder list, mirrors each existing source folder onto the
destination tree with one copy-tool invocation apiece, classifies every
outcome, and writes the run log and transferred-items report. Per-folder
failures never abort the run; only setup failures do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, opts, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "simulate only, list what would be copied")
	cmd.Flags().BoolVar(&flags.noNotify, "no-notify", false, "skip the end-of-run notification")
	cmd.Flags().BoolVar(&flags.altCreds, "alt-credentials", false, "mount the destination share with the stored credential")
	cmd.Flags().StringVar(&flags.folderList, "folders", "", "override the folder list path")
	cmd.Flags().BoolVar(&flags.async, "async", false, "run off the calling goroutine")

	return cmd
}

func executeRun(cmd *cobra.Command, opts *RootOptions, flags runFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := config.Load(ctx, *opts.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if flags.folderList != "" {
		cfg.FolderList = flags.folderList
	}

	// A missing or empty folder list aborts before any folder processing.
	entries, err := folderlist.Read(cfg.FolderList)
	if err != nil {
		return errors.Errorf("reading folder list: %w", err)
	}

	rc := cfg.RunConfig(config.RunOptions{
		SimulateOnly:   flags.dryRun,
		NotifyEnabled:  !flags.noNotify,
		AltCredentials: flags.altCreds,
	})

	stamp := run.Stamp(time.Now())
	runLog, err := run.OpenRunLog(cfg.LogDir, stamp)
	if err != nil {
		return errors.Errorf("opening run log: %w", err)
	}
	defer runLog.Close()
	runLog.Eventf("run-start", "folders=%d simulate=%v", len(entries), rc.SimulateOnly)

	var credStore creds.Store
	if flags.altCreds || rc.NotifyEnabled {
		credStore, err = creds.NewFileStore()
		if err != nil {
			return errors.Errorf("locating credential store: %w", err)
		}
	}

	if flags.altCreds {
		if cfg.Share == nil {
			return errors.Errorf("alternate-credential mode requires a share block in the config")
		}
		cred, err := credStore.Get(ctx)
		if err != nil {
			return errors.Errorf("retrieving mount credential: %w", err)
		}

		mounter := mount.NewNetUse(cfg.Share.MountPoints, executil.ExecRunner{})
		mountedRoot, err := mounter.Acquire(ctx, cred, cfg.Share.Remote)
		if err != nil {
			return errors.Errorf("mounting destination share: %w", err)
		}
		rc.DestinationRoot = mountedRoot
		runLog.Eventf("share-mounted", "%s -> %s", cfg.Share.Remote, mountedRoot)

		// Released on every exit path, including aborts below.
		defer func() {
			if err := mounter.Release(ctx, mountedRoot); err != nil {
				logger.Error().Err(err).Msg("releasing destination share")
				runLog.Eventf("share-release-failed", "%v", err)
				return
			}
			runLog.Eventf("share-released", "%s", mountedRoot)
		}()
	}

	progress := report.NewProgress(ctx)
	orch, err := run.New(run.Options{
		Config:   rc,
		LogDir:   cfg.LogDir,
		Stamp:    stamp,
		Invoker:  robocopy.NewInvoker(cfg.CopyTool, executil.ExecRunner{}),
		Parser:   translog.NewParser(translog.RobocopyLines{}, rc.ExcludeFilePatterns, rc.ExcludeDirNames),
		RunLog:   runLog,
		OnFolder: progress.FolderDone,
	})
	if err != nil {
		return errors.Errorf("creating orchestrator: %w", err)
	}

	var summary run.Summary
	runner := run.NewRunner(flags.async)
	if err := runner.Run(ctx, run.OperationFunc(func(ctx context.Context) error {
		summary = orch.Execute(ctx, entries)
		return nil
	})); err != nil {
		return errors.Errorf("executing run: %w", err)
	}

	paths := make([]string, 0, len(summary.Transferred))
	for _, item := range summary.Transferred {
		paths = append(paths, item.Path)
	}
	itemsPath, err := run.WriteTransferredItems(cfg.LogDir, stamp, paths)
	if err != nil {
		// The summary still stands; the notification just loses an attachment.
		logger.Error().Err(err).Msg("writing transferred-items report")
		runLog.Eventf("report-failed", "%v", err)
	}

	reporter := report.NewReporter(cmd.OutOrStdout())
	reporter.Header("mirror run " + stamp)
	reporter.PrintSummary(summary, rc.SimulateOnly)

	if rc.NotifyEnabled {
		sendNotification(ctx, cfg, credStore, summary, rc.SimulateOnly, runLog, itemsPath)
	}

	runLog.Eventf("run-end", "processed=%d", summary.Processed())
	return nil
}

// sendNotification is strictly the last step of a run and never fails it: a
// missing credential or transport error is reported and the run's logs and
// summary stand as written.
func sendNotification(ctx context.Context, cfg *config.Config, credStore creds.Store, summary run.Summary, simulateOnly bool, runLog *run.RunLog, itemsPath string) {
	logger := zerolog.Ctx(ctx)

	attachments := []string{runLog.Path()}
	if itemsPath != "" {
		attachments = append(attachments, itemsPath)
	}

	msg := notify.Message{
		Subject:      report.Subject(summary, simulateOnly),
		Body:         report.Body(summary, simulateOnly),
		Attachments:  attachments,
		HighPriority: summary.FailedCount > 0,
	}

	dispatcher := notify.NewSMTPDispatcher(*cfg.Notify, credStore)
	if err := dispatcher.Send(ctx, msg); err != nil {
		if errors.Is(err, creds.ErrCredentialMissing) {
			logger.Error().Err(err).Msg("notification skipped: no stored credential (run `mirrorrc setup-credentials`)")
		} else {
			logger.Error().Err(err).Msg("notification failed")
		}
		runLog.Eventf("notify-failed", "%v", err)
		return
	}
	runLog.Event("notify-sent", report.Subject(summary, simulateOnly))
}
