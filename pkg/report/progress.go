package report

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/mirrorrc/mirrorrc/pkg/robocopy"
	"github.com/mirrorrc/mirrorrc/pkg/run"
)

// 📢 Progress gives per-folder feedback while a run is executing.
type Progress struct {
	log zerolog.Logger
}

// 🎯 NewProgress creates a progress printer bound to the context's logger.
func NewProgress(ctx context.Context) *Progress {
	return &Progress{log: *zerolog.Ctx(ctx)}
}

// 📝 FolderDone prints one folder's outcome as it completes.
func (p *Progress) FolderDone(o run.FolderOutcome) {
	var printer *pterm.PrefixPrinter
	switch o.Kind {
	case robocopy.OutcomeCopied:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "⇄"})
	case robocopy.OutcomeSynced:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "="})
	case robocopy.OutcomeSkippedMissing:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "?"})
	default:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "✗"})
	}

	msg := fmt.Sprintf("%s (%s)", o.SourcePath, o.Kind)
	printer.Println(msg)
	p.log.Info().
		Str("source", o.SourcePath).
		Str("outcome", o.Kind.String()).
		Int("exit_code", o.ExitCode).
		Msg("folder processed")
}
