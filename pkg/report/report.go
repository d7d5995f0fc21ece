// Copyright 2025 the mirrorrc authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders a run summary for humans: the interactive console
// view and the plain-text body used in notifications.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mirrorrc/mirrorrc/pkg/run"
)

// 🎯 Reporter writes the console view of a run.
type Reporter struct {
	console io.Writer
}

// 🏭 NewReporter creates a reporter writing to console.
func NewReporter(console io.Writer) *Reporter {
	return &Reporter{console: console}
}

// 📝 Header prints the run banner.
func (r *Reporter) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("mirrorrc")
	fmt.Fprintf(r.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📊 PrintSummary prints the final counts and, when folders failed, the
// failed-folder list.
func (r *Reporter) PrintSummary(s run.Summary, simulateOnly bool) {
	if simulateOnly {
		fmt.Fprintf(r.console, "%s\n", color.New(color.FgYellow).Sprint("simulate-only run, nothing was copied"))
	}

	fmt.Fprintf(r.console, "  %s %d copied\n", color.New(color.FgGreen).Sprint("✓"), s.CopiedCount)
	fmt.Fprintf(r.console, "  %s %d in sync\n", color.New(color.FgCyan).Sprint("•"), s.SyncedCount)
	fmt.Fprintf(r.console, "  %s %d skipped (missing source)\n", color.New(color.FgYellow).Sprint("-"), s.SkippedCount)
	fmt.Fprintf(r.console, "  %s %d failed\n", color.New(color.FgRed).Sprint("✗"), s.FailedCount)
	fmt.Fprintf(r.console, "  %s %d items transferred\n", color.New(color.Faint).Sprint("→"), len(s.Transferred))

	if s.FailedCount > 0 {
		fmt.Fprintf(r.console, "\n%s\n", color.New(color.FgRed, color.Bold).Sprint("failed folders:"))
		for _, folder := range s.FailedFolders {
			fmt.Fprintf(r.console, "    %s\n", folder)
		}
	}
}

// ✉️ Subject derives the notification subject line from the run result. A
// run with failures is flagged as such; a simulate-only run says so, so a
// scheduled dry run is never mistaken for a real mirror pass.
func Subject(s run.Summary, simulateOnly bool) string {
	var b strings.Builder
	if s.FailedCount > 0 {
		fmt.Fprintf(&b, "mirror run FAILED for %d folder(s)", s.FailedCount)
	} else {
		b.WriteString("mirror run completed")
	}
	if simulateOnly {
		b.WriteString(" [DRY RUN]")
	}
	return b.String()
}

// 📄 Body renders the notification body: the four counts, always, and the
// full failed-folder list when any folder failed.
func Body(s run.Summary, simulateOnly bool) string {
	var b strings.Builder
	if simulateOnly {
		b.WriteString("This was a simulate-only run; no data was copied.\n\n")
	}
	fmt.Fprintf(&b, "Folders copied:  %d\n", s.CopiedCount)
	fmt.Fprintf(&b, "Folders in sync: %d\n", s.SyncedCount)
	fmt.Fprintf(&b, "Folders skipped: %d\n", s.SkippedCount)
	fmt.Fprintf(&b, "Folders failed:  %d\n", s.FailedCount)
	fmt.Fprintf(&b, "Items transferred: %d\n", len(s.Transferred))

	if s.FailedCount > 0 {
		b.WriteString("\nFailed folders:\n")
		for _, folder := range s.FailedFolders {
			fmt.Fprintf(&b, "  %s\n", folder)
		}
	}
	return b.String()
}
