package robocopy

// 📊 Outcome is the classified result of processing one source folder.
type Outcome int

const (
	OutcomeCopied         Outcome = iota // files and/or directories were transferred
	OutcomeSynced                        // trees already match, nothing to do
	OutcomeFailed                        // the copy tool reported hard failures
	OutcomeSkippedMissing                // source folder does not exist, tool never ran
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeSynced:
		return "synced"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkippedMissing:
		return "skipped"
	default:
		return "unknown"
	}
}

// Robocopy's exit status is a bitmask:
//
//	1 = files copied, 2 = extra items detected, 4 = mismatched items detected,
//	8 = copy failures, 16 = fatal error.
const (
	exitCopied   = 0x1
	exitExtras   = 0x2
	exitMismatch = 0x4
	exitFailures = 0x8
)

// 🧮 Classify maps a copy-tool exit code to an outcome per the tool's
// documented contract: 0 means the trees already matched, any code with the
// copy or extra bits set below 8 means content moved, 4 alone (mismatched
// items, no hard failure) is still treated as in-sync, and 8 or above means
// at least one item failed. OutcomeSkippedMissing is never produced here;
// it is assigned before invocation when the source path does not exist.
func Classify(exitCode int) Outcome {
	switch {
	case exitCode >= exitFailures:
		return OutcomeFailed
	case exitCode&(exitCopied|exitExtras) != 0:
		return OutcomeCopied
	default:
		return OutcomeSynced
	}
}
