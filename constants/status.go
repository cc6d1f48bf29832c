package constants

// OutcomeKind is the canonical per-file result of a rename batch.
type OutcomeKind string

// Stable values (used in log lines and reports).
const (
	OutcomeRenamed            OutcomeKind = "RENAMED"
	OutcomeWouldRename        OutcomeKind = "WOULD_RENAME"         // preview-only run
	OutcomeSkippedConflict    OutcomeKind = "SKIPPED_CONFLICT"     // target already exists
	OutcomeSkippedEmptyRegion OutcomeKind = "SKIPPED_EMPTY_REGION" // selected area had no text
	OutcomeFailed             OutcomeKind = "FAILED"
	OutcomeDone               OutcomeKind = "DONE" // terminal marker
)

// OutcomeKinds lists the per-file kinds in report order (Done excluded).
var OutcomeKinds = []OutcomeKind{
	OutcomeRenamed,
	OutcomeWouldRename,
	OutcomeSkippedConflict,
	OutcomeSkippedEmptyRegion,
	OutcomeFailed,
}
