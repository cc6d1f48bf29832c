package rename

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/pdf-renamer/constants"
)

// Outcome is what happened to one file, or the terminal Done marker.
type Outcome struct {
	Kind      constants.OutcomeKind
	Source    string // base name of the file as found in the folder
	FinalName string // set for Renamed, WouldRename and SkippedConflict
	Reason    string // set for Failed and SkippedConflict, and for Done when the run stopped early
	Summary   *Summary
}

// Summary counts the per-file outcomes of a run.
type Summary struct {
	RunID  string
	Counts map[constants.OutcomeKind]int
	Total  int
}

func newSummary(runID string) *Summary {
	return &Summary{RunID: runID, Counts: make(map[constants.OutcomeKind]int, len(constants.OutcomeKinds))}
}

func (s *Summary) add(k constants.OutcomeKind) {
	s.Counts[k]++
	s.Total++
}

func (s *Summary) String() string {
	parts := make([]string, 0, len(constants.OutcomeKinds))
	for _, k := range constants.OutcomeKinds {
		parts = append(parts, fmt.Sprintf("%s=%d", strings.ToLower(string(k)), s.Counts[k]))
	}
	return strings.Join(parts, " ")
}

// Line renders the outcome as one progress-log line.
func (o Outcome) Line() string {
	switch o.Kind {
	case constants.OutcomeRenamed:
		return fmt.Sprintf("Renamed %s to: %s", o.Source, o.FinalName)
	case constants.OutcomeWouldRename:
		return fmt.Sprintf("Will rename %s to: %s", o.Source, o.FinalName)
	case constants.OutcomeSkippedConflict:
		return fmt.Sprintf("Skipped %s (file exists): %s", o.Source, o.FinalName)
	case constants.OutcomeSkippedEmptyRegion:
		return fmt.Sprintf("Skipped %s: no text found in area", o.Source)
	case constants.OutcomeFailed:
		if o.Source == "" {
			return "Error: " + o.Reason
		}
		return fmt.Sprintf("Error %s: %s", o.Source, o.Reason)
	case constants.OutcomeDone:
		if o.Reason != "" {
			return "Done (stopped: " + o.Reason + ")."
		}
		return "Done."
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Source)
	}
}
