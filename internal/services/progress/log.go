package progress

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

// Log is the append-only progress log shared by the batch worker and the
// control surface. Appends are serialized; nothing is ever removed.
type Log struct {
	mu       sync.Mutex
	lines    []string
	outcomes []rename.Outcome
	sink     io.Writer
	logger   *slog.Logger
}

// NewLog returns a log that also writes each line to sink when sink is non-nil.
func NewLog(sink io.Writer, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{sink: sink, logger: logger}
}

// Append adds one line.
func (l *Log) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(line)
}

func (l *Log) append(line string) {
	l.lines = append(l.lines, line)
	if l.sink == nil {
		return
	}
	if _, err := fmt.Fprintln(l.sink, line); err != nil {
		l.logger.Warn("progress.sink.write_failed", "error", err)
	}
}

// Record appends the outcome's line and keeps the outcome for reporting.
func (l *Log) Record(o rename.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes = append(l.outcomes, o)
	l.append(o.Line())
}

// Drain records every outcome from ch until it closes and returns the final
// Done outcome. ok is false when the stream closed without one.
func (l *Log) Drain(ch <-chan rename.Outcome) (done rename.Outcome, ok bool) {
	for o := range ch {
		l.Record(o)
		if o.Kind == constants.OutcomeDone {
			done, ok = o, true
		}
	}
	return done, ok
}

// Lines returns a copy of every line so far.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Outcomes returns a copy of every recorded outcome so far, Done included.
func (l *Log) Outcomes() []rename.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]rename.Outcome(nil), l.outcomes...)
}
