package watch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/liamg/scandiff/scan"
)

// LogPrefix names the per-run log files written into the output directory.
const LogPrefix = "continuous_differential_analysis_"

const logNameLayout = "2006-01-02_15-04-05"

// EventLog appends timestamped change lines to a text file. One log is created
// per process run.
type EventLog struct {
	path      string
	w         io.Writer
	closer    io.Closer
	now       func() time.Time
	describer scan.Describer
}

// CreateEventLog opens a new append-only log in dir named after started.
func CreateEventLog(dir string, started time.Time, describer scan.Describer) (*EventLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogPrefix+started.Format(logNameLayout)+reportExt)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}

	l := NewEventLog(f, time.Now, describer)
	l.path = path
	l.closer = f
	return l, nil
}

// NewEventLog writes to w, stamping each line with now().
func NewEventLog(w io.Writer, now func() time.Time, describer scan.Describer) *EventLog {
	if now == nil {
		now = time.Now
	}
	if describer == nil {
		describer = scan.NopDescriber{}
	}
	return &EventLog{
		w:         w,
		now:       now,
		describer: describer,
	}
}

func (l *EventLog) Path() string {
	return l.path
}

// Record writes the result of comparing the two reports in window.
func (l *EventLog) Record(window Window, changes []scan.Change) error {
	if len(changes) == 0 {
		return l.writeLine(fmt.Sprintf("No changes between %s and %s", window.Older, window.Newer))
	}

	header := fmt.Sprintf(
		"Changes between %s and %s: %s",
		window.Older,
		window.Newer,
		scan.Summarize(changes),
	)
	if err := l.writeLine(header); err != nil {
		return err
	}

	for _, change := range changes {
		if err := l.writeLine(change.Format(l.describer)); err != nil {
			return err
		}
	}
	return nil
}

func (l *EventLog) writeLine(line string) error {
	if _, err := fmt.Fprintf(l.w, "%s - %s\n", l.now().Format(time.RFC3339), line); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	return nil
}

func (l *EventLog) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
