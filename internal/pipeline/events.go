package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// EventLog is the append-only, newest-first sequence of human-readable
// pipeline events consumed by the dashboard. Unbounded; no rotation.
type EventLog struct {
	mu      sync.Mutex
	entries []string
	now     func() time.Time
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

// Appendf records a formatted event, stamped with the wall-clock time.
func (l *EventLog) Appendf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	entry := fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), msg)
	l.entries = append([]string{entry}, l.entries...)
}

// Snapshot returns a copy of the log, newest first.
func (l *EventLog) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
