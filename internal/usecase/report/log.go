package report

import (
	"sync"

	reportv1 "github.com/kaushalkahapola/exchange-application/internal/domain/report/v1"
)

// Log is an in-memory append-only execution report sink preserving emission
// order.
type Log struct {
	mu      sync.RWMutex
	reports []reportv1.ExecutionReport
}

// NewLog creates an empty report log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a report to the end of the log.
func (l *Log) Append(report reportv1.ExecutionReport) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = append(l.reports, report)
}

// Reports returns the full report sequence in emission order. The returned
// slice is a copy; mutating it does not affect the log.
func (l *Log) Reports() []reportv1.ExecutionReport {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]reportv1.ExecutionReport, len(l.reports))
	copy(out, l.reports)
	return out
}

// Len returns the number of reports appended so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reports)
}
