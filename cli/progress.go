package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Status is the outcome of processing one serializer.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusValid     Status = "valid"
	StatusFailed    Status = "failed"
)

// ProgressReporter records per-serializer outcomes and prints a summary.
type ProgressReporter struct {
	mu       sync.Mutex
	out      io.Writer
	statuses map[string]Status
	start    time.Time
}

// NewProgressReporter creates a reporter writing to out
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		out:      out,
		statuses: make(map[string]Status),
		start:    time.Now(),
	}
}

// Update records and prints the status of a serializer
func (p *ProgressReporter) Update(name string, status Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.statuses[name] = status
	fmt.Fprintf(p.out, "%s %s: %s\n", symbolFor(status), name, status)
}

// Failed returns the names that failed, sorted
func (p *ProgressReporter) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var failed []string
	for name, status := range p.statuses {
		if status == StatusFailed {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}

// Done prints the summary line
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	failed := 0
	for _, status := range p.statuses {
		if status == StatusFailed {
			failed++
		}
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "\n%d serializer(s), %d failed in %s\n", len(p.statuses), failed, elapsed)
}

func symbolFor(status Status) string {
	switch status {
	case StatusWritten, StatusValid:
		return "[*]"
	case StatusFailed:
		return "[x]"
	default:
		return "[.]"
	}
}
