package warm

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many categories a sweep has covered.
type ProgressTracker struct {
	writer    io.Writer
	total     int
	current   int
	live      int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

// NewProgressTracker creates a tracker for total categories writing to writer.
// A nil writer discards output.
func NewProgressTracker(writer io.Writer, total int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{
		writer: writer,
		total:  total,
	}
}

// Start begins tracking at completed categories, which is non-zero when a
// sweep resumes from a checkpoint.
func (p *ProgressTracker) Start(completed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = min(completed, p.total)
	p.live = 0
}

// Done records one finished category and reports.
func (p *ProgressTracker) Done(category string, live bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = min(p.current+1, p.total)
	if live {
		p.live++
	}
	p.report(category)
}

// Finish prints the final line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report must be called with lock held.
func (p *ProgressTracker) report(category string) {
	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rWarming: %d/%d (%.1f%%) - %d live - %-20s",
		p.current, p.total, percentage, p.live, category)
}
