package search

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"
)

// Report is the structure search's CSV log: one flushed row per structure
// candidate attempted, so a killed or timed-out search still leaves a
// usable partial report (spec.md §5). Columns: uid, elapsed seconds,
// structure key, listBound the driver converged on (0 if it never got
// that far), outcome ("success" or "failure").
type Report struct {
	mu sync.Mutex
	w  *csv.Writer
	f  *os.File
}

func NewReport(path string) (*Report, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("search: creating report %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"uid", "seconds", "structure", "list_bound", "outcome"}); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	return &Report{w: w, f: f}, nil
}

// Row appends and immediately flushes one report line.
func (r *Report) Row(uid string, start time.Time, structure string, listBound int, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcome := "failure"
	if success {
		outcome = "success"
	}
	seconds := time.Since(start).Seconds()
	if err := r.w.Write([]string{
		uid,
		fmt.Sprintf("%.3f", seconds),
		structure,
		fmt.Sprintf("%d", listBound),
		outcome,
	}); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

func (r *Report) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Flush()
	return r.f.Close()
}
