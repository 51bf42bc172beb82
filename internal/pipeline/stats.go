package pipeline

import (
	"time"

	"github.com/backmassage/mediaconv/internal/convert"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int // units started
	Converted        int
	DryRun           int
	Skipped          int // output existed, auto-rename off
	Mismatched       int
	Failed           int
	Interrupted      int
	TotalOutputBytes int64
	Elapsed          time.Duration
}

// Record counts one conversion result.
func (s *RunStats) Record(r convert.Result) {
	switch r.Status {
	case convert.Converted:
		s.Converted++
		s.TotalOutputBytes += r.OutputBytes
	case convert.DryRun:
		s.DryRun++
	case convert.SkippedExists:
		s.Skipped++
	case convert.TypeMismatch:
		s.Mismatched++
	case convert.Interrupted:
		s.Interrupted++
	default:
		s.Failed++
	}
}
