package pipeline

import (
	"fmt"
	"time"

	"github.com/fennecworks/dealscope/pkg/record"
)

// Result represents the outcome of cleaning one batch.
type Result struct {
	// Records is the cleaned, de-duplicated, scored output in the order
	// entities were first seen.
	Records []record.Record

	// Stats describes what each stage did to the batch.
	Stats Stats

	// Warnings carries non-fatal observations about the batch.
	Warnings []string
}

// Stats contains per-stage counters for one batch.
type Stats struct {
	// Collected is the number of raw records handed to the pipeline.
	Collected int
	// Valid is the number of records surviving validation.
	Valid int
	// Dropped is the number of records removed by validation.
	Dropped int
	// Merged is the number of records folded into another entity.
	Merged int
	// Unique is the number of distinct entities in the output.
	Unique int

	// StartTime when cleaning started.
	StartTime time.Time
	// EndTime when cleaning completed.
	EndTime time.Time
	// Duration of the whole batch.
	Duration time.Duration
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("cleaned %d records: %d unique entities, %d merged, %d dropped",
		r.Stats.Collected, r.Stats.Unique, r.Stats.Merged, r.Stats.Dropped)
}

// newResult creates a result with the clock started.
func newResult() *Result {
	return &Result{
		Stats: Stats{StartTime: time.Now()},
	}
}

// finalize calculates duration and marks completion.
func (r *Result) finalize() {
	r.Stats.EndTime = time.Now()
	r.Stats.Duration = r.Stats.EndTime.Sub(r.Stats.StartTime)
}
