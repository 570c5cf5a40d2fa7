// Package model defines shared data structures.
package model

import "time"

// Sample is a single tracking measurement: a position and the moment it
// was captured. Timestamps are caller-supplied seconds; the core never
// reads a clock.
type Sample struct {
	Position  Vec3
	Timestamp float64
}

// Correction is a learned misspelling entry as persisted in the store.
type Correction struct {
	Key         string
	Replacement string
	LearnedAt   time.Time
}

// ReplaySummary captures a completed trace replay for persistence and
// reporting.
type ReplaySummary struct {
	StartedAt      time.Time
	EndedAt        time.Time
	TracePath      string
	Samples        int
	RMSRaw         float64
	RMSSmoothed    float64
	StabilityRatio float64
	DurationMs     int64
}
