package extract

import (
	"sort"
	"time"
)

// Outcome classifies a single export attempt.
type Outcome int

const (
	// OutcomeSuccess means the exporter wrote at least one file.
	OutcomeSuccess Outcome = iota
	// OutcomeFailed means the exporter failed or panicked.
	OutcomeFailed
	// OutcomeSkipped means the object was filtered out, such as a texture below the minimum size.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// TypeCounts tallies outcomes for one asset type.
type TypeCounts struct {
	Success int
	Failed  int
	Skipped int
}

func (c *TypeCounts) add(o Outcome) {
	switch o {
	case OutcomeSuccess:
		c.Success++
	case OutcomeFailed:
		c.Failed++
	case OutcomeSkipped:
		c.Skipped++
	}
}

// BundleCounts tallies bundle-level results.
type BundleCounts struct {
	// Total is the number of discovered candidate files.
	Total int
	// Opened is the number of files the parser accepted.
	Opened int
	// NotBundle is the number of files the parser rejected as foreign.
	NotBundle int
	// Errored is the number of bundles that failed to open.
	Errored int
	// Interrupted is the number of opened bundles whose object stream ended in an error.
	Interrupted int
	// Normalized is the number of bundles whose alternate header was stripped before opening.
	Normalized int
}

// Stats accumulates the results of one run. It is owned by a single goroutine.
type Stats struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Bundles  BundleCounts

	types map[string]*TypeCounts
}

// NewStats creates an empty Stats.
func NewStats(runID string) *Stats {
	return &Stats{
		RunID:   runID,
		Started: time.Now(),
		types:   make(map[string]*TypeCounts),
	}
}

// Record counts one outcome for typeName.
func (s *Stats) Record(typeName string, o Outcome) {
	c, ok := s.types[typeName]
	if !ok {
		c = &TypeCounts{}
		s.types[typeName] = c
	}
	c.add(o)
}

// Counts returns the tallies for typeName.
func (s *Stats) Counts(typeName string) TypeCounts {
	if c, ok := s.types[typeName]; ok {
		return *c
	}
	return TypeCounts{}
}

// Types returns the type names with at least one recorded outcome, sorted.
func (s *Stats) Types() []string {
	types := make([]string, 0, len(s.types))
	for t := range s.types {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Totals sums the tallies across all types.
func (s *Stats) Totals() TypeCounts {
	var total TypeCounts
	for _, c := range s.types {
		total.Success += c.Success
		total.Failed += c.Failed
		total.Skipped += c.Skipped
	}
	return total
}
