// Package storage persists analysis output. The analysis core hands over
// per-review results and per-group theme summaries; how they are stored is
// this package's concern alone.
package storage

import "bankpulse"

// Storage writes analysis results somewhere durable.
type Storage interface {
	// SaveAnalyses persists per-review results, replacing rows that share
	// a review ID.
	SaveAnalyses(analyses []bankpulse.ReviewAnalysis) error
	// SaveGroupSummaries persists per-group theme summaries for this run.
	SaveGroupSummaries(groups map[string]bankpulse.GroupThemeAnalysis) error
	Close() error
}
