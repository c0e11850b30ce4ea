package models

// RunStats aggregates outcome counts for a single run. Owned by the
// orchestrator; each counter increments exactly once per eligible
// entry.
type RunStats struct {
	Processed int
	Succeeded int
	Skipped   int
	Failed    int
}

// Count registers one terminal outcome.
func (r *RunStats) Count(status ProcessStatus) {
	switch status {
	case StatusSucceeded:
		r.Succeeded++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}
