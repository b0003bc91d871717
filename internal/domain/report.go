package domain

import "time"

// ExcludedRecord names a record dropped from a pass and why.
type ExcludedRecord struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// MigrationReport summarizes one migration pass.
type MigrationReport struct {
	RunID      string           `json:"run_id"`
	Total      int              `json:"total"`
	Converted  int              `json:"converted"`
	Retried    int              `json:"retried"`
	Excluded   []ExcludedRecord `json:"excluded"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Duration returns the wall time of the pass.
func (r *MigrationReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
