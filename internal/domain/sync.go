package domain

import "time"

// SyncOptions is the tagged sync strategy: a full resync rebuilds every
// collector's notebooks; an incremental resync only rebuilds collectors
// touched by receipts created after Since (or with a non-active status).
// Both variants recompute an affected collector's notebooks from that
// collector's full receipt history, never from the delta alone.
type SyncOptions struct {
	Incremental bool
	Since       time.Time
}

// SyncSummary reports what one reconciliation run did.
type SyncSummary struct {
	RunID              string        `json:"run_id"`
	Incremental        bool          `json:"incremental"`
	CollectorsAffected int           `json:"collectors_affected"`
	NotebooksUpserted  int           `json:"notebooks_upserted"`
	MissingFound       int           `json:"missing_found"`
	PendingCount       int           `json:"pending_count"`
	StartedAt          time.Time     `json:"started_at"`
	Duration           time.Duration `json:"duration"`
}
