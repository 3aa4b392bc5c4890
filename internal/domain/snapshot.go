package domain

import "time"

// Snapshot is the result of one successful enumeration cycle.
type Snapshot struct {
	CycleID   string    `json:"cycle_id"`
	Basin     string    `json:"basin"`
	FetchedAt time.Time `json:"fetched_at"`
	Storms    []Storm   `json:"storms"`
}
