package storage

import "time"

// ScanRow is a lightweight listing row for /scans.
type ScanRow struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Source        string    `json:"source,omitempty"`
	SchemaVersion string    `json:"schema_version,omitempty"`
	Issues        int       `json:"issues"`
}
