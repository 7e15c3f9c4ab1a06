package storage

import (
	"database/sql"
	"time"

	"github.com/a11ykit/a11ylint/internal/ir"
)

// ListScans returns a lightweight list of scans with issue counts.
func (db *DB) ListScans(limit, offset int) ([]ScanRow, error) {
	const q = `
		SELECT s.id, s.started_at, s.source, s.schema_version,
		       (SELECT COUNT(1) FROM issues i WHERE i.scan_id = s.id) AS issues
		  FROM scans s
		 ORDER BY s.started_at DESC, s.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScanRow
	for rows.Next() {
		var sr ScanRow
		var startedAtStr string
		if err := rows.Scan(&sr.ID, &startedAtStr, &sr.Source, &sr.SchemaVersion, &sr.Issues); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			sr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			sr.StartedAt = t2
		} else {
			sr.StartedAt = time.Time{}
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ListIssues returns issues for a scan at or above a minimum severity.
func (db *DB) ListIssues(scanID, minSeverity string) ([]ir.Issue, error) {
	const q = `
		SELECT id, screen, path, rule_id, severity, message, expectation, docs, evidence
		  FROM issues
		 WHERE scan_id = ?
		   AND (CASE severity WHEN 'CRITICAL' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'CRITICAL' THEN 2 ELSE 1 END)
		 ORDER BY
		       (CASE severity WHEN 'CRITICAL' THEN 2 ELSE 1 END) DESC,
		       rule_id, screen, path, id`
	rows, err := db.conn.Query(q, scanID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Issue
	for rows.Next() {
		var is ir.Issue
		if err := rows.Scan(&is.ID, &is.Screen, &is.Path, &is.RuleID, &is.Severity, &is.Message, &is.Expectation, &is.Docs, &is.Evidence); err != nil {
			return nil, err
		}
		out = append(out, is)
	}
	return out, rows.Err()
}

// HasScan reports whether a scan with the given id exists.
func (db *DB) HasScan(id string) (bool, error) {
	const q = `SELECT 1 FROM scans WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
