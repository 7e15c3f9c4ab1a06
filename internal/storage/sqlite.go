package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/a11ykit/a11ylint/internal/ir"
)

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables (and compatibility views) exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS scans (
  id             TEXT PRIMARY KEY,
  started_at     TEXT,          -- RFC3339
  source         TEXT,
  schema_version TEXT,
  scan_json      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS issues (
  id          TEXT,
  scan_id     TEXT NOT NULL,
  screen      TEXT,
  path        TEXT,
  rule_id     TEXT,
  severity    TEXT,
  message     TEXT,
  expectation TEXT,
  docs        TEXT,
  evidence    TEXT,
  PRIMARY KEY (id, scan_id),
  FOREIGN KEY(scan_id) REFERENCES scans(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_scan ON issues(scan_id);
CREATE INDEX IF NOT EXISTS idx_issues_rule ON issues(rule_id);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);

CREATE TABLE IF NOT EXISTS waivers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  rule_id     TEXT NOT NULL,
  screen      TEXT,              -- optional exact match; NULL = any
  path        TEXT,              -- optional exact match; NULL = any
  pattern_sub TEXT,              -- optional substring to match evidence/message
  reason      TEXT NOT NULL,
  expires_at  TEXT NOT NULL,     -- RFC3339Nano
  created_by  TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  revoked_at  TEXT               -- NULL = active
);

-- ------------------------------------------------------------------
-- Compatibility views for summary queries (e.g., db-summary)
-- ------------------------------------------------------------------
CREATE VIEW IF NOT EXISTS screens AS
SELECT DISTINCT screen
FROM issues
WHERE screen IS NOT NULL;

CREATE VIEW IF NOT EXISTS elements AS
SELECT DISTINCT screen, path
FROM issues
WHERE screen IS NOT NULL AND path IS NOT NULL;
`)
	return err
}

// SaveScan upserts a scan JSON and (re)writes its issues.
func (db *DB) SaveScan(scan *ir.Scan) error {
	b, err := json.Marshal(scan)
	if err != nil {
		return err
	}
	ts := scan.StartedAt.UTC().Format(time.RFC3339Nano)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO scans (id, started_at, source, schema_version, scan_json)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, source=excluded.source, schema_version=excluded.schema_version, scan_json=excluded.scan_json`,
		scan.ID, ts, scan.Source, scan.SchemaVersion, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM issues WHERE scan_id = ?`, scan.ID); err != nil {
		return err
	}
	if len(scan.Issues) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO issues
			(id, scan_id, screen, path, rule_id, severity, message, expectation, docs, evidence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, is := range scan.Issues {
			if _, err := stmt.Exec(
				is.ID,
				scan.ID,
				is.Screen,
				is.Path,
				is.RuleID,
				is.Severity,
				is.Message,
				is.Expectation,
				is.Docs,
				is.Evidence,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadScan returns the full scan (from stored JSON).
func (db *DB) LoadScan(id string) (ir.Scan, error) {
	var s string
	row := db.conn.QueryRow(`SELECT scan_json FROM scans WHERE id = ?`, id)
	if err := row.Scan(&s); err != nil {
		return ir.Scan{}, err
	}
	var scan ir.Scan
	if err := json.Unmarshal([]byte(s), &scan); err != nil {
		return ir.Scan{}, err
	}
	return scan, nil
}

// LoadLatestScan returns the most recently started scan.
func (db *DB) LoadLatestScan() (ir.Scan, error) {
	var id string
	row := db.conn.QueryRow(`SELECT id FROM scans ORDER BY started_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		return ir.Scan{}, err
	}
	return db.LoadScan(id)
}
