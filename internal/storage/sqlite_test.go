package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ykit/a11ylint/internal/ir"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())
	return db
}

func sampleScan(id string) *ir.Scan {
	return &ir.Scan{
		ID:            id,
		StartedAt:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Source:        "./snapshots",
		SchemaVersion: ir.SchemaVersion,
		Context:       ir.Context{Platform: "ios", SeverityThreshold: "SERIOUS"},
		Screens: []ir.Screen{{Name: "Home", Elements: []ir.Element{
			{Path: "Button[0]", Type: "pressable", Width: 30, Height: 30},
		}}},
		Issues: []ir.Issue{
			{ID: id + "-1", Screen: "Home", Path: "Button[0]", RuleID: "NO_ACCESSIBILITY_LABEL", Severity: "CRITICAL", Message: "no label"},
			{ID: id + "-2", Screen: "Home", Path: "Button[0]", RuleID: "MINIMUM_SIZE", Severity: "SERIOUS", Message: "too small", Evidence: "30x30 below 44x44 minimum"},
		},
	}
}

func TestSaveAndLoadScan(t *testing.T) {
	db := openTestDB(t)
	in := sampleScan("scan-1")
	require.NoError(t, db.SaveScan(in))

	out, err := db.LoadScan("scan-1")
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Context.Platform, out.Context.Platform)
	require.Len(t, out.Screens, 1)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "NO_ACCESSIBILITY_LABEL", out.Issues[0].RuleID)
}

func TestSaveScan_UpsertReplacesIssues(t *testing.T) {
	db := openTestDB(t)
	scan := sampleScan("scan-1")
	require.NoError(t, db.SaveScan(scan))

	scan.Issues = scan.Issues[:1]
	require.NoError(t, db.SaveScan(scan))

	issues, err := db.ListIssues("scan-1", "SERIOUS")
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestLoadScan_Missing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadScan("nope")
	assert.Error(t, err)
}

func TestLoadLatestScan(t *testing.T) {
	db := openTestDB(t)
	older := sampleScan("scan-old")
	newer := sampleScan("scan-new")
	newer.StartedAt = older.StartedAt.Add(time.Hour)
	require.NoError(t, db.SaveScan(older))
	require.NoError(t, db.SaveScan(newer))

	latest, err := db.LoadLatestScan()
	require.NoError(t, err)
	assert.Equal(t, "scan-new", latest.ID)
}

func TestListScans(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveScan(sampleScan("scan-1")))

	rows, err := db.ListScans(10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "scan-1", rows[0].ID)
	assert.Equal(t, 2, rows[0].Issues)
	assert.False(t, rows[0].StartedAt.IsZero())
}

func TestListIssues_SeverityFilterAndOrder(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveScan(sampleScan("scan-1")))

	all, err := db.ListIssues("scan-1", "SERIOUS")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "CRITICAL", all[0].Severity)

	crit, err := db.ListIssues("scan-1", "CRITICAL")
	require.NoError(t, err)
	require.Len(t, crit, 1)
	assert.Equal(t, "NO_ACCESSIBILITY_LABEL", crit[0].RuleID)
}

func TestHasScan(t *testing.T) {
	db := openTestDB(t)
	ok, err := db.HasScan("scan-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.SaveScan(sampleScan("scan-1")))
	ok, err = db.HasScan("scan-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsersAndSessions(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateUser("alice", "hash", "admin")
	require.NoError(t, err)

	u, hash, err := db.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "admin", u.Role)
	assert.Equal(t, "hash", hash)

	// duplicate username rejected
	_, err = db.CreateUser("alice", "hash2", "viewer")
	assert.Error(t, err)

	require.NoError(t, db.CreateSession(id, "tok", time.Now().Add(time.Hour)))
	su, err := db.GetSession("tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", su.Username)

	require.NoError(t, db.DeleteSession("tok"))
	_, err = db.GetSession("tok")
	assert.Error(t, err)
}

func TestSession_ExpiredRejected(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateUser("bob", "hash", "viewer")
	require.NoError(t, err)

	require.NoError(t, db.CreateSession(id, "old", time.Now().Add(-time.Minute)))
	_, err = db.GetSession("old")
	assert.Error(t, err)
}

func TestWaiverLifecycle(t *testing.T) {
	db := openTestDB(t)
	exp := time.Now().Add(24 * time.Hour)
	id, err := db.CreateWaiver("MINIMUM_SIZE", "Home", "", "", "known small icon", "alice", exp)
	require.NoError(t, err)

	active, err := db.ListWaivers(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "MINIMUM_SIZE", active[0].RuleID)
	assert.Equal(t, "Home", active[0].Screen)
	assert.Nil(t, active[0].RevokedAt)

	require.NoError(t, db.RevokeWaiver(id, "alice"))
	active, err = db.ListWaivers(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := db.ListWaivers(false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].RevokedAt)
}

func TestExpiredWaiverNotActive(t *testing.T) {
	db := openTestDB(t)
	_, err := db.CreateWaiver("MINIMUM_SIZE", "", "", "", "was temporary", "alice", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	active, err := db.ListWaivers(true)
	require.NoError(t, err)
	assert.Empty(t, active)
}
