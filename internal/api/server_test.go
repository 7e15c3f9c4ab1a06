package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/security"
	"github.com/a11ykit/a11ylint/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.DB, http.Handler) {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())

	s := &Server{
		DB:              db,
		UserStore:       db,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		SessionDuration: time.Hour,
	}
	return s, db, s.Routes()
}

func addUser(t *testing.T, db *storage.DB, username, password, role string) {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	_, err = db.CreateUser(username, hash, role)
	require.NoError(t, err)
}

func login(t *testing.T, h http.Handler, username, password string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func doJSON(t *testing.T, h http.Handler, method, url string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, url, r)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	_, _, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestCORSPreflight(t *testing.T) {
	_, _, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRulesInventory(t *testing.T) {
	_, _, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/rules", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Items), resp.Count)
	assert.NotEmpty(t, resp.Items)
}

func TestScansEndpoints(t *testing.T) {
	_, db, h := newTestServer(t)
	scan := &ir.Scan{
		ID:            "scan-1",
		StartedAt:     time.Now().UTC(),
		SchemaVersion: ir.SchemaVersion,
		Screens:       []ir.Screen{{Name: "Home"}},
		Issues: []ir.Issue{
			{ID: "scan-1-1", Screen: "Home", Path: "Button[0]", RuleID: "NO_ACCESSIBILITY_LABEL", Severity: "CRITICAL", Message: "no label"},
			{ID: "scan-1-2", Screen: "Home", Path: "Button[0]", RuleID: "MINIMUM_SIZE", Severity: "SERIOUS", Message: "too small"},
		},
	}
	require.NoError(t, db.SaveScan(scan))

	rec := doJSON(t, h, http.MethodGet, "/api/v1/scans", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scan-1")

	rec = doJSON(t, h, http.MethodGet, "/api/v1/scans/latest", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/scans/scan-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/scans/absent", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/scans/scan-1/issues?min_severity=CRITICAL", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var issues struct {
		Items []ir.Issue `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issues))
	require.Len(t, issues.Items, 1)
	assert.Equal(t, "NO_ACCESSIBILITY_LABEL", issues.Items[0].RuleID)
}

func TestLoginAndMe(t *testing.T) {
	_, db, h := newTestServer(t)
	addUser(t, db, "alice", "s3cret", "admin")

	// wrong password
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := login(t, h, "alice", "s3cret")

	rec = doJSON(t, h, http.MethodGet, "/api/v1/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	// no cookie
	rec = doJSON(t, h, http.MethodGet, "/api/v1/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	_, db, h := newTestServer(t)
	addUser(t, db, "alice", "s3cret", "viewer")
	cookie := login(t, h, "alice", "s3cret")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWaivers_AdminGated(t *testing.T) {
	_, db, h := newTestServer(t)
	addUser(t, db, "admin", "s3cret", "admin")
	addUser(t, db, "viewer", "s3cret", "viewer")
	adminCk := login(t, h, "admin", "s3cret")
	viewerCk := login(t, h, "viewer", "s3cret")

	body := map[string]any{
		"rule_id":    "MINIMUM_SIZE",
		"screen":     "Home",
		"reason":     "known small icon",
		"expires_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}

	// anonymous and viewer cannot create
	rec := doJSON(t, h, http.MethodPost, "/api/v1/waivers", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/waivers", body, viewerCk)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/waivers", body, adminCk)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// viewer can list
	rec = doJSON(t, h, http.MethodGet, "/api/v1/waivers", nil, viewerCk)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MINIMUM_SIZE")

	// revoke is admin-only
	rec = doJSON(t, h, http.MethodPost, "/api/v1/waivers/1/revoke", nil, viewerCk)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/waivers/1/revoke", nil, adminCk)
	require.Equal(t, http.StatusOK, rec.Code)

	waivers, err := db.ListWaivers(true)
	require.NoError(t, err)
	assert.Empty(t, waivers)
}
