package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/storage"
)

// Store is the minimal contract the API needs.
type Store interface {
	ListScans(limit, offset int) ([]storage.ScanRow, error)
	LoadScan(id string) (ir.Scan, error)
	LoadLatestScan() (ir.Scan, error)
	ListIssues(scanID, minSeverity string) ([]ir.Issue, error)

	ListWaivers(activeOnly bool) ([]storage.Waiver, error)
	CreateWaiver(ruleID, screen, path, pattern, reason, createdBy string, expires time.Time) (int64, error)
	RevokeWaiver(id int64, by string) error
}

// UserStore is the auth/audit contract the API uses.
type UserStore interface {
	GetUserByUsername(string) (storage.User, string, error)
	CreateSession(int64, string, time.Time) error
	GetSession(string) (storage.User, error)
	DeleteSession(string) error
	LogAudit(username, action, resource string, meta map[string]any) error
}

type Server struct {
	DB              Store
	UserStore       UserStore
	Logger          *slog.Logger
	SessionDuration time.Duration
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)

	// Auth
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/logout", withAuth(s, s.handleLogout, "auth:logout")).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/me", withAuth(s, s.handleMe, "me")).Methods(http.MethodGet, http.MethodOptions)

	// Scans
	api.HandleFunc("/scans", s.handleListScans).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/scans/latest", s.handleGetLatest).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/scans/{id}", s.handleGetScan).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/scans/{id}/issues", s.handleListIssues).Methods(http.MethodGet, http.MethodOptions)

	// Rules inventory
	api.HandleFunc("/rules", s.handleRules).Methods(http.MethodGet, http.MethodOptions)

	// Waivers
	api.HandleFunc("/waivers", withAuth(s, s.handleListWaivers, "waivers:list")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/waivers", withAdmin(s, s.handleCreateWaiver, "waivers:create")).Methods(http.MethodPost)
	api.HandleFunc("/waivers/{id}/revoke", withAdmin(s, s.handleRevokeWaiver, "waivers:revoke")).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := clamp(parseInt(q.Get("limit"), 20), 1, 200)
	offset := parseInt(q.Get("offset"), 0)

	rows, err := s.DB.ListScans(limit, offset)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": rows, "limit": limit, "offset": offset,
	})
}

func (s *Server) handleGetLatest(w http.ResponseWriter, r *http.Request) {
	scan, err := s.DB.LoadLatestScan()
	if err != nil {
		s.err(w, http.StatusNotFound, "no scans")
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	scan, err := s.DB.LoadScan(id)
	if err != nil {
		s.err(w, http.StatusNotFound, "scan not found")
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	min := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("min_severity")))
	if min == "" {
		min = ir.SeveritySerious
	}
	items, err := s.DB.ListIssues(id, min)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scan_id": id, "min_severity": min, "items": items,
	})
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
