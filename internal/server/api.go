package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/cache"
	"github.com/desertthunder/steamdex/internal/shared"
)

// AppHandler serves read-only JSON views of the catalog cache.
type AppHandler struct {
	cache  *cache.Cache
	logger *log.Logger
}

// NewAppHandler creates an AppHandler over an initialized cache.
func NewAppHandler(c *cache.Cache, logger *log.Logger) *AppHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AppHandler{cache: c, logger: logger}
}

// Routes implements [Handler].
func (h *AppHandler) Routes() []string {
	return []string{"/api/search", "/api/apps/", "/api/sync/runs"}
}

// ServeHTTP dispatches the api routes. All endpoints are GET only.
func (h *AppHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch {
	case r.URL.Path == "/api/search":
		h.search(w, r)
	case r.URL.Path == "/api/sync/runs":
		h.syncRuns(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/apps/"):
		h.apps(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *AppHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	records, err := h.cache.SearchByName(query)
	if err != nil {
		h.logger.Errorf("search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *AppHandler) syncRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.cache.SyncHistory()
	if err != nil {
		h.logger.Errorf("failed to load sync history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load sync history")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// apps handles /api/apps/{id}, /api/apps/{id}/achievements, and
// /api/apps/{id}/dlc.
func (h *AppHandler) apps(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/apps/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}

	record, err := h.cache.FindByID(id)
	if err != nil {
		h.logger.Errorf("lookup failed for app %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "app not cached")
		return
	}

	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, record)
		return
	}

	switch parts[1] {
	case "achievements":
		definitions, err := h.cache.Achievements(r.Context(), record)
		if err != nil {
			h.logger.Errorf("achievement fetch failed for app %d: %v", id, err)
			writeError(w, http.StatusBadGateway, "achievement fetch failed")
			return
		}
		writeJSON(w, http.StatusOK, definitions)

	case "dlc":
		useSecondary := r.URL.Query().Get("steamdb") == "1"
		entries, err := h.cache.Dlc(r.Context(), record, useSecondary)
		if err != nil {
			h.logger.Errorf("dlc reconciliation failed for app %d: %v", id, err)
			writeError(w, http.StatusBadGateway, "dlc reconciliation failed")
			return
		}
		writeJSON(w, http.StatusOK, entries)

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
