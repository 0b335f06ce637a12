package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const pageSize = 10

type handler struct {
	store *store
	log   *slog.Logger
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// authed wraps a handler with bearer-token authentication.
func (h *handler) authed(next func(w http.ResponseWriter, r *http.Request, viewer *account)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		acct, ok := h.store.accountByToken(token)
		if !ok {
			h.writeError(w, http.StatusUnauthorized, "session expired")
			return
		}
		next(w, r, acct)
	}
}

// pathID parses the {id} path segment; -1 means malformed.
func pathID(r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return -1
	}
	return id
}

// page parses the 1-based page query parameter, defaulting to 1.
func page(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// paginate slices one page out of a full result list.
func paginate[T any](items []T, p int) []T {
	start := (p - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
