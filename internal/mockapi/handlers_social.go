package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

func (h *handler) handleListRequests(w http.ResponseWriter, r *http.Request, viewer *account) {
	dir := models.Direction(r.URL.Query().Get("dir"))
	if dir != models.DirectionIn && dir != models.DirectionOut {
		h.writeError(w, http.StatusBadRequest, "dir must be in or out")
		return
	}

	h.store.mu.RLock()
	requests := []models.Courtship{}
	for _, id := range sortedIDs(h.store.requests) {
		req := h.store.requests[id]
		var otherID int
		switch {
		case dir == models.DirectionIn && req.ToID == viewer.ID:
			otherID = req.FromID
		case dir == models.DirectionOut && req.FromID == viewer.ID:
			otherID = req.ToID
		default:
			continue
		}
		entry := models.Courtship{ID: req.ID, Type: req.Type, Dir: dir}
		if other, ok := h.store.accounts[otherID]; ok {
			user := h.store.renderUserLocked(other, 0)
			entry.User = &user
		}
		requests = append(requests, entry)
	}
	h.store.mu.RUnlock()

	h.writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *handler) handleCreateRequest(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		UserID int                  `json:"user_id"`
		Type   models.CourtshipType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || !payload.Type.Pending() {
		h.writeError(w, http.StatusBadRequest, "user_id and a request type required")
		return
	}
	if payload.UserID == viewer.ID {
		h.writeError(w, http.StatusBadRequest, "cannot court yourself")
		return
	}

	h.store.mu.Lock()
	if _, ok := h.store.accounts[payload.UserID]; !ok {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	// A pending request and an accepted courtship are mutually exclusive
	// per user pair.
	if role, _ := h.store.relationBetweenLocked(viewer.ID, payload.UserID); role != "" {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusBadRequest, "courtship already exists")
		return
	}
	for _, req := range h.store.requests {
		if (req.FromID == viewer.ID && req.ToID == payload.UserID) ||
			(req.FromID == payload.UserID && req.ToID == viewer.ID) {
			h.store.mu.Unlock()
			h.writeError(w, http.StatusBadRequest, "request already pending")
			return
		}
	}
	req := &requestRec{
		ID:     h.store.nextIDLocked(),
		FromID: viewer.ID,
		ToID:   payload.UserID,
		Type:   payload.Type,
	}
	h.store.requests[req.ID] = req
	out := models.Courtship{ID: req.ID, Type: req.Type, Dir: models.DirectionOut}
	if other, ok := h.store.accounts[req.ToID]; ok {
		user := h.store.renderUserLocked(other, 0)
		out.User = &user
	}
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusCreated, out)
}

// handleRespondRequest accepts or declines an incoming request. Accepting
// replaces the request with a courtship; declining just removes it.
func (h *handler) handleRespondRequest(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed request payload")
		return
	}
	if payload.Status != "accept" && payload.Status != "decline" {
		h.writeError(w, http.StatusBadRequest, "status must be accept or decline")
		return
	}

	h.store.mu.Lock()
	req, ok := h.store.requests[pathID(r)]
	if !ok || req.ToID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "request not found")
		return
	}
	delete(h.store.requests, req.ID)
	if payload.Status == "accept" {
		c := &courtshipRec{
			ID:          h.store.nextIDLocked(),
			RequesterID: req.FromID,
			TargetID:    req.ToID,
			Role:        req.Type.Role(),
		}
		h.store.courtships[c.ID] = c
	}
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// handleCancelRequest withdraws an outgoing request.
func (h *handler) handleCancelRequest(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	req, ok := h.store.requests[pathID(r)]
	if !ok || req.FromID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "request not found")
		return
	}
	delete(h.store.requests, req.ID)
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUserCourtships(w http.ResponseWriter, r *http.Request, viewer *account) {
	userID := pathID(r)

	h.store.mu.RLock()
	_, exists := h.store.accounts[userID]
	courtships := []models.Courtship{}
	if exists {
		for _, id := range sortedIDs(h.store.courtships) {
			c := h.store.courtships[id]
			var otherID int
			var role models.CourtshipType
			switch userID {
			case c.RequesterID:
				otherID, role = c.TargetID, c.Role
			case c.TargetID:
				otherID, role = c.RequesterID, inverseRole(c.Role)
			default:
				continue
			}
			entry := models.Courtship{ID: c.ID, Type: role}
			if other, ok := h.store.accounts[otherID]; ok {
				user := h.store.renderUserLocked(other, 0)
				entry.User = &user
			}
			courtships = append(courtships, entry)
		}
	}
	h.store.mu.RUnlock()

	if !exists {
		h.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"courtships": courtships})
}

func (h *handler) handleDeleteCourtship(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	c, ok := h.store.courtships[pathID(r)]
	if !ok || (c.RequesterID != viewer.ID && c.TargetID != viewer.ID) {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "courtship not found")
		return
	}
	delete(h.store.courtships, c.ID)
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleSearchUsers(w http.ResponseWriter, r *http.Request, viewer *account) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	needle := strings.ToLower(query)

	h.store.mu.RLock()
	matches := []models.User{}
	for _, id := range sortedIDs(h.store.accounts) {
		acct := h.store.accounts[id]
		if strings.Contains(strings.ToLower(acct.Username), needle) ||
			strings.Contains(strings.ToLower(acct.DisplayName), needle) {
			matches = append(matches, h.store.renderUserLocked(acct, viewer.ID))
		}
	}
	h.store.mu.RUnlock()

	h.writeJSON(w, http.StatusOK, map[string]any{"users": paginate(matches, page(r))})
}

// handleFeed lists courtship partners' uploads the viewer may see, newest
// first.
func (h *handler) handleFeed(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.RLock()
	feed := []models.Upload{}
	ids := sortedIDs(h.store.uploads)
	for i := len(ids) - 1; i >= 0; i-- {
		up := h.store.uploads[ids[i]]
		if up.OwnerID == viewer.ID || !up.StreamReady {
			continue
		}
		if relation, _ := h.store.relationBetweenLocked(viewer.ID, up.OwnerID); relation == "" {
			// Feed only surfaces uploads from users the viewer is in a
			// courtship with, and visibility still applies on top.
			continue
		}
		if h.store.canViewLocked(viewer.ID, up) {
			feed = append(feed, renderUpload(up))
		}
	}
	h.store.mu.RUnlock()

	h.writeJSON(w, http.StatusOK, map[string]any{"uploads": paginate(feed, page(r))})
}
