package mockapi

import (
	"log/slog"
	"net/http"
)

// Server bundles the fake API behind an http.Handler.
type Server struct {
	handler *handler
	mux     *http.ServeMux
}

// New builds an empty fake API.
func New() *Server {
	h := &handler{store: newStore(), log: slog.Default()}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login/{$}", h.handleLogin)
	mux.HandleFunc("POST /register/{$}", h.handleRegister)

	mux.HandleFunc("GET /users/me/{$}", h.authed(h.handleMe))
	mux.HandleFunc("PUT /users/me/{$}", h.authed(h.handleUpdateMe))
	mux.HandleFunc("DELETE /users/me/{$}", h.authed(h.handleDeleteMe))
	mux.HandleFunc("GET /users/search", h.authed(h.handleSearchUsers))
	mux.HandleFunc("GET /users/{id}/courtships", h.authed(h.handleUserCourtships))
	mux.HandleFunc("GET /usernames/{name}/check/{$}", h.handleCheckUsername)

	mux.HandleFunc("GET /buckets/{$}", h.authed(h.handleListBuckets))
	mux.HandleFunc("POST /buckets/{$}", h.authed(h.handleCreateBucket))
	mux.HandleFunc("PUT /buckets/{id}/{$}", h.authed(h.handleRenameBucket))
	mux.HandleFunc("DELETE /buckets/{id}/{$}", h.authed(h.handleDeleteBucket))

	mux.HandleFunc("GET /uploads/{$}", h.authed(h.handleListUploads))
	mux.HandleFunc("POST /uploads/{$}", h.authed(h.handleCreateUpload))
	mux.HandleFunc("GET /uploads/{id}/{$}", h.authed(h.handleGetUpload))
	mux.HandleFunc("PUT /uploads/{id}/{$}", h.authed(h.handleUpdateUpload))
	mux.HandleFunc("DELETE /uploads/{id}/{$}", h.authed(h.handleDeleteUpload))
	mux.HandleFunc("POST /uploads/{id}/convert/{$}", h.authed(h.handleConvertUpload))
	mux.HandleFunc("POST /storage/{$}", h.handleStoragePost)

	mux.HandleFunc("GET /comments/{$}", h.authed(h.handleListComments))
	mux.HandleFunc("POST /comments/{$}", h.authed(h.handleCreateComment))
	mux.HandleFunc("DELETE /comments/{id}/{$}", h.authed(h.handleDeleteComment))

	mux.HandleFunc("GET /courtships/requests/{$}", h.authed(h.handleListRequests))
	mux.HandleFunc("POST /courtships/requests/{$}", h.authed(h.handleCreateRequest))
	mux.HandleFunc("PUT /courtships/requests/{id}/{$}", h.authed(h.handleRespondRequest))
	mux.HandleFunc("DELETE /courtships/requests/{id}/{$}", h.authed(h.handleCancelRequest))
	mux.HandleFunc("DELETE /courtships/{id}/{$}", h.authed(h.handleDeleteCourtship))

	mux.HandleFunc("GET /feed", h.authed(h.handleFeed))

	return &Server{handler: h, mux: mux}
}

// Handler exposes the API for httptest or a real listener.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the fake API on addr until the process exits.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("mock API listening", "addr", addr)
	return (&http.Server{Addr: addr, Handler: s.mux}).ListenAndServe()
}
