// Package server exposes the save store over HTTP: list, fetch-by-key, and
// store endpoints plus a ping for health checks.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cbbgm/cbbgm/internal/store"
)

// Server holds the handler dependencies.
type Server struct {
	backend store.Backend
	log     *zap.Logger
}

// New creates a Server over the given backend.
func New(backend store.Backend, log *zap.Logger) *Server {
	return &Server{backend: backend, log: log}
}

// saveEntry is the wire form of one listing row. UpdatedAt is unix
// milliseconds, matching what save clients expect.
type saveEntry struct {
	Key       string `json:"key"`
	Size      int    `json:"size"`
	UpdatedAt int64  `json:"updatedAt"`
}

type putRequest struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/ping", s.handlePing).Methods(http.MethodGet)
	r.HandleFunc("/api/saves", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/saves/get", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/saves/put", s.handlePut).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"runtime": runtime.Version(),
		"backend": s.backend.Name(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.List(r.Context())
	if err != nil {
		s.log.Error("list saves failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]saveEntry, len(entries))
	for i, e := range entries {
		out[i] = saveEntry{Key: e.Key, Size: e.Size, UpdatedAt: e.UpdatedAt.UnixMilli()}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key")
		return
	}
	rec, err := s.backend.Get(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.log.Error("get save failed", zap.String("key", key), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": rec.Key, "data": rec.Data})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" || req.Data == "" {
		respondError(w, http.StatusBadRequest, "missing key or data")
		return
	}
	if err := s.backend.Put(r.Context(), req.Key, req.Data); err != nil {
		s.log.Error("put save failed", zap.String("key", req.Key), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("save stored", zap.String("key", req.Key), zap.Int("size", len(req.Data)))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
