package note

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniSuite/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

type noteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	n, err := s.Store.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		s.Log.Error("create note failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, n)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	n, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("get note failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "note not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, n)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	notes, err := s.Store.List(r.Context())
	if err != nil {
		s.Log.Error("list notes failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, notes)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	n, err := s.Store.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "note not found", map[string]any{"id": id})
			return
		}
		s.Log.Error("update note failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, n)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "note not found", map[string]any{"id": id})
			return
		}
		s.Log.Error("delete note failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (noteReq, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req noteReq
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return noteReq{}, false
	}
	if strings.TrimSpace(req.Title) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "title required", nil)
		return noteReq{}, false
	}
	return req, true
}
