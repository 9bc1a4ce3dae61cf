package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
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

type contactReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r contactReq) validate() (string, bool) {
	if strings.TrimSpace(r.Name) == "" {
		return "name required", false
	}
	if !ValidEmail(r.Email) {
		return "invalid email address", false
	}
	return "", true
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeContact(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg, ok := req.validate(); !ok {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	c, err := s.Store.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		s.Log.Error("create contact failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}

	c, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("get contact failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "contact not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name query parameter required", nil)
		return
	}

	matches, err := s.Store.Search(r.Context(), query)
	if err != nil {
		s.Log.Error("search contacts failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, matches)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}

	req, err := decodeContact(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg, ok := req.validate(); !ok {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	c := Contact{ID: id, Name: req.Name, Email: req.Email}

	if err := s.Store.Update(r.Context(), c); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "contact not found", map[string]any{"id": id})
			return
		}
		s.Log.Error("update contact failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "contact not found", map[string]any{"id": id})
			return
		}
		s.Log.Error("delete contact failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func contactID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "id must be a positive integer",
			map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func decodeContact(w http.ResponseWriter, r *http.Request) (contactReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req contactReq
	if err := dec.Decode(&req); err != nil {
		return contactReq{}, err
	}
	return req, nil
}
