package student

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

type studentReq struct {
	Name          string             `json:"name"`
	SubjectScores map[string]float64 `json:"subject_scores"`
}

func (r studentReq) validate() (string, bool) {
	if strings.TrimSpace(r.Name) == "" {
		return "name required", false
	}
	if r.SubjectScores == nil {
		return "subject_scores required", false
	}
	for subject, score := range r.SubjectScores {
		if score < 0 || score > 100 {
			return "score for " + subject + " must be between 0 and 100", false
		}
	}
	return "", true
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStudent(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg, ok := req.validate(); !ok {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	st := New(req.Name, req.SubjectScores)

	if err := s.Store.Create(r.Context(), st); err != nil {
		if errors.Is(err, ErrExists) {
			kit.WriteError(w, r, http.StatusConflict, "student already exists",
				map[string]any{"name": req.Name})
			return
		}
		s.Log.Error("create student failed", zap.Error(err), zap.String("name", req.Name))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, st)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	st, ok, err := s.Store.Get(r.Context(), name)
	if err != nil {
		s.Log.Error("get student failed", zap.Error(err), zap.String("name", name))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "student not found", map[string]any{"name": name})
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	students, err := s.Store.List(r.Context())
	if err != nil {
		s.Log.Error("list students failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, students)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	req, err := decodeStudent(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg, ok := req.validate(); !ok {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}
	if Key(req.Name) != Key(name) {
		kit.WriteError(w, r, http.StatusBadRequest, "name mismatch",
			map[string]any{"path": name, "body": req.Name})
		return
	}

	st := New(req.Name, req.SubjectScores)

	if err := s.Store.Update(r.Context(), st); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "student not found", map[string]any{"name": name})
			return
		}
		s.Log.Error("update student failed", zap.Error(err), zap.String("name", name))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, st)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.Store.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "student not found", map[string]any{"name": name})
			return
		}
		s.Log.Error("delete student failed", zap.Error(err), zap.String("name", name))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (studentReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req studentReq
	if err := dec.Decode(&req); err != nil {
		return studentReq{}, err
	}
	return req, nil
}
