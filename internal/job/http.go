package job

import (
	"encoding/json"
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

type createReq struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	Status  Status `json:"status"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createReq
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.Title) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "company and title required", nil)
		return
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	if !req.Status.Valid() {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid status",
			map[string]any{"status": req.Status})
		return
	}

	app, err := s.Store.Create(r.Context(), req.Company, req.Title, req.Status)
	if err != nil {
		s.Log.Error("create application failed", zap.Error(err), zap.String("company", req.Company))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.Log.Info("application created", zap.Int("id", app.ID), zap.String("company", app.Company))
	kit.WriteJSON(w, http.StatusCreated, app)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	apps, err := s.Store.List(r.Context())
	if err != nil {
		s.Log.Error("list applications failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, apps)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}

	app, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("get application failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "application not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, app)
}
