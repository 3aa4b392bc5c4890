package http

import (
	"errors"
	"net/http"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

type stormList struct {
	Storms []domain.Storm `json:"storms"`
	Count  int            `json:"count"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleListStorms(w http.ResponseWriter, r *http.Request) {
	storms, err := s.svc.ListActiveStorms(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, stormList{Storms: storms, Count: len(storms)})
}

func (s *Server) handleListNearStorms(w http.ResponseWriter, r *http.Request) {
	storms, err := s.svc.ListStormsNearRegion(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, stormList{Storms: storms, Count: len(storms)})
}

func (s *Server) handleStormDetails(w http.ResponseWriter, r *http.Request) {
	storm, err := s.svc.GetStormDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, storm)
}

func (s *Server) handleEnsemble(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.ComputeEnsemble(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

func (s *Server) handleSpaghetti(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.ComputeSpaghetti(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.GetStormImpactByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.svc.ListForecastModelMetadata())
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearCache()
	s.respond(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("api request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	s.respond(w, r, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidStormID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStormNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoData):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := s.format.write(w, r, status, data); err != nil {
		s.logger.Error("write response failed", "path", r.URL.Path, "error", err)
	}
}
