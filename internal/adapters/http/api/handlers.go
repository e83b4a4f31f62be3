package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
)

const defaultSquadLimit = 10

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Options())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}

type parseTimeRequest struct {
	Value string `json:"value"`
}

// handleParseTime handles POST /v1/time/parse.
func (s *Server) handleParseTime(w http.ResponseWriter, r *http.Request) {
	const op = "api.parse_time"
	var req parseTimeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	parsed, err := s.deps.ParseTime(req.Value)
	if err != nil {
		s.writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, parsed)
}

// handleAssess handles POST /v1/assessments.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess"
	var sub model.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := s.deps.Assess(r.Context(), sub)
	if err != nil {
		s.writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

type batchRequest struct {
	Submissions []model.Submission `json:"submissions"`
}

// handleBatch handles POST /v1/assessments/batch. On backpressure the
// per-item result is still returned so clients can resend what was rejected.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := s.deps.SubmitBatch(r.Context(), req.Submissions)
	switch {
	case errors.Is(err, service.ErrBackpressure):
		writeJSON(w, http.StatusTooManyRequests, res)
	case err != nil:
		s.writeFailure(w, r, Wrap(op, err))
	default:
		writeJSON(w, http.StatusAccepted, res)
	}
}

// handleAthlete handles GET /v1/athletes/{athleteID}.
func (s *Server) handleAthlete(w http.ResponseWriter, r *http.Request) {
	const op = "api.athlete"
	id := strings.TrimSpace(chi.URLParam(r, "athleteID"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	view, err := s.deps.Athlete(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type squadResponse struct {
	Athletes []model.SquadEntry `json:"athletes"`
}

// handleSquad handles GET /v1/squad?limit=N.
func (s *Server) handleSquad(w http.ResponseWriter, r *http.Request) {
	const op = "api.squad"
	limit := defaultSquadLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		limit = n
	}
	entries, err := s.deps.Squad(r.Context(), limit)
	if err != nil {
		s.writeFailure(w, r, Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []model.SquadEntry{}
	}
	writeJSON(w, http.StatusOK, squadResponse{Athletes: entries})
}
