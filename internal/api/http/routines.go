package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/metrics"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/respond"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/validate"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/filter"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/services"
)

// RoutineHandler is the HTTP transport over RoutineService.
type RoutineHandler struct {
	svc *services.RoutineService
	log zerolog.Logger
}

func NewRoutineHandler(svc *services.RoutineService, log zerolog.Logger) *RoutineHandler {
	return &RoutineHandler{svc: svc, log: log}
}

// writeServiceError maps service errors onto status codes. Anything that is
// neither a validation nor a not-found error is a storage failure.
func (h *RoutineHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := model.AsValidationError(err); ok {
		metrics.TrackError("validation")
		respond.WriteValidationError(w, fields)
		return
	}
	if errors.Is(err, model.ErrNotFound) {
		metrics.TrackError("not_found")
		respond.WriteNotFound(w, "routine not found")
		return
	}
	metrics.TrackError("storage")
	h.log.Error().Stack().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("routine storage operation failed")
	respond.WriteInternalError(w, "internal server error")
}

// criteria reads the optional frequencyType, q and active query parameters.
func criteria(r *http.Request) (filter.Criteria, model.FieldErrors) {
	q := r.URL.Query()
	var errs model.FieldErrors
	c := filter.Criteria{Query: q.Get("q")}

	freq, err := filter.ParseFrequency(q.Get("frequencyType"))
	if err != nil {
		errs = append(errs, model.FieldError{Field: "frequencyType", Message: "must be one of: all, second, minute, hour"})
	}
	c.Frequency = freq

	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "active", Message: "must be a boolean"})
		}
		c.ActiveOnly = active
	}
	return c, errs
}

// ListRoutines GET /api/routines
func (h *RoutineHandler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	c, errs := criteria(r)
	if len(errs) > 0 {
		respond.WriteValidationError(w, errs)
		return
	}
	rs, err := h.svc.List(r.Context(), c)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rs)
}

// GetRoutine GET /api/routines/{id}
func (h *RoutineHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	rt, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rt)
}

// decodeRoutine reads a candidate and runs rules against it. A body that is
// not JSON short-circuits; type mismatches are reported with the rule errors.
func decodeRoutine(r *http.Request, rules func(model.RoutineInput) model.FieldErrors) (model.RoutineInput, model.FieldErrors) {
	var in model.RoutineInput
	decodeErrs := validate.DecodeInput(r.Body, &in)
	if decodeErrs.Has("body") {
		return in, decodeErrs
	}
	return in, validate.Merge(decodeErrs, rules(in))
}

// CreateRoutine POST /api/routines
func (h *RoutineHandler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	in, errs := decodeRoutine(r, validate.Strict)
	if len(errs) > 0 {
		metrics.TrackError("validation")
		respond.WriteValidationError(w, errs)
		return
	}
	rt, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	metrics.TrackRoutineOperation("create")
	respond.WriteJSON(w, http.StatusCreated, rt)
}

// UpdateRoutine PATCH /api/routines/{id}
func (h *RoutineHandler) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	in, errs := decodeRoutine(r, validate.Partial)
	if len(errs) > 0 {
		metrics.TrackError("validation")
		respond.WriteValidationError(w, errs)
		return
	}
	rt, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	metrics.TrackRoutineOperation("update")
	respond.WriteJSON(w, http.StatusOK, rt)
}

// UpdateRoutineStatus PATCH /api/routines/{id}/status
func (h *RoutineHandler) UpdateRoutineStatus(w http.ResponseWriter, r *http.Request) {
	var in validate.StatusInput
	errs := validate.DecodeInput(r.Body, &in)
	if !errs.Has("body") {
		errs = validate.Merge(errs, validate.Status(in))
	}
	if len(errs) > 0 {
		metrics.TrackError("validation")
		respond.WriteValidationError(w, errs)
		return
	}
	rt, err := h.svc.UpdateStatus(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	metrics.TrackRoutineOperation("status")
	respond.WriteJSON(w, http.StatusOK, rt)
}

// DeleteRoutine DELETE /api/routines/{id}
func (h *RoutineHandler) DeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	metrics.TrackRoutineOperation("delete")
	respond.WriteNoContent(w)
}

// GetStats GET /api/routines/stats
func (h *RoutineHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}

// GetTimeline GET /api/timeline
func (h *RoutineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	c, errs := criteria(r)
	if len(errs) > 0 {
		respond.WriteValidationError(w, errs)
		return
	}
	chart, err := h.svc.Timeline(r.Context(), c)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, chart)
}
