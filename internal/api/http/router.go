package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the routine API under /api on r and returns the /api
// subrouter so callers can attach API-only middleware. The stats route is
// registered before {id} so it is not captured as an id.
func RegisterRoutes(r *mux.Router, routines *RoutineHandler, health *HealthHandler) *mux.Router {
	api := r.PathPrefix("/api").Subrouter()

	if routines != nil {
		api.HandleFunc("/routines", routines.ListRoutines).Methods(http.MethodGet)
		api.HandleFunc("/routines", routines.CreateRoutine).Methods(http.MethodPost)
		api.HandleFunc("/routines/stats", routines.GetStats).Methods(http.MethodGet)
		api.HandleFunc("/routines/{id}", routines.GetRoutine).Methods(http.MethodGet)
		api.HandleFunc("/routines/{id}", routines.UpdateRoutine).Methods(http.MethodPatch)
		api.HandleFunc("/routines/{id}", routines.DeleteRoutine).Methods(http.MethodDelete)
		api.HandleFunc("/routines/{id}/status", routines.UpdateRoutineStatus).Methods(http.MethodPatch)
		api.HandleFunc("/timeline", routines.GetTimeline).Methods(http.MethodGet)
	}

	if health != nil {
		api.HandleFunc("/health", health.CheckHealth).Methods(http.MethodGet)
	}
	return api
}
