package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the authenticated /reports surface.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/export/performance", h.ExportPerformance)
	return r
}

// DashboardRoutes serves the authenticated /users/dashboard surface.
func DashboardRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/performance", h.StudentDashboard)
	r.Get("/instructor", h.InstructorDashboard)
	return r
}
