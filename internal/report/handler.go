package report

import (
	"net/http"

	"github.com/learnhub-dev/learnhub/internal/config"
)

type Handler struct {
	service ReportService
}

func NewHandler(s ReportService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ExportPerformance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="performance.csv"`)

	if err := h.service.ExportPerformanceCSV(r.Context(), w); err != nil {
		// Reset the headers: nothing has been flushed when the
		// authorization or query fails.
		w.Header().Del("Content-Disposition")
		config.Error(w, err)
		return
	}
}

func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetStudentDashboard(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) InstructorDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetInstructorDashboard(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dashboard)
}
