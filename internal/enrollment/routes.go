package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the authenticated /enrollments surface.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/courses/{courseId}", h.Enroll)
	r.Get("/user", h.GetUserEnrollments)
	r.Get("/courses/{courseId}", h.GetCourseEnrollments)
	r.Get("/{id}", h.GetEnrollment)
	r.Delete("/{id}", h.DeleteEnrollment)
	r.Post("/{id}/quizzes/{quizId}/score", h.SubmitQuizScore)
	r.Put("/{id}/progress", h.UpdateProgress)
	r.Put("/{id}/payment-status", h.UpdatePaymentStatus)
	return r
}
