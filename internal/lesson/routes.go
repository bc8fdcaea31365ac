package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the lesson surface nested under a course. All routes
// require authentication; reads additionally require course access.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateLesson)
	r.Get("/", h.GetLessons)
	r.Get("/{id}", h.GetLesson)
	r.Put("/{id}", h.UpdateLesson)
	r.Delete("/{id}", h.DeleteLesson)
	r.Put("/upload-video/{id}", h.UpdateLessonVideo)
	return r
}
