package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the /courses surface. Listing and reading a course are
// public; everything else, lessons included, runs behind the session
// middleware supplied by the caller.
func Routes(h *Handler, lessons http.Handler, requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetAllCourses)
	r.Get("/{courseId}", h.GetCourse)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/", h.CreateCourse)
		r.Get("/count", h.CountCourses)
		r.Get("/instructor", h.GetInstructorCourses)
		r.Put("/{courseId}", h.UpdateCourse)
		r.Delete("/{courseId}", h.DeleteCourse)
		r.Put("/upload-image/{courseId}", h.UpdateCourseImage)
		r.Post("/{courseId}/ratings", h.RateCourse)
		r.Mount("/{courseId}/lessons", lessons)
	})
	return r
}
