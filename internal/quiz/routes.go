package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the authenticated /quizzes surface, questions nested under
// their quiz.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateQuiz)
	r.Get("/course/{courseId}", h.GetCourseQuizzes)
	r.Get("/{id}", h.GetQuiz)
	r.Put("/{id}", h.UpdateQuiz)
	r.Delete("/{id}", h.DeleteQuiz)

	r.Post("/{id}/questions", h.AddQuestion)
	r.Get("/{id}/questions", h.GetQuestions)
	r.Put("/{id}/questions/{questionId}", h.UpdateQuestion)
	r.Delete("/{id}/questions/{questionId}", h.DeleteQuestion)
	return r
}
