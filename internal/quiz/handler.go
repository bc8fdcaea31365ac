package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	q, err := h.service.CreateQuiz(r.Context(), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "quiz created successfully",
		"quiz":    q,
	})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) GetCourseQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListCourseQuizzes(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	q, err := h.service.UpdateQuiz(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "id")
	if err := h.service.DeleteQuiz(r.Context(), quizID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz has been deleted successfully",
		"quiz_id": quizID,
	})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	question, err := h.service.AddQuestion(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "question created successfully",
		"question": question,
	})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionId"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, question)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionId")
	if err := h.service.DeleteQuestion(r.Context(), chi.URLParam(r, "id"), questionID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message":     "question has been deleted successfully",
		"question_id": questionID,
	})
}
