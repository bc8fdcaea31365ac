package enrollment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

type Handler struct {
	service EnrollmentService
}

func NewHandler(s EnrollmentService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Enroll(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "enrolled successfully",
		"enrollment": e,
	})
}

func (h *Handler) GetUserEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.service.ListUserEnrollments(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"enrollments": enrollments})
}

func (h *Handler) GetCourseEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.service.ListCourseEnrollments(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"enrollments": enrollments})
}

func (h *Handler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEnrollment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"enrollment": e})
}

func (h *Handler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID := chi.URLParam(r, "id")
	if err := h.service.DeleteEnrollment(r.Context(), enrollmentID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message":       "enrollment has been deleted successfully",
		"enrollment_id": enrollmentID,
	})
}

func (h *Handler) SubmitQuizScore(w http.ResponseWriter, r *http.Request) {
	var req SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	score, err := h.service.SubmitQuizScore(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "quizId"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "quiz score submitted successfully",
		"result":  score,
	})
}

func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	e, err := h.service.UpdateProgress(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	e, err := h.service.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}
