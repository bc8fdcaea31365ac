package lesson

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type Handler struct {
	service LessonService
}

func NewHandler(s LessonService) *Handler {
	return &Handler{service: s}
}

// CreateLesson consumes a multipart form: the lesson fields plus the
// required "video" file.
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	videoName, video, err := media.ReadVideo(r, "video")
	if err != nil {
		config.Error(w, apperr.Validation("no video provided"))
		return
	}

	req := CreateLessonRequest{
		Title:    r.FormValue("title"),
		Duration: r.FormValue("duration"),
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	l, err := h.service.CreateLesson(r.Context(), chi.URLParam(r, "courseId"), req, videoName, video)
	if err != nil {
		log.WithError(err).Error("Failed to create lesson")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "lesson created successfully",
		"lesson":  l,
	})
}

func (h *Handler) GetLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"lessons": lessons})
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.GetLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"lesson": l})
}

func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	l, err := h.service.UpdateLesson(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "id"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateLessonVideo(w http.ResponseWriter, r *http.Request) {
	videoName, video, err := media.ReadVideo(r, "video")
	if err != nil {
		config.Error(w, apperr.Validation("no video provided"))
		return
	}

	l, err := h.service.UpdateLessonVideo(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "id"), videoName, video)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if err := h.service.DeleteLesson(r.Context(), chi.URLParam(r, "courseId"), lessonID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message":   "lesson has been deleted successfully",
		"lesson_id": lessonID,
	})
}
