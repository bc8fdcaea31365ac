package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type Handler struct {
	service CourseService
}

func NewHandler(s CourseService) *Handler {
	return &Handler{service: s}
}

// CreateCourse consumes a multipart form: the course fields plus the
// required "image" file.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	imageName, image, err := media.ReadImage(r, "image")
	if err != nil {
		config.Error(w, apperr.Validation("no image provided"))
		return
	}

	req, err := courseRequestFromForm(r)
	if err != nil {
		config.Error(w, err)
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	c, err := h.service.CreateCourse(r.Context(), req, imageName, image)
	if err != nil {
		log.WithError(err).Error("Failed to create course")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "course created successfully",
		"course":  c,
	})
}

func (h *Handler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *Handler) GetInstructorCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListInstructorCourses(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"course": c})
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	c, err := h.service.UpdateCourse(r.Context(), chi.URLParam(r, "courseId"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCourseImage(w http.ResponseWriter, r *http.Request) {
	imageName, image, err := media.ReadImage(r, "image")
	if err != nil {
		config.Error(w, apperr.Validation("no image provided"))
		return
	}

	c, err := h.service.UpdateCourseImage(r.Context(), chi.URLParam(r, "courseId"), imageName, image)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message":   "course has been deleted successfully",
		"course_id": courseID,
	})
}

func (h *Handler) CountCourses(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountCourses(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) RateCourse(w http.ResponseWriter, r *http.Request) {
	var req RateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	c, err := h.service.RateCourse(r.Context(), chi.URLParam(r, "courseId"), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func courseRequestFromForm(r *http.Request) (CreateCourseRequest, error) {
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return CreateCourseRequest{}, apperr.Validation("course's price must be a number")
	}
	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil {
		return CreateCourseRequest{}, apperr.Validation("course's duration must be a number")
	}

	return CreateCourseRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
		Duration:    duration,
	}, nil
}
