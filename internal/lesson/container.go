package lesson

import (
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type LessonContainer struct {
	Repo    LessonRepository
	Service LessonService
	Handler *Handler
}

// NewLessonContainer wires the lesson feature. The repository is built by
// the caller because the course feature lists lesson media through it.
func NewLessonContainer(repo LessonRepository, courses authz.CourseResolver, uploader media.Uploader, access *authz.CourseAccess) *LessonContainer {
	service := NewService(repo, courses, uploader, access)
	handler := NewHandler(service)

	return &LessonContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
