package course

import (
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type CourseContainer struct {
	Repo    CourseRepository
	Service CourseService
	Handler *Handler
}

// NewCourseContainer wires the course feature. The repository is built by
// the caller because the authorization layer shares it.
func NewCourseContainer(repo CourseRepository, uploader media.Uploader, access *authz.CourseAccess, lessons MediaRefLister) *CourseContainer {
	service := NewService(repo, uploader, access, lessons)
	handler := NewHandler(service)

	return &CourseContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
