package enrollment

import (
	"github.com/learnhub-dev/learnhub/internal/authz"
)

type EnrollmentContainer struct {
	Repo    EnrollmentRepository
	Service EnrollmentService
	Handler *Handler
}

// NewEnrollmentContainer wires the enrollment feature. The repository is
// built by the caller because the authorization layer checks paid
// enrollments through it.
func NewEnrollmentContainer(repo EnrollmentRepository, courses authz.CourseResolver, quizzes QuizResolver) *EnrollmentContainer {
	service := NewService(repo, courses, quizzes)
	handler := NewHandler(service)

	return &EnrollmentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
