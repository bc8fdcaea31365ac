package quiz

import (
	"github.com/learnhub-dev/learnhub/internal/authz"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

// NewQuizContainer wires the quiz feature. The repository is built by the
// caller because score submission and reporting read through it.
func NewQuizContainer(repo QuizRepository, courses authz.CourseResolver, access *authz.CourseAccess) *QuizContainer {
	service := NewService(repo, courses, access)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
