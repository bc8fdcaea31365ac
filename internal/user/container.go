package user

import (
	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/mailer"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, uploader media.Uploader, mail mailer.Mailer) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, uploader, mail)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
