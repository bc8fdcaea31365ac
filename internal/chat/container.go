package chat

import (
	"context"

	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/media"
)

type ChatContainer struct {
	Repo    ChatRepository
	Service ChatService
	Handler *Handler
}

func NewChatContainer(ctx context.Context, db *gorm.DB, uploader media.Uploader) (*ChatContainer, error) {
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(db)
	service := NewService(repo, provider, uploader)
	handler := NewHandler(service)

	return &ChatContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}, nil
}
