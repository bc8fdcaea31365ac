package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type ChatService interface {
	CreateChat(ctx context.Context, req CreateChatRequest) (*Chat, error)
	ListChats(ctx context.Context) ([]*Chat, error)
	GetChat(ctx context.Context, id string) (*Chat, error)
	Ask(ctx context.Context, id string, req AskRequest, imageName string, image []byte) (*AskResponse, error)
	DeleteChat(ctx context.Context, id string) error
}

type chatService struct {
	repo     ChatRepository
	provider Provider
	uploader media.Uploader
}

func NewService(repo ChatRepository, provider Provider, uploader media.Uploader) ChatService {
	return &chatService{
		repo:     repo,
		provider: provider,
		uploader: uploader,
	}
}

func (s *chatService) CreateChat(ctx context.Context, req CreateChatRequest) (*Chat, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c := &Chat{
		ID:     uuid.New(),
		Title:  req.Title,
		UserID: actor.ID,
	}
	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Failed to create chat")
		return nil, err
	}
	return c, nil
}

func (s *chatService) ListChats(ctx context.Context) ([]*Chat, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUser(actor.ID)
}

func (s *chatService) GetChat(ctx context.Context, id string) (*Chat, error) {
	_, c, err := s.resolveOwnedChat(ctx, id)
	return c, err
}

// Ask stores the student's message, asks the model with the recent history,
// and stores the answer. An attached image is pushed to the media host and
// referenced in the prompt by its description.
func (s *chatService) Ask(ctx context.Context, id string, req AskRequest, imageName string, image []byte) (*AskResponse, error) {
	log := config.WithContext(ctx)

	_, c, err := s.resolveOwnedChat(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.FindMessages(c.ID)
	if err != nil {
		return nil, err
	}

	question := &Message{
		ID:      uuid.New(),
		ChatID:  c.ID,
		Sender:  SenderUser,
		Content: req.Message,
	}

	imageDescription := ""
	if len(image) > 0 {
		asset, err := s.uploader.Upload(ctx, imageName, image)
		if err != nil {
			return nil, err
		}
		question.ImageURL = asset.URL
		question.ImagePublicID = asset.PublicID
		imageDescription = imageName + " (" + asset.URL + ")"
	}

	if err := s.repo.CreateMessage(question); err != nil {
		log.WithError(err).Error("Failed to store chat message")
		return nil, err
	}

	answerText, err := s.provider.SendPrompt(ctx, systemPrompt, buildUserPrompt(history, req.Message, imageDescription))
	if err != nil {
		return nil, err
	}

	answer := &Message{
		ID:      uuid.New(),
		ChatID:  c.ID,
		Sender:  SenderAssistant,
		Content: answerText,
	}
	if err := s.repo.CreateMessage(answer); err != nil {
		log.WithError(err).Error("Failed to store assistant answer")
		return nil, err
	}

	return &AskResponse{Question: question, Answer: answer}, nil
}

func (s *chatService) DeleteChat(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	_, c, err := s.resolveOwnedChat(ctx, id)
	if err != nil {
		return err
	}

	messages, err := s.repo.FindMessages(c.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(c.ID); err != nil {
		log.WithError(err).Error("Failed to delete chat")
		return err
	}

	for _, m := range messages {
		if m.ImagePublicID == "" {
			continue
		}
		if err := s.uploader.Remove(ctx, m.ImagePublicID); err != nil {
			log.WithError(err).Warn("Failed to release image for deleted chat")
		}
	}
	return nil
}

// resolveOwnedChat gates every chat operation: conversations are private to
// their owner, admins included.
func (s *chatService) resolveOwnedChat(ctx context.Context, id string) (authz.Actor, *Chat, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	chatID, err := uuid.Parse(id)
	if err != nil {
		return authz.Actor{}, nil, apperr.Validation("invalid chat id")
	}
	c, err := s.repo.FindByID(chatID)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	if c == nil {
		return authz.Actor{}, nil, apperr.NotFound("chat not found")
	}
	if err := authz.IsSelf(actor, c.UserID); err != nil {
		return authz.Actor{}, nil, err
	}
	return actor, c, nil
}
