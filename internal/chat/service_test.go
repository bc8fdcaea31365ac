package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type fakeChatRepo struct {
	chats    map[uuid.UUID]*Chat
	messages map[uuid.UUID]*Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    map[uuid.UUID]*Chat{},
		messages: map[uuid.UUID]*Message{},
	}
}

func (f *fakeChatRepo) Create(c *Chat) error {
	f.chats[c.ID] = c
	return nil
}

func (f *fakeChatRepo) FindByID(id uuid.UUID) (*Chat, error) {
	return f.chats[id], nil
}

func (f *fakeChatRepo) FindByUser(userID uuid.UUID) ([]*Chat, error) {
	var out []*Chat
	for _, c := range f.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) Delete(id uuid.UUID) error {
	delete(f.chats, id)
	for messageID, m := range f.messages {
		if m.ChatID == id {
			delete(f.messages, messageID)
		}
	}
	return nil
}

func (f *fakeChatRepo) CreateMessage(m *Message) error {
	f.messages[m.ID] = m
	return nil
}

func (f *fakeChatRepo) FindMessages(chatID uuid.UUID) ([]Message, error) {
	var out []Message
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeProvider struct {
	answer     string
	err        error
	lastPrompt string
}

func (f *fakeProvider) SendPrompt(_ context.Context, _, user string) (string, error) {
	f.lastPrompt = user
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeUploader struct {
	uploaded []string
	removed  []string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, _ []byte) (media.Asset, error) {
	f.uploaded = append(f.uploaded, filename)
	return media.Asset{URL: "https://media.example.com/" + filename, PublicID: filename}, nil
}

func (f *fakeUploader) Remove(_ context.Context, publicID string) error {
	f.removed = append(f.removed, publicID)
	return nil
}

func actorContext(userID uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   string(authz.RoleStudent),
	})
}

func TestAsk(t *testing.T) {
	ownerID := uuid.New()

	setup := func(provider *fakeProvider) (ChatService, *fakeChatRepo, *Chat) {
		repo := newFakeChatRepo()
		c := &Chat{ID: uuid.New(), Title: "Study help", UserID: ownerID}
		repo.chats[c.ID] = c
		return NewService(repo, provider, &fakeUploader{}), repo, c
	}

	t.Run("StoresQuestionAndAnswer", func(t *testing.T) {
		provider := &fakeProvider{answer: "A slice is a view over an array."}
		service, repo, c := setup(provider)

		resp, err := service.Ask(actorContext(ownerID), c.ID.String(), AskRequest{Message: "What is a slice?"}, "", nil)
		if err != nil {
			t.Fatalf("expected answer, got %v", err)
		}
		if resp.Answer.Content != provider.answer {
			t.Errorf("unexpected answer: %s", resp.Answer.Content)
		}
		if len(repo.messages) != 2 {
			t.Errorf("expected question and answer to be stored, got %d messages", len(repo.messages))
		}
	})

	t.Run("HistoryTravelsWithThePrompt", func(t *testing.T) {
		provider := &fakeProvider{answer: "ok"}
		service, repo, c := setup(provider)
		repo.messages[uuid.New()] = &Message{ID: uuid.New(), ChatID: c.ID, Sender: SenderUser, Content: "earlier question"}

		if _, err := service.Ask(actorContext(ownerID), c.ID.String(), AskRequest{Message: "follow up"}, "", nil); err != nil {
			t.Fatalf("expected answer, got %v", err)
		}
		if !strings.Contains(provider.lastPrompt, "earlier question") {
			t.Errorf("expected history in prompt, got %q", provider.lastPrompt)
		}
	})

	t.Run("OtherUserIsForbidden", func(t *testing.T) {
		service, _, c := setup(&fakeProvider{answer: "ok"})

		_, err := service.Ask(actorContext(uuid.New()), c.ID.String(), AskRequest{Message: "hi"}, "", nil)
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})

	t.Run("ProviderFailureIsUpstream", func(t *testing.T) {
		service, repo, c := setup(&fakeProvider{err: apperr.Upstream("assistant is unavailable", nil)})

		_, err := service.Ask(actorContext(ownerID), c.ID.String(), AskRequest{Message: "hi"}, "", nil)
		if apperr.KindOf(err) != apperr.KindUpstream {
			t.Errorf("expected upstream failure, got %v", err)
		}
		// The student's question is kept even when the model fails.
		if len(repo.messages) != 1 {
			t.Errorf("expected only the question to be stored, got %d messages", len(repo.messages))
		}
	})
}

func TestDeleteChat(t *testing.T) {
	ownerID := uuid.New()
	repo := newFakeChatRepo()
	uploader := &fakeUploader{}
	service := NewService(repo, &fakeProvider{answer: "ok"}, uploader)

	c := &Chat{ID: uuid.New(), Title: "Study help", UserID: ownerID}
	repo.chats[c.ID] = c
	repo.messages[uuid.New()] = &Message{
		ID: uuid.New(), ChatID: c.ID, Sender: SenderUser,
		Content: "look", ImagePublicID: "diagram.png",
	}

	t.Run("OtherUserDenied", func(t *testing.T) {
		err := service.DeleteChat(actorContext(uuid.New()), c.ID.String())
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})

	t.Run("OwnerDeletesAndImagesAreReleased", func(t *testing.T) {
		if err := service.DeleteChat(actorContext(ownerID), c.ID.String()); err != nil {
			t.Fatalf("expected delete to succeed, got %v", err)
		}
		if len(repo.chats) != 0 || len(repo.messages) != 0 {
			t.Error("expected chat and messages to be removed")
		}
		if len(uploader.removed) != 1 || uploader.removed[0] != "diagram.png" {
			t.Errorf("expected image release, got %v", uploader.removed)
		}
	})
}
