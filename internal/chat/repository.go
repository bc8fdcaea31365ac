package chat

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(c *Chat) error
	FindByID(id uuid.UUID) (*Chat, error)
	FindByUser(userID uuid.UUID) ([]*Chat, error)
	Delete(id uuid.UUID) error
	CreateMessage(m *Message) error
	FindMessages(chatID uuid.UUID) ([]Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(c *Chat) error {
	return r.db.Create(c).Error
}

func (r *chatRepository) FindByID(id uuid.UUID) (*Chat, error) {
	var c Chat
	if err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *chatRepository) FindByUser(userID uuid.UUID) ([]*Chat, error) {
	var chats []*Chat
	if err := r.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

// Delete removes the chat; its messages fall via ON DELETE CASCADE.
func (r *chatRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Chat{}, "id = ?", id).Error
}

func (r *chatRepository) CreateMessage(m *Message) error {
	return r.db.Create(m).Error
}

func (r *chatRepository) FindMessages(chatID uuid.UUID) ([]Message, error) {
	var messages []Message
	if err := r.db.
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
