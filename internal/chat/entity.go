package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/user"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Messages  []Message `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChatID        uuid.UUID `gorm:"type:uuid;not null;index" json:"chat_id"`
	Chat          Chat      `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"-"`
	Sender        Sender    `gorm:"type:varchar(20);not null" json:"sender"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ImageURL      string    `json:"image_url,omitempty"`
	ImagePublicID string    `json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
