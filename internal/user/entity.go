package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/authz"
)

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserName         string     `gorm:"not null" json:"user_name"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             authz.Role `gorm:"type:varchar(20);not null;default:student" json:"role"`
	ProfilePhotoURL  string     `json:"profile_photo_url,omitempty"`
	ProfilePhotoID   string     `json:"-"`
	ResetCode        *string    `json:"-"`
	ResetCodeExpires *time.Time `json:"-"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
