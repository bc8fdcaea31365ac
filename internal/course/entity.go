package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/learnhub-dev/learnhub/internal/user"
)

type Course struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Category      Category       `gorm:"type:varchar(32);not null" json:"category"`
	Price         float64        `gorm:"not null;check:price >= 0" json:"price"`
	Duration      int            `gorm:"not null" json:"duration"`
	ImageURL      string         `json:"image_url,omitempty"`
	ImagePublicID string         `json:"-"`
	InstructorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor    user.User      `gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE" json:"instructor,omitempty"`
	Ratings       datatypes.JSON `gorm:"type:jsonb" json:"ratings,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// Rating is one entry of the Ratings jsonb list.
type Rating struct {
	UserID uuid.UUID `json:"user_id"`
	Rating int       `json:"rating"`
	Review string    `json:"review,omitempty"`
}
