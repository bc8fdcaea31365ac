package lesson

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/course"
)

type Lesson struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title         string        `gorm:"not null" json:"title"`
	Duration      string        `gorm:"not null" json:"duration"`
	VideoURL      string        `json:"video_url,omitempty"`
	VideoPublicID string        `json:"-"`
	CourseID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"course_id"`
	Course        course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
