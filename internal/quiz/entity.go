package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/learnhub-dev/learnhub/internal/course"
)

type Quiz struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string        `gorm:"not null" json:"title"`
	Duration     int           `gorm:"not null;check:duration > 0" json:"duration"`
	PassingScore int           `gorm:"not null;check:passing_score >= 0 AND passing_score <= 100" json:"passing_score"`
	CourseID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"course_id"`
	Course       course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// Question keeps its option list as a jsonb payload. CorrectAnswer is the
// index of the right option and never leaves the server through entity
// serialization; owner-facing views add it back explicitly.
type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int            `gorm:"not null" json:"-"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz          Quiz           `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
