package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/course"
	"github.com/learnhub-dev/learnhub/internal/quiz"
	"github.com/learnhub-dev/learnhub/internal/user"
)

// Enrollment joins a user to a course. The composite unique index makes
// "one enrollment per user per course" a database guarantee instead of a
// lookup that can race.
type Enrollment struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	User             user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CourseID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`
	Course           course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	EnrolledAt       time.Time     `gorm:"autoCreateTime" json:"enrolled_at"`
	Progress         int           `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	Completed        bool          `gorm:"not null;default:false" json:"completed"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`
	PaymentSessionID string        `json:"-"`
	Scores           []QuizScore   `gorm:"foreignKey:EnrollmentID" json:"scores,omitempty"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuizScore is the single record of a quiz attempt. The composite unique
// index rejects a second submission for the same (enrollment, quiz) pair at
// the database, closing the check-then-act race.
type QuizScore struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EnrollmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_score_enrollment_quiz" json:"enrollment_id"`
	Enrollment   Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
	QuizID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_score_enrollment_quiz" json:"quiz_id"`
	Quiz         quiz.Quiz  `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Score        int        `gorm:"not null;check:score >= 0 AND score <= 100" json:"score"`
	TimeUsed     int        `gorm:"not null;default:0" json:"time_used"`
	CompletedAt  time.Time  `gorm:"autoCreateTime" json:"completed_at"`
}
