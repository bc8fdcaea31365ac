package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(e *Enrollment) error
	FindByID(id uuid.UUID) (*Enrollment, error)
	FindByUser(userID uuid.UUID) ([]*Enrollment, error)
	FindByCourse(courseID uuid.UUID) ([]*Enrollment, error)
	Update(e *Enrollment) error
	Delete(id uuid.UUID) error
	CreateScore(s *QuizScore) error
	FindScores(enrollmentID uuid.UUID) ([]QuizScore, error)
	HasPaidEnrollment(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(e *Enrollment) error {
	return r.db.Create(e).Error
}

func (r *enrollmentRepository) FindByID(id uuid.UUID) (*Enrollment, error) {
	var e Enrollment
	if err := r.db.
		Preload("Scores").
		First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) FindByUser(userID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Preload("Scores").
		Where("user_id = ?", userID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) FindByCourse(courseID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Preload("Scores").
		Where("course_id = ?", courseID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Update(e *Enrollment) error {
	return r.db.Save(e).Error
}

// Delete removes the enrollment row; its quiz scores fall with it via
// ON DELETE CASCADE, so row and history disappear atomically.
func (r *enrollmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Enrollment{}, "id = ?", id).Error
}

func (r *enrollmentRepository) CreateScore(s *QuizScore) error {
	return r.db.Create(s).Error
}

func (r *enrollmentRepository) FindScores(enrollmentID uuid.UUID) ([]QuizScore, error) {
	var scores []QuizScore
	if err := r.db.
		Where("enrollment_id = ?", enrollmentID).
		Order("completed_at ASC").
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

// HasPaidEnrollment satisfies authz.EnrollmentChecker.
func (r *enrollmentRepository) HasPaidEnrollment(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("user_id = ? AND course_id = ? AND payment_status = ?", userID, courseID, PaymentCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
