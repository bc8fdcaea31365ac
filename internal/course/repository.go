package course

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/apperr"
)

type CourseRepository interface {
	Create(c *Course) error
	FindByID(id uuid.UUID) (*Course, error)
	FindAll() ([]*Course, error)
	FindByInstructor(instructorID uuid.UUID) ([]*Course, error)
	Update(c *Course) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	InstructorID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(c *Course) error {
	return r.db.Create(c).Error
}

func (r *courseRepository) FindByID(id uuid.UUID) (*Course, error) {
	var c Course
	if err := r.db.Preload("Instructor").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) FindAll() ([]*Course, error) {
	var courses []*Course
	if err := r.db.Preload("Instructor").Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindByInstructor(instructorID uuid.UUID) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(c *Course) error {
	return r.db.Save(c).Error
}

// Delete removes the course row. Lessons, quizzes, questions and
// enrollments fall with it through their ON DELETE CASCADE constraints, so
// the whole cascade is one statement inside one implicit transaction.
func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Course{}, "id = ?", id).Error
}

func (r *courseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Course{}).Count(&count).Error
	return count, err
}

// InstructorID satisfies authz.CourseResolver.
func (r *courseRepository) InstructorID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error) {
	var c Course
	err := r.db.WithContext(ctx).Select("instructor_id").First(&c, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperr.NotFound("course not found")
		}
		return uuid.Nil, err
	}
	return c.InstructorID, nil
}
