package lesson

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(l *Lesson) error
	FindByID(id uuid.UUID) (*Lesson, error)
	FindByCourse(courseID uuid.UUID) ([]*Lesson, error)
	Update(l *Lesson) error
	Delete(id uuid.UUID) error
	MediaPublicIDs(courseID uuid.UUID) ([]string, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(l *Lesson) error {
	return r.db.Create(l).Error
}

func (r *lessonRepository) FindByID(id uuid.UUID) (*Lesson, error) {
	var l Lesson
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) FindByCourse(courseID uuid.UUID) ([]*Lesson, error) {
	var lessons []*Lesson
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) Update(l *Lesson) error {
	return r.db.Save(l).Error
}

func (r *lessonRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Lesson{}, "id = ?", id).Error
}

// MediaPublicIDs satisfies course.MediaRefLister for cascade deletes.
func (r *lessonRepository) MediaPublicIDs(courseID uuid.UUID) ([]string, error) {
	var ids []string
	if err := r.db.Model(&Lesson{}).
		Where("course_id = ? AND video_public_id <> ''", courseID).
		Pluck("video_public_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
