package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	FindByID(id uuid.UUID) (*Quiz, error)
	FindByCourse(courseID uuid.UUID) ([]*Quiz, error)
	Update(q *Quiz) error
	Delete(id uuid.UUID) error

	CreateQuestion(q *Question) error
	FindQuestionByID(id uuid.UUID) (*Question, error)
	FindQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error)
	UpdateQuestion(q *Question) error
	DeleteQuestion(id uuid.UUID) error
	CountQuestions(quizID uuid.UUID) (int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) FindByID(id uuid.UUID) (*Quiz, error) {
	var q Quiz
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindByCourse(courseID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) CreateQuestion(q *Question) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) FindQuestionByID(id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) UpdateQuestion(q *Question) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

func (r *quizRepository) CountQuestions(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
