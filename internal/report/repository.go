package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceRow is one flattened quiz attempt, joined across student,
// course, quiz and question count.
type PerformanceRow struct {
	StudentID      uuid.UUID `json:"student_id"`
	StudentName    string    `json:"student_name"`
	StudentEmail   string    `json:"student_email"`
	CourseID       uuid.UUID `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	QuizID         uuid.UUID `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Duration       int       `json:"duration"`
	TimeUsed       int       `json:"time_used"`
	CompletedAt    time.Time `json:"completed_at"`
}

// CourseAggregate is one course's headline numbers for the instructor
// dashboard.
type CourseAggregate struct {
	CourseID        uuid.UUID `json:"course_id"`
	CourseTitle     string    `json:"course_title"`
	EnrollmentCount int64     `json:"enrollment_count"`
	QuizCount       int64     `json:"quiz_count"`
	SubmissionCount int64     `json:"submission_count"`
	AverageScore    float64   `json:"average_score"`
}

type ReportRepository interface {
	PerformanceRows() ([]PerformanceRow, error)
	PerformanceRowsByUser(userID uuid.UUID) ([]PerformanceRow, error)
	CourseAggregatesByInstructor(instructorID uuid.UUID) ([]CourseAggregate, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

const performanceSelect = `
	users.id AS student_id,
	users.user_name AS student_name,
	users.email AS student_email,
	courses.id AS course_id,
	courses.title AS course_title,
	quizzes.id AS quiz_id,
	quizzes.title AS quiz_title,
	quiz_scores.score AS score,
	COALESCE(qc.total, 0) AS total_questions,
	quizzes.duration AS duration,
	quiz_scores.time_used AS time_used,
	quiz_scores.completed_at AS completed_at`

func (r *reportRepository) performanceQuery() *gorm.DB {
	return r.db.
		Table("quiz_scores").
		Select(performanceSelect).
		Joins("JOIN enrollments ON enrollments.id = quiz_scores.enrollment_id").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN quizzes ON quizzes.id = quiz_scores.quiz_id").
		Joins("LEFT JOIN (SELECT quiz_id, COUNT(*) AS total FROM questions GROUP BY quiz_id) qc ON qc.quiz_id = quizzes.id").
		Order("quiz_scores.completed_at ASC")
}

func (r *reportRepository) PerformanceRows() ([]PerformanceRow, error) {
	var rows []PerformanceRow
	if err := r.performanceQuery().Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) PerformanceRowsByUser(userID uuid.UUID) ([]PerformanceRow, error) {
	var rows []PerformanceRow
	if err := r.performanceQuery().
		Where("enrollments.user_id = ?", userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) CourseAggregatesByInstructor(instructorID uuid.UUID) ([]CourseAggregate, error) {
	var aggregates []CourseAggregate
	err := r.db.
		Table("courses").
		Select(`
			courses.id AS course_id,
			courses.title AS course_title,
			COUNT(DISTINCT enrollments.id) AS enrollment_count,
			COUNT(DISTINCT quizzes.id) AS quiz_count,
			COUNT(quiz_scores.id) AS submission_count,
			COALESCE(AVG(quiz_scores.score), 0) AS average_score`).
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Joins("LEFT JOIN quizzes ON quizzes.course_id = courses.id").
		Joins("LEFT JOIN quiz_scores ON quiz_scores.enrollment_id = enrollments.id AND quiz_scores.quiz_id = quizzes.id").
		Where("courses.instructor_id = ?", instructorID).
		Group("courses.id, courses.title").
		Order("courses.title ASC").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}
