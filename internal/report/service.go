package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
)

// PassThreshold is the percentage at or above which an attempt counts as
// passed.
const PassThreshold = 60.0

var csvHeader = []string{
	"studentId", "studentName", "studentEmail",
	"courseId", "courseTitle",
	"quizId", "quizTitle",
	"score", "totalQuestions", "duration", "timeUsed", "completedAt",
	"percentageScore", "passFail",
}

// PerformanceEntry is one attempt with its derived percentage and verdict.
type PerformanceEntry struct {
	PerformanceRow
	PercentageScore float64 `json:"percentage_score"`
	PassFail        string  `json:"pass_fail"`
}

type StudentDashboard struct {
	Entries      []PerformanceEntry `json:"entries"`
	TotalQuizzes int                `json:"total_quizzes"`
	Passed       int                `json:"passed"`
	AverageScore float64            `json:"average_score"`
}

type InstructorDashboard struct {
	Courses []CourseAggregate `json:"courses"`
}

type ReportService interface {
	ExportPerformanceCSV(ctx context.Context, w io.Writer) error
	GetStudentDashboard(ctx context.Context) (*StudentDashboard, error)
	GetInstructorDashboard(ctx context.Context) (*InstructorDashboard, error)
}

type reportService struct {
	repo ReportRepository
}

func NewService(repo ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) ExportPerformanceCSV(ctx context.Context, w io.Writer) error {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return err
	}

	rows, err := s.repo.PerformanceRows()
	if err != nil {
		log.WithError(err).Error("Failed to collect performance rows")
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		percentage, verdict := grade(row)
		record := []string{
			row.StudentID.String(), row.StudentName, row.StudentEmail,
			row.CourseID.String(), row.CourseTitle,
			row.QuizID.String(), row.QuizTitle,
			strconv.Itoa(row.Score),
			strconv.Itoa(row.TotalQuestions),
			strconv.Itoa(row.Duration),
			strconv.Itoa(row.TimeUsed),
			row.CompletedAt.UTC().Format("2006-01-02T15:04:05Z"),
			strconv.FormatFloat(percentage, 'f', 2, 64),
			verdict,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) GetStudentDashboard(ctx context.Context) (*StudentDashboard, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.PerformanceRowsByUser(actor.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{
		Entries:      make([]PerformanceEntry, 0, len(rows)),
		TotalQuizzes: len(rows),
	}
	var sum float64
	for _, row := range rows {
		percentage, verdict := grade(row)
		dashboard.Entries = append(dashboard.Entries, PerformanceEntry{
			PerformanceRow:  row,
			PercentageScore: percentage,
			PassFail:        verdict,
		})
		if verdict == "Pass" {
			dashboard.Passed++
		}
		sum += percentage
	}
	if len(rows) > 0 {
		dashboard.AverageScore = sum / float64(len(rows))
	}
	return dashboard, nil
}

func (s *reportService) GetInstructorDashboard(ctx context.Context) (*InstructorDashboard, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return nil, err
	}

	aggregates, err := s.repo.CourseAggregatesByInstructor(actor.ID)
	if err != nil {
		return nil, err
	}
	return &InstructorDashboard{Courses: aggregates}, nil
}

// grade derives the percentage and pass/fail verdict of one attempt. A quiz
// with no questions grades to zero rather than dividing by zero.
func grade(row PerformanceRow) (float64, string) {
	if row.TotalQuestions <= 0 {
		return 0, "Fail"
	}
	percentage := float64(row.Score) / float64(row.TotalQuestions) * 100
	if percentage >= PassThreshold {
		return percentage, "Pass"
	}
	return percentage, "Fail"
}
