package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
)

type fakeReportRepo struct {
	rows       []PerformanceRow
	aggregates []CourseAggregate
}

func (f *fakeReportRepo) PerformanceRows() ([]PerformanceRow, error) {
	return f.rows, nil
}

func (f *fakeReportRepo) PerformanceRowsByUser(userID uuid.UUID) ([]PerformanceRow, error) {
	var out []PerformanceRow
	for _, row := range f.rows {
		if row.StudentID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) CourseAggregatesByInstructor(uuid.UUID) ([]CourseAggregate, error) {
	return f.aggregates, nil
}

func actorContext(userID uuid.UUID, role authz.Role) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   string(role),
	})
}

func sampleRow(studentID uuid.UUID, score, totalQuestions int) PerformanceRow {
	return PerformanceRow{
		StudentID:      studentID,
		StudentName:    "Ada",
		StudentEmail:   "ada@example.com",
		CourseID:       uuid.New(),
		CourseTitle:    "Go for Beginners",
		QuizID:         uuid.New(),
		QuizTitle:      "Basics",
		Score:          score,
		TotalQuestions: totalQuestions,
		Duration:       30,
		TimeUsed:       12,
		CompletedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestExportPerformanceCSV(t *testing.T) {
	studentID := uuid.New()
	adminID := uuid.New()

	t.Run("GradesAtThePassThreshold", func(t *testing.T) {
		repo := &fakeReportRepo{rows: []PerformanceRow{sampleRow(studentID, 3, 5)}}
		service := NewService(repo)

		var buf bytes.Buffer
		if err := service.ExportPerformanceCSV(actorContext(adminID, authz.RoleAdmin), &buf); err != nil {
			t.Fatalf("expected export to succeed, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
		}
		if lines[0] != strings.Join(csvHeader, ",") {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if !strings.Contains(lines[1], "60.00,Pass") {
			t.Errorf("expected 3/5 to grade 60.00,Pass, got %s", lines[1])
		}
	})

	t.Run("FailBelowThreshold", func(t *testing.T) {
		repo := &fakeReportRepo{rows: []PerformanceRow{sampleRow(studentID, 2, 5)}}
		service := NewService(repo)

		var buf bytes.Buffer
		if err := service.ExportPerformanceCSV(actorContext(adminID, authz.RoleAdmin), &buf); err != nil {
			t.Fatalf("expected export to succeed, got %v", err)
		}
		if !strings.Contains(buf.String(), "40.00,Fail") {
			t.Errorf("expected 2/5 to grade 40.00,Fail, got %s", buf.String())
		}
	})

	t.Run("QuizWithoutQuestionsGradesZero", func(t *testing.T) {
		repo := &fakeReportRepo{rows: []PerformanceRow{sampleRow(studentID, 3, 0)}}
		service := NewService(repo)

		var buf bytes.Buffer
		if err := service.ExportPerformanceCSV(actorContext(adminID, authz.RoleAdmin), &buf); err != nil {
			t.Fatalf("expected export to succeed, got %v", err)
		}
		if !strings.Contains(buf.String(), "0.00,Fail") {
			t.Errorf("expected empty quiz to grade 0.00,Fail, got %s", buf.String())
		}
	})

	t.Run("StudentDenied", func(t *testing.T) {
		service := NewService(&fakeReportRepo{})

		var buf bytes.Buffer
		err := service.ExportPerformanceCSV(actorContext(studentID, authz.RoleStudent), &buf)
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("expected no CSV output on denial")
		}
	})
}

func TestGetStudentDashboard(t *testing.T) {
	studentID := uuid.New()
	repo := &fakeReportRepo{rows: []PerformanceRow{
		sampleRow(studentID, 4, 5),
		sampleRow(studentID, 1, 5),
		sampleRow(uuid.New(), 5, 5),
	}}
	service := NewService(repo)

	dashboard, err := service.GetStudentDashboard(actorContext(studentID, authz.RoleStudent))
	if err != nil {
		t.Fatalf("expected dashboard, got %v", err)
	}
	if dashboard.TotalQuizzes != 2 {
		t.Errorf("expected 2 own attempts, got %d", dashboard.TotalQuizzes)
	}
	if dashboard.Passed != 1 {
		t.Errorf("expected 1 passed attempt, got %d", dashboard.Passed)
	}
	if dashboard.AverageScore != 50 {
		t.Errorf("expected average 50, got %f", dashboard.AverageScore)
	}
}

func TestGetInstructorDashboard(t *testing.T) {
	repo := &fakeReportRepo{aggregates: []CourseAggregate{{
		CourseID:        uuid.New(),
		CourseTitle:     "Go for Beginners",
		EnrollmentCount: 10,
		QuizCount:       2,
	}}}
	service := NewService(repo)

	t.Run("InstructorReadsAggregates", func(t *testing.T) {
		dashboard, err := service.GetInstructorDashboard(actorContext(uuid.New(), authz.RoleInstructor))
		if err != nil {
			t.Fatalf("expected dashboard, got %v", err)
		}
		if len(dashboard.Courses) != 1 || dashboard.Courses[0].EnrollmentCount != 10 {
			t.Errorf("unexpected aggregates: %+v", dashboard.Courses)
		}
	})

	t.Run("StudentDenied", func(t *testing.T) {
		_, err := service.GetInstructorDashboard(actorContext(uuid.New(), authz.RoleStudent))
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})
}
