package quiz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
)

type fakeQuizRepo struct {
	quizzes   map[uuid.UUID]*Quiz
	questions map[uuid.UUID]*Question
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		quizzes:   map[uuid.UUID]*Quiz{},
		questions: map[uuid.UUID]*Question{},
	}
}

func (f *fakeQuizRepo) Create(q *Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) FindByID(id uuid.UUID) (*Quiz, error) {
	return f.quizzes[id], nil
}

func (f *fakeQuizRepo) FindByCourse(courseID uuid.UUID) ([]*Quiz, error) {
	var out []*Quiz
	for _, q := range f.quizzes {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) Update(q *Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) Delete(id uuid.UUID) error {
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) CreateQuestion(q *Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) FindQuestionByID(id uuid.UUID) (*Question, error) {
	return f.questions[id], nil
}

func (f *fakeQuizRepo) FindQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error) {
	var out []*Question
	for _, q := range f.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) UpdateQuestion(q *Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) DeleteQuestion(id uuid.UUID) error {
	delete(f.questions, id)
	return nil
}

func (f *fakeQuizRepo) CountQuestions(quizID uuid.UUID) (int64, error) {
	var count int64
	for _, q := range f.questions {
		if q.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

type fakeCourseResolver struct {
	instructors map[uuid.UUID]uuid.UUID
}

func (f *fakeCourseResolver) InstructorID(_ context.Context, courseID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.instructors[courseID]
	if !ok {
		return uuid.Nil, apperr.NotFound("course not found")
	}
	return id, nil
}

type fakeEnrollmentChecker struct {
	paid map[uuid.UUID]uuid.UUID
}

func (f *fakeEnrollmentChecker) HasPaidEnrollment(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	return f.paid[userID] == courseID, nil
}

func actorContext(userID uuid.UUID, role authz.Role) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   string(role),
	})
}

func newTestService(t *testing.T) (QuizService, *fakeQuizRepo, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()

	instructorID := uuid.New()
	studentID := uuid.New()
	courseID := uuid.New()

	repo := newFakeQuizRepo()
	resolver := &fakeCourseResolver{instructors: map[uuid.UUID]uuid.UUID{courseID: instructorID}}
	checker := &fakeEnrollmentChecker{paid: map[uuid.UUID]uuid.UUID{studentID: courseID}}
	access := authz.NewCourseAccess(resolver, checker)

	return NewService(repo, resolver, access), repo, instructorID, studentID, courseID
}

func TestCreateQuiz(t *testing.T) {
	t.Run("InstructorCreatesOwnCourseQuiz", func(t *testing.T) {
		service, repo, instructorID, _, courseID := newTestService(t)

		q, err := service.CreateQuiz(actorContext(instructorID, authz.RoleInstructor), CreateQuizRequest{
			CourseID:     courseID.String(),
			Title:        "Go Basics",
			Duration:     30,
			PassingScore: 60,
		})
		if err != nil {
			t.Fatalf("expected quiz to be created, got %v", err)
		}
		if q.CourseID != courseID {
			t.Errorf("expected course %s, got %s", courseID, q.CourseID)
		}
		if len(repo.quizzes) != 1 {
			t.Errorf("expected 1 stored quiz, got %d", len(repo.quizzes))
		}
	})

	t.Run("ForeignInstructorDenied", func(t *testing.T) {
		service, _, _, _, courseID := newTestService(t)

		_, err := service.CreateQuiz(actorContext(uuid.New(), authz.RoleInstructor), CreateQuizRequest{
			CourseID: courseID.String(),
			Title:    "Go Basics",
			Duration: 30,
		})
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})

	t.Run("UnknownCourseIsNotFound", func(t *testing.T) {
		service, _, instructorID, _, _ := newTestService(t)

		_, err := service.CreateQuiz(actorContext(instructorID, authz.RoleInstructor), CreateQuizRequest{
			CourseID: uuid.New().String(),
			Title:    "Go Basics",
			Duration: 30,
		})
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestQuestionAnswerVisibility(t *testing.T) {
	service, repo, instructorID, studentID, courseID := newTestService(t)

	quizID := uuid.New()
	repo.quizzes[quizID] = &Quiz{ID: quizID, Title: "Go Basics", Duration: 30, CourseID: courseID}

	options, _ := json.Marshal([]string{"a", "b", "c"})
	repo.questions[uuid.New()] = &Question{
		ID:            uuid.New(),
		Name:          "What declares a variable?",
		Options:       options,
		CorrectAnswer: 1,
		QuizID:        quizID,
	}

	t.Run("StudentNeverReceivesCorrectAnswer", func(t *testing.T) {
		views, err := service.ListQuestions(actorContext(studentID, authz.RoleStudent), quizID.String())
		if err != nil {
			t.Fatalf("expected enrolled student to read questions, got %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 question, got %d", len(views))
		}
		if views[0].CorrectAnswer != nil {
			t.Error("expected correct answer to be hidden from students")
		}
	})

	t.Run("OwnerSeesCorrectAnswer", func(t *testing.T) {
		views, err := service.ListQuestions(actorContext(instructorID, authz.RoleInstructor), quizID.String())
		if err != nil {
			t.Fatalf("expected instructor to read questions, got %v", err)
		}
		if views[0].CorrectAnswer == nil || *views[0].CorrectAnswer != 1 {
			t.Errorf("expected correct answer 1 for the owner, got %v", views[0].CorrectAnswer)
		}
	})

	t.Run("UnenrolledStudentDenied", func(t *testing.T) {
		_, err := service.ListQuestions(actorContext(uuid.New(), authz.RoleStudent), quizID.String())
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})
}

func TestAddQuestion(t *testing.T) {
	service, repo, instructorID, _, courseID := newTestService(t)

	quizID := uuid.New()
	repo.quizzes[quizID] = &Quiz{ID: quizID, Title: "Go Basics", Duration: 30, CourseID: courseID}
	ctx := actorContext(instructorID, authz.RoleInstructor)

	t.Run("ValidQuestion", func(t *testing.T) {
		q, err := service.AddQuestion(ctx, quizID.String(), CreateQuestionRequest{
			Name:          "Pick one",
			Options:       []string{"a", "b"},
			CorrectAnswer: 1,
		})
		if err != nil {
			t.Fatalf("expected question to be created, got %v", err)
		}
		if q.QuizID != quizID {
			t.Errorf("expected quiz %s, got %s", quizID, q.QuizID)
		}
	})

	t.Run("CorrectAnswerOutOfRange", func(t *testing.T) {
		_, err := service.AddQuestion(ctx, quizID.String(), CreateQuestionRequest{
			Name:          "Pick one",
			Options:       []string{"a", "b"},
			CorrectAnswer: 2,
		})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("MissingQuizIsNotFound", func(t *testing.T) {
		_, err := service.AddQuestion(ctx, uuid.New().String(), CreateQuestionRequest{
			Name:          "Pick one",
			Options:       []string{"a", "b"},
			CorrectAnswer: 0,
		})
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestDeleteQuiz(t *testing.T) {
	service, repo, instructorID, studentID, courseID := newTestService(t)

	quizID := uuid.New()
	repo.quizzes[quizID] = &Quiz{ID: quizID, Title: "Go Basics", Duration: 30, CourseID: courseID}

	t.Run("StudentDenied", func(t *testing.T) {
		err := service.DeleteQuiz(actorContext(studentID, authz.RoleStudent), quizID.String())
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		if err := service.DeleteQuiz(actorContext(instructorID, authz.RoleInstructor), quizID.String()); err != nil {
			t.Fatalf("expected delete to succeed, got %v", err)
		}
		if len(repo.quizzes) != 0 {
			t.Errorf("expected quiz to be removed, %d remain", len(repo.quizzes))
		}
	})
}
