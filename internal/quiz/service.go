package quiz

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, req CreateQuizRequest) (*Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (*QuizView, error)
	ListCourseQuizzes(ctx context.Context, courseID string) ([]*Quiz, error)
	UpdateQuiz(ctx context.Context, quizID string, req UpdateQuizRequest) (*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error

	AddQuestion(ctx context.Context, quizID string, req CreateQuestionRequest) (*Question, error)
	ListQuestions(ctx context.Context, quizID string) ([]QuestionView, error)
	UpdateQuestion(ctx context.Context, quizID, questionID string, req UpdateQuestionRequest) (*Question, error)
	DeleteQuestion(ctx context.Context, quizID, questionID string) error
}

type quizService struct {
	repo    QuizRepository
	courses authz.CourseResolver
	access  *authz.CourseAccess
}

func NewService(repo QuizRepository, courses authz.CourseResolver, access *authz.CourseAccess) QuizService {
	return &quizService{
		repo:    repo,
		courses: courses,
		access:  access,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, req CreateQuizRequest) (*Quiz, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, apperr.Validation("invalid course id")
	}
	instructorID, err := s.courses.InstructorID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := authz.OwnsOrAdmin(actor, instructorID); err != nil {
		return nil, err
	}

	q := &Quiz{
		ID:           uuid.New(),
		Title:        req.Title,
		Duration:     req.Duration,
		PassingScore: req.PassingScore,
		CourseID:     courseID,
	}
	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithFields(map[string]interface{}{"quiz_id": q.ID, "course_id": courseID}).Info("Quiz created")
	return q, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*QuizView, error) {
	actor, q, err := s.resolveAccessibleQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.FindQuestionsByQuiz(q.ID)
	if err != nil {
		return nil, err
	}

	instructorID, err := s.courses.InstructorID(ctx, q.CourseID)
	if err != nil {
		return nil, err
	}
	includeAnswers := authz.OwnsOrAdmin(actor, instructorID) == nil

	views, err := questionViews(questions, includeAnswers)
	if err != nil {
		return nil, err
	}
	return &QuizView{Quiz: q, Questions: views}, nil
}

func (s *quizService) ListCourseQuizzes(ctx context.Context, courseID string) ([]*Quiz, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apperr.Validation("invalid course id")
	}
	if err := s.access.Check(ctx, actor, cid); err != nil {
		return nil, err
	}
	return s.repo.FindByCourse(cid)
}

func (s *quizService) UpdateQuiz(ctx context.Context, quizID string, req UpdateQuizRequest) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.resolveOwnedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Duration != nil {
		q.Duration = *req.Duration
	}
	if req.PassingScore != nil {
		q.PassingScore = *req.PassingScore
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID string) error {
	log := config.WithContext(ctx)

	q, err := s.resolveOwnedQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	// Questions and submitted scores fall with the quiz via ON DELETE CASCADE.
	if err := s.repo.Delete(q.ID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	log.WithField("quiz_id", q.ID).Info("Quiz deleted")
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID string, req CreateQuestionRequest) (*Question, error) {
	log := config.WithContext(ctx)

	q, err := s.resolveOwnedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if req.CorrectAnswer >= len(req.Options) {
		return nil, apperr.Validation("correct answer must reference one of the options")
	}

	raw, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	question := &Question{
		ID:            uuid.New(),
		Name:          req.Name,
		Options:       datatypes.JSON(raw),
		CorrectAnswer: req.CorrectAnswer,
		QuizID:        q.ID,
	}
	if err := s.repo.CreateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, err
	}
	return question, nil
}

func (s *quizService) ListQuestions(ctx context.Context, quizID string) ([]QuestionView, error) {
	actor, q, err := s.resolveAccessibleQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.FindQuestionsByQuiz(q.ID)
	if err != nil {
		return nil, err
	}

	instructorID, err := s.courses.InstructorID(ctx, q.CourseID)
	if err != nil {
		return nil, err
	}
	includeAnswers := authz.OwnsOrAdmin(actor, instructorID) == nil

	return questionViews(questions, includeAnswers)
}

func (s *quizService) UpdateQuestion(ctx context.Context, quizID, questionID string, req UpdateQuestionRequest) (*Question, error) {
	log := config.WithContext(ctx)

	q, err := s.resolveOwnedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	question, err := s.findQuestion(q.ID, questionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		question.Name = *req.Name
	}
	if req.Options != nil {
		raw, err := json.Marshal(req.Options)
		if err != nil {
			return nil, err
		}
		question.Options = datatypes.JSON(raw)
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}

	var options []string
	if err := json.Unmarshal(question.Options, &options); err != nil {
		return nil, err
	}
	if question.CorrectAnswer >= len(options) {
		return nil, apperr.Validation("correct answer must reference one of the options")
	}

	if err := s.repo.UpdateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}
	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	log := config.WithContext(ctx)

	q, err := s.resolveOwnedQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	question, err := s.findQuestion(q.ID, questionID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteQuestion(question.ID); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}
	return nil
}

// resolveOwnedQuiz gates mutations: only the owning course's instructor or
// an admin.
func (s *quizService) resolveOwnedQuiz(ctx context.Context, quizID string) (*Quiz, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	q, err := s.findQuiz(quizID)
	if err != nil {
		return nil, err
	}
	instructorID, err := s.courses.InstructorID(ctx, q.CourseID)
	if err != nil {
		return nil, err
	}
	if err := authz.OwnsOrAdmin(actor, instructorID); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quizService) resolveAccessibleQuiz(ctx context.Context, quizID string) (authz.Actor, *Quiz, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	q, err := s.findQuiz(quizID)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	if err := s.access.Check(ctx, actor, q.CourseID); err != nil {
		return authz.Actor{}, nil, err
	}
	return actor, q, nil
}

func (s *quizService) findQuiz(id string) (*Quiz, error) {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid quiz id")
	}
	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperr.NotFound("quiz not found")
	}
	return q, nil
}

func (s *quizService) findQuestion(quizID uuid.UUID, questionID string) (*Question, error) {
	qid, err := uuid.Parse(questionID)
	if err != nil {
		return nil, apperr.Validation("invalid question id")
	}
	question, err := s.repo.FindQuestionByID(qid)
	if err != nil {
		return nil, err
	}
	if question == nil || question.QuizID != quizID {
		return nil, apperr.NotFound("question not found")
	}
	return question, nil
}

func questionViews(questions []*Question, includeAnswers bool) ([]QuestionView, error) {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return nil, err
		}
		view := QuestionView{ID: q.ID, Name: q.Name, Options: options}
		if includeAnswers {
			answer := q.CorrectAnswer
			view.CorrectAnswer = &answer
		}
		views = append(views, view)
	}
	return views, nil
}
