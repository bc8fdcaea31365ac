package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/quiz"
)

// QuizResolver looks up a quiz for score submission. Satisfied by the quiz
// repository.
type QuizResolver interface {
	FindByID(id uuid.UUID) (*quiz.Quiz, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID string) (*Enrollment, error)
	ListUserEnrollments(ctx context.Context) ([]*Enrollment, error)
	ListCourseEnrollments(ctx context.Context, courseID string) ([]*Enrollment, error)
	GetEnrollment(ctx context.Context, id string) (*Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
	SubmitQuizScore(ctx context.Context, enrollmentID, quizID string, req SubmitScoreRequest) (*QuizScore, error)
	UpdateProgress(ctx context.Context, id string, req UpdateProgressRequest) (*Enrollment, error)
	UpdatePaymentStatus(ctx context.Context, id string, req UpdatePaymentStatusRequest) (*Enrollment, error)
}

type enrollmentService struct {
	repo    EnrollmentRepository
	courses authz.CourseResolver
	quizzes QuizResolver
}

func NewService(repo EnrollmentRepository, courses authz.CourseResolver, quizzes QuizResolver) EnrollmentService {
	return &enrollmentService{
		repo:    repo,
		courses: courses,
		quizzes: quizzes,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, courseID string) (*Enrollment, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apperr.Validation("invalid course id")
	}
	// The resolver doubles as the existence check: a missing course is
	// surfaced as NotFound before any row is written.
	if _, err := s.courses.InstructorID(ctx, cid); err != nil {
		return nil, err
	}

	e := &Enrollment{
		ID:            uuid.New(),
		UserID:        actor.ID,
		CourseID:      cid,
		PaymentStatus: PaymentPending,
	}
	if err := s.repo.Create(e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("already enrolled in this course")
		}
		log.WithError(err).Error("Failed to create enrollment")
		return nil, err
	}

	log.WithFields(map[string]interface{}{"enrollment_id": e.ID, "course_id": cid}).Info("User enrolled")
	return e, nil
}

func (s *enrollmentService) ListUserEnrollments(ctx context.Context) ([]*Enrollment, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUser(actor.ID)
}

func (s *enrollmentService) ListCourseEnrollments(ctx context.Context, courseID string) ([]*Enrollment, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apperr.Validation("invalid course id")
	}
	instructorID, err := s.courses.InstructorID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := authz.OwnsOrAdmin(actor, instructorID); err != nil {
		return nil, err
	}
	return s.repo.FindByCourse(cid)
}

// GetEnrollment is readable by the enrolled user, the course's instructor,
// and admins.
func (s *enrollmentService) GetEnrollment(ctx context.Context, id string) (*Enrollment, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.findEnrollment(id)
	if err != nil {
		return nil, err
	}

	if authz.IsSelfOrAdmin(actor, e.UserID) == nil {
		return e, nil
	}
	instructorID, err := s.courses.InstructorID(ctx, e.CourseID)
	if err != nil {
		return nil, err
	}
	if err := authz.OwnsOrAdmin(actor, instructorID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *enrollmentService) DeleteEnrollment(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	e, err := s.findEnrollment(id)
	if err != nil {
		return err
	}
	if err := authz.IsSelfOrAdmin(actor, e.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(e.ID); err != nil {
		log.WithError(err).Error("Failed to delete enrollment")
		return err
	}
	log.WithField("enrollment_id", e.ID).Info("Enrollment deleted")
	return nil
}

func (s *enrollmentService) SubmitQuizScore(ctx context.Context, enrollmentID, quizID string, req SubmitScoreRequest) (*QuizScore, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.findEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	qid, err := uuid.Parse(quizID)
	if err != nil {
		return nil, apperr.Validation("invalid quiz id")
	}
	q, err := s.quizzes.FindByID(qid)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if q.CourseID != e.CourseID {
		return nil, apperr.Validation("quiz does not belong to the enrolled course")
	}
	if err := authz.IsSelf(actor, e.UserID); err != nil {
		return nil, err
	}

	score := &QuizScore{
		ID:           uuid.New(),
		EnrollmentID: e.ID,
		QuizID:       q.ID,
		Score:        req.Score,
		TimeUsed:     req.TimeUsed,
	}
	if err := s.repo.CreateScore(score); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("quiz score already submitted")
		}
		log.WithError(err).Error("Failed to store quiz score")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"enrollment_id": e.ID,
		"quiz_id":       q.ID,
		"score":         req.Score,
	}).Info("Quiz score submitted")
	return score, nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, id string, req UpdateProgressRequest) (*Enrollment, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.findEnrollment(id)
	if err != nil {
		return nil, err
	}
	if err := authz.IsSelf(actor, e.UserID); err != nil {
		return nil, err
	}

	e.Progress = req.Progress
	if req.Completed != nil {
		e.Completed = *req.Completed
	}
	if err := s.repo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *enrollmentService) UpdatePaymentStatus(ctx context.Context, id string, req UpdatePaymentStatusRequest) (*Enrollment, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != authz.RoleAdmin {
		return nil, apperr.Forbidden("not authorized, admin only")
	}
	e, err := s.findEnrollment(id)
	if err != nil {
		return nil, err
	}

	e.PaymentStatus = PaymentStatus(req.PaymentStatus)
	if err := s.repo.Update(e); err != nil {
		log.WithError(err).Error("Failed to update payment status")
		return nil, err
	}
	return e, nil
}

func (s *enrollmentService) findEnrollment(id string) (*Enrollment, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid enrollment id")
	}
	e, err := s.repo.FindByID(eid)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperr.NotFound("enrollment not found")
	}
	return e, nil
}
