package lesson

import (
	"context"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type LessonService interface {
	CreateLesson(ctx context.Context, courseID string, req CreateLessonRequest, videoName string, video []byte) (*Lesson, error)
	GetLesson(ctx context.Context, courseID, lessonID string) (*Lesson, error)
	ListLessons(ctx context.Context, courseID string) ([]*Lesson, error)
	UpdateLesson(ctx context.Context, courseID, lessonID string, req UpdateLessonRequest) (*Lesson, error)
	UpdateLessonVideo(ctx context.Context, courseID, lessonID string, videoName string, video []byte) (*Lesson, error)
	DeleteLesson(ctx context.Context, courseID, lessonID string) error
}

type lessonService struct {
	repo     LessonRepository
	courses  authz.CourseResolver
	uploader media.Uploader
	access   *authz.CourseAccess
}

func NewService(repo LessonRepository, courses authz.CourseResolver, uploader media.Uploader, access *authz.CourseAccess) LessonService {
	return &lessonService{
		repo:     repo,
		courses:  courses,
		uploader: uploader,
		access:   access,
	}
}

func (s *lessonService) CreateLesson(ctx context.Context, courseID string, req CreateLessonRequest, videoName string, video []byte) (*Lesson, error) {
	log := config.WithContext(ctx)

	cid, err := s.resolveOwnedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	asset, err := s.uploader.Upload(ctx, videoName, video)
	if err != nil {
		return nil, err
	}

	l := &Lesson{
		ID:            uuid.New(),
		Title:         req.Title,
		Duration:      req.Duration,
		VideoURL:      asset.URL,
		VideoPublicID: asset.PublicID,
		CourseID:      cid,
	}

	if err := s.repo.Create(l); err != nil {
		log.WithError(err).Error("Failed to create lesson")
		return nil, err
	}

	log.WithFields(map[string]interface{}{"lesson_id": l.ID, "course_id": cid}).Info("Lesson created")
	return l, nil
}

func (s *lessonService) GetLesson(ctx context.Context, courseID, lessonID string) (*Lesson, error) {
	cid, err := s.resolveAccessibleCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.findLesson(ctx, cid, lessonID)
}

func (s *lessonService) ListLessons(ctx context.Context, courseID string) ([]*Lesson, error) {
	cid, err := s.resolveAccessibleCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByCourse(cid)
}

func (s *lessonService) UpdateLesson(ctx context.Context, courseID, lessonID string, req UpdateLessonRequest) (*Lesson, error) {
	log := config.WithContext(ctx)

	cid, err := s.resolveOwnedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	l, err := s.findLesson(ctx, cid, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Duration != nil {
		l.Duration = *req.Duration
	}

	if err := s.repo.Update(l); err != nil {
		log.WithError(err).Error("Failed to update lesson")
		return nil, err
	}
	return l, nil
}

func (s *lessonService) UpdateLessonVideo(ctx context.Context, courseID, lessonID string, videoName string, video []byte) (*Lesson, error) {
	log := config.WithContext(ctx)

	cid, err := s.resolveOwnedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	l, err := s.findLesson(ctx, cid, lessonID)
	if err != nil {
		return nil, err
	}

	asset, err := s.uploader.Upload(ctx, videoName, video)
	if err != nil {
		return nil, err
	}

	oldID := l.VideoPublicID
	l.VideoURL = asset.URL
	l.VideoPublicID = asset.PublicID
	if err := s.repo.Update(l); err != nil {
		log.WithError(err).Error("Failed to store lesson video reference")
		return nil, err
	}

	if oldID != "" {
		if err := s.uploader.Remove(ctx, oldID); err != nil {
			log.WithError(err).Warn("Failed to release replaced lesson video")
		}
	}
	return l, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, courseID, lessonID string) error {
	log := config.WithContext(ctx)

	cid, err := s.resolveOwnedCourse(ctx, courseID)
	if err != nil {
		return err
	}
	l, err := s.findLesson(ctx, cid, lessonID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(l.ID); err != nil {
		log.WithError(err).Error("Failed to delete lesson")
		return err
	}

	if l.VideoPublicID != "" {
		if err := s.uploader.Remove(ctx, l.VideoPublicID); err != nil {
			log.WithError(err).Warn("Failed to release video for deleted lesson")
		}
	}

	log.WithField("lesson_id", l.ID).Info("Lesson deleted")
	return nil
}

// resolveOwnedCourse gates writes: only the course instructor or an admin.
func (s *lessonService) resolveOwnedCourse(ctx context.Context, courseID string) (uuid.UUID, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	cid, err := parseCourseID(courseID)
	if err != nil {
		return uuid.Nil, err
	}
	instructorID, err := s.courses.InstructorID(ctx, cid)
	if err != nil {
		return uuid.Nil, err
	}
	if err := authz.OwnsOrAdmin(actor, instructorID); err != nil {
		return uuid.Nil, err
	}
	return cid, nil
}

// resolveAccessibleCourse gates reads: instructor, admin, or paid enrollment.
func (s *lessonService) resolveAccessibleCourse(ctx context.Context, courseID string) (uuid.UUID, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	cid, err := parseCourseID(courseID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.access.Check(ctx, actor, cid); err != nil {
		return uuid.Nil, err
	}
	return cid, nil
}

func (s *lessonService) findLesson(ctx context.Context, courseID uuid.UUID, lessonID string) (*Lesson, error) {
	lid, err := uuid.Parse(lessonID)
	if err != nil {
		return nil, apperr.Validation("invalid lesson id")
	}
	l, err := s.repo.FindByID(lid)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to fetch lesson")
		return nil, err
	}
	if l == nil || l.CourseID != courseID {
		return nil, apperr.NotFound("lesson not found")
	}
	return l, nil
}

func parseCourseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid course id")
	}
	return parsed, nil
}
