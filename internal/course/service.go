package course

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

// MediaRefLister reports the media-host public ids referenced by a course's
// children, so a cascade delete can release them after the rows are gone.
type MediaRefLister interface {
	MediaPublicIDs(courseID uuid.UUID) ([]string, error)
}

type CourseService interface {
	CreateCourse(ctx context.Context, req CreateCourseRequest, imageName string, image []byte) (*Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	ListCourses(ctx context.Context) ([]*Course, error)
	ListInstructorCourses(ctx context.Context) ([]*Course, error)
	UpdateCourse(ctx context.Context, id string, req UpdateCourseRequest) (*Course, error)
	UpdateCourseImage(ctx context.Context, id string, imageName string, image []byte) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
	CountCourses(ctx context.Context) (int64, error)
	RateCourse(ctx context.Context, id string, req RateCourseRequest) (*Course, error)
}

type courseService struct {
	repo     CourseRepository
	uploader media.Uploader
	access   *authz.CourseAccess
	lessons  MediaRefLister
}

func NewService(repo CourseRepository, uploader media.Uploader, access *authz.CourseAccess, lessons MediaRefLister) CourseService {
	return &courseService{
		repo:     repo,
		uploader: uploader,
		access:   access,
		lessons:  lessons,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req CreateCourseRequest, imageName string, image []byte) (*Course, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return nil, err
	}

	asset, err := s.uploader.Upload(ctx, imageName, image)
	if err != nil {
		return nil, err
	}

	c := &Course{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      Category(req.Category),
		Price:         req.Price,
		Duration:      req.Duration,
		ImageURL:      asset.URL,
		ImagePublicID: asset.PublicID,
		InstructorID:  actor.ID,
	}

	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Failed to create course")
		return nil, err
	}

	log.WithField("course_id", c.ID).Info("Course created")
	return c, nil
}

func (s *courseService) GetCourse(ctx context.Context, id string) (*Course, error) {
	courseID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.findCourse(ctx, courseID)
}

func (s *courseService) ListCourses(ctx context.Context) ([]*Course, error) {
	return s.repo.FindAll()
}

func (s *courseService) ListInstructorCourses(ctx context.Context) ([]*Course, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return nil, err
	}
	return s.repo.FindByInstructor(actor.ID)
}

func (s *courseService) UpdateCourse(ctx context.Context, id string, req UpdateCourseRequest) (*Course, error) {
	log := config.WithContext(ctx)

	c, actor, err := s.resolveOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = Category(*req.Category)
	}
	if req.Price != nil {
		c.Price = *req.Price
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	// InstructorID is immutable after creation; no request field maps to it.

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update course")
		return nil, err
	}

	log.WithFields(map[string]interface{}{"course_id": c.ID, "actor_id": actor.ID}).Info("Course updated")
	return c, nil
}

func (s *courseService) UpdateCourseImage(ctx context.Context, id string, imageName string, image []byte) (*Course, error) {
	log := config.WithContext(ctx)

	c, _, err := s.resolveOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	asset, err := s.uploader.Upload(ctx, imageName, image)
	if err != nil {
		return nil, err
	}

	oldID := c.ImagePublicID
	c.ImageURL = asset.URL
	c.ImagePublicID = asset.PublicID
	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to store course image reference")
		return nil, err
	}

	if oldID != "" {
		if err := s.uploader.Remove(ctx, oldID); err != nil {
			log.WithError(err).Warn("Failed to release replaced course image")
		}
	}

	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	c, _, err := s.resolveOwned(ctx, id)
	if err != nil {
		return err
	}

	// Collect remote media references before the rows disappear.
	publicIDs, err := s.lessons.MediaPublicIDs(c.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list course media before delete")
		return err
	}
	if c.ImagePublicID != "" {
		publicIDs = append(publicIDs, c.ImagePublicID)
	}

	if err := s.repo.Delete(c.ID); err != nil {
		log.WithError(err).Error("Failed to delete course")
		return err
	}

	// Remote release happens after the commit and is best-effort: Remove is
	// idempotent, so a failed release can be retried without harm.
	for _, publicID := range publicIDs {
		if err := s.uploader.Remove(ctx, publicID); err != nil {
			log.WithError(err).WithField("public_id", publicID).Warn("Failed to release media for deleted course")
		}
	}

	log.WithField("course_id", c.ID).Info("Course deleted")
	return nil
}

func (s *courseService) CountCourses(ctx context.Context) (int64, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return 0, err
	}
	return s.repo.Count()
}

func (s *courseService) RateCourse(ctx context.Context, id string, req RateCourseRequest) (*Course, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	courseID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(ctx, actor, courseID); err != nil {
		return nil, err
	}

	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var ratings []Rating
	if len(c.Ratings) > 0 {
		if err := json.Unmarshal(c.Ratings, &ratings); err != nil {
			log.WithError(err).Error("Corrupt ratings payload")
			return nil, err
		}
	}

	updated := false
	for i := range ratings {
		if ratings[i].UserID == actor.ID {
			ratings[i].Rating = req.Rating
			ratings[i].Review = req.Review
			updated = true
			break
		}
	}
	if !updated {
		ratings = append(ratings, Rating{UserID: actor.ID, Rating: req.Rating, Review: req.Review})
	}

	raw, err := json.Marshal(ratings)
	if err != nil {
		return nil, err
	}
	c.Ratings = datatypes.JSON(raw)

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to store course rating")
		return nil, err
	}
	return c, nil
}

func (s *courseService) resolveOwned(ctx context.Context, id string) (*Course, authz.Actor, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, authz.Actor{}, err
	}
	courseID, err := parseID(id)
	if err != nil {
		return nil, authz.Actor{}, err
	}
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, authz.Actor{}, err
	}
	if err := authz.OwnsOrAdmin(actor, c.InstructorID); err != nil {
		return nil, authz.Actor{}, err
	}
	return c, actor, nil
}

func (s *courseService) findCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to fetch course")
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("course not found")
	}
	return c, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid course id")
	}
	return parsed, nil
}
