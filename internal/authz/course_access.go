package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
)

// CourseResolver yields the owning instructor of a course.
type CourseResolver interface {
	InstructorID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error)
}

// EnrollmentChecker reports whether the user holds a paid enrollment in the
// course.
type EnrollmentChecker interface {
	HasPaidEnrollment(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

// CourseAccess decides whether an actor may consume paid course content
// (lessons, quizzes, enrollment details). Allowed: admins, the course's own
// instructor, and students with a completed-payment enrollment. Instructors
// of other courses are denied; ownership of one course grants nothing on
// another.
type CourseAccess struct {
	courses     CourseResolver
	enrollments EnrollmentChecker
}

func NewCourseAccess(courses CourseResolver, enrollments EnrollmentChecker) *CourseAccess {
	return &CourseAccess{courses: courses, enrollments: enrollments}
}

func (a *CourseAccess) Check(ctx context.Context, actor Actor, courseID uuid.UUID) error {
	if actor.Role == RoleAdmin {
		return nil
	}

	instructorID, err := a.courses.InstructorID(ctx, courseID)
	if err != nil {
		return err
	}
	if actor.ID == instructorID {
		return nil
	}

	enrolled, err := a.enrollments.HasPaidEnrollment(ctx, actor.ID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}

	return apperr.Forbidden("not authorized to access this course")
}
