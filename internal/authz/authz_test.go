package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
)

func TestIsAdminOrInstructor(t *testing.T) {
	cases := []struct {
		name  string
		role  authz.Role
		allow bool
	}{
		{"Admin", authz.RoleAdmin, true},
		{"Instructor", authz.RoleInstructor, true},
		{"Student", authz.RoleStudent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.IsAdminOrInstructor(authz.Actor{ID: uuid.New(), Role: tc.role})
			if tc.allow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allow {
				if err == nil {
					t.Fatal("expected deny")
				}
				if apperr.KindOf(err) != apperr.KindForbidden {
					t.Errorf("expected Forbidden, got kind %v", apperr.KindOf(err))
				}
			}
		})
	}
}

func TestIsSelfOrAdmin(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("Self", func(t *testing.T) {
		if err := authz.IsSelfOrAdmin(authz.Actor{ID: self, Role: authz.RoleStudent}, self); err != nil {
			t.Fatalf("self should be allowed: %v", err)
		}
	})

	t.Run("Admin", func(t *testing.T) {
		if err := authz.IsSelfOrAdmin(authz.Actor{ID: other, Role: authz.RoleAdmin}, self); err != nil {
			t.Fatalf("admin should be allowed: %v", err)
		}
	})

	t.Run("OtherStudent", func(t *testing.T) {
		if err := authz.IsSelfOrAdmin(authz.Actor{ID: other, Role: authz.RoleStudent}, self); err == nil {
			t.Fatal("expected deny for unrelated student")
		}
	})
}

func TestOwnsOrAdmin(t *testing.T) {
	owner := uuid.New()

	t.Run("Owner", func(t *testing.T) {
		if err := authz.OwnsOrAdmin(authz.Actor{ID: owner, Role: authz.RoleInstructor}, owner); err != nil {
			t.Fatalf("owner should be allowed: %v", err)
		}
	})

	t.Run("Admin", func(t *testing.T) {
		if err := authz.OwnsOrAdmin(authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}, owner); err != nil {
			t.Fatalf("admin should be allowed: %v", err)
		}
	})

	t.Run("OtherInstructor", func(t *testing.T) {
		err := authz.OwnsOrAdmin(authz.Actor{ID: uuid.New(), Role: authz.RoleInstructor}, owner)
		if err == nil {
			t.Fatal("instructor of another course must be denied")
		}
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected Forbidden, got kind %v", apperr.KindOf(err))
		}
	})

	t.Run("Student", func(t *testing.T) {
		if err := authz.OwnsOrAdmin(authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}, owner); err == nil {
			t.Fatal("expected deny for student")
		}
	})
}

type fakeCourseResolver struct {
	instructorID uuid.UUID
	err          error
}

func (f *fakeCourseResolver) InstructorID(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return f.instructorID, f.err
}

type fakeEnrollmentChecker struct {
	paid bool
	err  error
}

func (f *fakeEnrollmentChecker) HasPaidEnrollment(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.paid, f.err
}

func TestCourseAccess(t *testing.T) {
	instructor := uuid.New()
	courseID := uuid.New()

	t.Run("Admin", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{instructorID: instructor}, &fakeEnrollmentChecker{})
		actor := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
		if err := access.Check(context.Background(), actor, courseID); err != nil {
			t.Fatalf("admin should bypass: %v", err)
		}
	})

	t.Run("OwnInstructor", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{instructorID: instructor}, &fakeEnrollmentChecker{})
		actor := authz.Actor{ID: instructor, Role: authz.RoleInstructor}
		if err := access.Check(context.Background(), actor, courseID); err != nil {
			t.Fatalf("course instructor should be allowed: %v", err)
		}
	})

	t.Run("ForeignInstructor", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{instructorID: instructor}, &fakeEnrollmentChecker{})
		actor := authz.Actor{ID: uuid.New(), Role: authz.RoleInstructor}
		err := access.Check(context.Background(), actor, courseID)
		if err == nil {
			t.Fatal("instructor of another course must not get content access")
		}
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected Forbidden, got kind %v", apperr.KindOf(err))
		}
	})

	t.Run("PaidStudent", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{instructorID: instructor}, &fakeEnrollmentChecker{paid: true})
		actor := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
		if err := access.Check(context.Background(), actor, courseID); err != nil {
			t.Fatalf("paid student should be allowed: %v", err)
		}
	})

	t.Run("UnpaidStudent", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{instructorID: instructor}, &fakeEnrollmentChecker{paid: false})
		actor := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
		if err := access.Check(context.Background(), actor, courseID); err == nil {
			t.Fatal("student without paid enrollment must be denied")
		}
	})

	t.Run("NotFoundPropagates", func(t *testing.T) {
		access := authz.NewCourseAccess(&fakeCourseResolver{err: apperr.NotFound("course not found")}, &fakeEnrollmentChecker{})
		actor := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
		err := access.Check(context.Background(), actor, courseID)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestActorFromContext(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-secret-for-tests")
	auth.Init()

	t.Run("NoClaims", func(t *testing.T) {
		_, err := authz.ActorFromContext(context.Background())
		if apperr.KindOf(err) != apperr.KindUnauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("ValidClaims", func(t *testing.T) {
		id := uuid.New()
		tokenStr, err := auth.GenerateJWT(id.String(), string(authz.RoleInstructor), time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}
		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed: %v", err)
		}

		actor, err := authz.ActorFromContext(auth.WithClaims(context.Background(), claims))
		if err != nil {
			t.Fatalf("ActorFromContext failed: %v", err)
		}
		if actor.ID != id || actor.Role != authz.RoleInstructor {
			t.Errorf("actor mismatch: %+v", actor)
		}
	})
}
