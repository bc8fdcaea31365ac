package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
)

// Role is the fixed set of identities an actor can hold.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var allRoles = []Role{RoleStudent, RoleInstructor, RoleAdmin}

func (r Role) IsValid() bool {
	for _, v := range allRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Actor is the authenticated identity a request acts as.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// ActorFromContext resolves the session claims into an Actor. A missing or
// unparsable identity is an Unauthenticated failure, never a silent pass.
func ActorFromContext(ctx context.Context) (Actor, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return Actor{}, apperr.Unauthenticated("not authorized, no user")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Actor{}, apperr.Unauthenticated("not authorized, invalid user id")
	}
	return Actor{ID: id, Role: Role(claims.Role)}, nil
}

// The predicates below are the single decision point for every entry point
// that gates on role, ownership, or self-access. Handlers and services call
// these and nothing else; none of them re-derive the checks locally.

func IsAdminOrInstructor(actor Actor) error {
	if actor.Role == RoleAdmin || actor.Role == RoleInstructor {
		return nil
	}
	return apperr.Forbidden("not authorized, admin or instructor only")
}

func IsSelf(actor Actor, targetUserID uuid.UUID) error {
	if actor.ID == targetUserID {
		return nil
	}
	return apperr.Forbidden("not authorized, only the user themselves")
}

func IsSelfOrAdmin(actor Actor, targetUserID uuid.UUID) error {
	if actor.ID == targetUserID || actor.Role == RoleAdmin {
		return nil
	}
	return apperr.Forbidden("not authorized, only the user themselves or admin")
}

// OwnsOrAdmin allows admins and the owning instructor of the resource's
// course. Lessons, quizzes and questions resolve instructorID through their
// parent course before calling this.
func OwnsOrAdmin(actor Actor, instructorID uuid.UUID) error {
	if actor.Role == RoleAdmin || actor.ID == instructorID {
		return nil
	}
	return apperr.Forbidden("access denied, you are not allowed")
}
