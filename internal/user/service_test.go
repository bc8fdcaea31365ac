package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*User{}}
}

func (f *fakeUserRepo) Create(u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll() ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(u *User) error {
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Exists(_ context.Context, userID string) (bool, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}
	_, ok := f.users[id]
	return ok, nil
}

type fakeUploader struct {
	removed []string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, _ []byte) (media.Asset, error) {
	return media.Asset{URL: "https://media.example.com/" + filename, PublicID: filename}, nil
}

func (f *fakeUploader) Remove(_ context.Context, publicID string) error {
	f.removed = append(f.removed, publicID)
	return nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

func actorContext(userID uuid.UUID, role authz.Role) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   string(role),
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToStudent", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewService(repo, &fakeUploader{}, &fakeMailer{})

		err := service.Register(ctx, RegisterRequest{
			UserName: "ada",
			Email:    "ada@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("expected registration to succeed, got %v", err)
		}

		u, _ := repo.FindByEmail("ada@example.com")
		if u == nil {
			t.Fatal("expected user to be stored")
		}
		if u.Role != authz.RoleStudent {
			t.Errorf("expected default student role, got %s", u.Role)
		}
		if u.Password == "secret123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("DuplicateEmailIsConflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewService(repo, &fakeUploader{}, &fakeMailer{})

		req := RegisterRequest{UserName: "ada", Email: "ada@example.com", Password: "secret123"}
		if err := service.Register(ctx, req); err != nil {
			t.Fatalf("first registration should succeed, got %v", err)
		}
		err := service.Register(ctx, req)
		if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("InvalidRoleRejected", func(t *testing.T) {
		service := NewService(newFakeUserRepo(), &fakeUploader{}, &fakeMailer{})

		err := service.Register(ctx, RegisterRequest{
			UserName: "ada",
			Email:    "ada@example.com",
			Password: "secret123",
			Role:     "superuser",
		})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth.Init()
	ctx := context.Background()

	repo := newFakeUserRepo()
	service := NewService(repo, &fakeUploader{}, &fakeMailer{})
	if err := service.Register(ctx, RegisterRequest{
		UserName: "ada", Email: "ada@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("registration should succeed, got %v", err)
	}

	t.Run("ValidCredentials", func(t *testing.T) {
		resp, err := service.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a session token")
		}
		if resp.Role != authz.RoleStudent {
			t.Errorf("expected student role, got %s", resp.Role)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
		if apperr.KindOf(err) != apperr.KindUnauthenticated {
			t.Errorf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		if apperr.KindOf(err) != apperr.KindUnauthenticated {
			t.Errorf("expected unauthenticated, got %v", err)
		}
	})
}

func TestProfileAccess(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, &fakeUploader{}, &fakeMailer{})

	target := &User{ID: uuid.New(), UserName: "ada", Email: "ada@example.com", Role: authz.RoleStudent}
	repo.users[target.ID] = target

	t.Run("SelfReadsOwnProfile", func(t *testing.T) {
		u, err := service.GetProfile(actorContext(target.ID, authz.RoleStudent), target.ID.String())
		if err != nil {
			t.Fatalf("expected profile, got %v", err)
		}
		if u.ID != target.ID {
			t.Errorf("unexpected profile: %s", u.ID)
		}
	})

	t.Run("AdminReadsAnyProfile", func(t *testing.T) {
		if _, err := service.GetProfile(actorContext(uuid.New(), authz.RoleAdmin), target.ID.String()); err != nil {
			t.Fatalf("expected admin read, got %v", err)
		}
	})

	t.Run("StrangerDenied", func(t *testing.T) {
		_, err := service.GetProfile(actorContext(uuid.New(), authz.RoleStudent), target.ID.String())
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
	})

	t.Run("ListUsersIsAdminOnly", func(t *testing.T) {
		_, err := service.ListUsers(actorContext(target.ID, authz.RoleStudent))
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden, got %v", err)
		}
		if _, err := service.ListUsers(actorContext(uuid.New(), authz.RoleAdmin)); err != nil {
			t.Errorf("expected admin list, got %v", err)
		}
	})

	t.Run("OnlySelfUpdates", func(t *testing.T) {
		name := "ada lovelace"
		_, err := service.UpdateProfile(actorContext(uuid.New(), authz.RoleAdmin), target.ID.String(), UpdateProfileRequest{UserName: &name})
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("expected forbidden even for admin, got %v", err)
		}

		u, err := service.UpdateProfile(actorContext(target.ID, authz.RoleStudent), target.ID.String(), UpdateProfileRequest{UserName: &name})
		if err != nil {
			t.Fatalf("expected update to succeed, got %v", err)
		}
		if u.UserName != name {
			t.Errorf("expected updated name, got %s", u.UserName)
		}
	})
}

func TestDeleteProfileReleasesPhoto(t *testing.T) {
	repo := newFakeUserRepo()
	uploader := &fakeUploader{}
	service := NewService(repo, uploader, &fakeMailer{})

	target := &User{
		ID: uuid.New(), UserName: "ada", Email: "ada@example.com",
		Role: authz.RoleStudent, ProfilePhotoID: "photo-123",
	}
	repo.users[target.ID] = target

	if err := service.DeleteProfile(actorContext(target.ID, authz.RoleStudent), target.ID.String()); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Error("expected user to be removed")
	}
	if len(uploader.removed) != 1 || uploader.removed[0] != "photo-123" {
		t.Errorf("expected photo release, got %v", uploader.removed)
	}
}

func TestPasswordReset(t *testing.T) {
	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	service := NewService(repo, &fakeUploader{}, mail)
	ctx := context.Background()

	target := &User{ID: uuid.New(), UserName: "ada", Email: "ada@example.com", Role: authz.RoleStudent}
	repo.users[target.ID] = target

	t.Run("SendStoresAndMailsCode", func(t *testing.T) {
		if err := service.SendResetCode(ctx, target.Email); err != nil {
			t.Fatalf("expected code to be sent, got %v", err)
		}
		if target.ResetCode == nil || len(*target.ResetCode) != 6 {
			t.Fatalf("expected a stored 6-digit code, got %v", target.ResetCode)
		}
		if len(mail.sent) != 1 || mail.sent[0] != target.Email {
			t.Errorf("expected mail to %s, got %v", target.Email, mail.sent)
		}
	})

	t.Run("VerifyAcceptsFreshCode", func(t *testing.T) {
		if err := service.VerifyResetCode(ctx, target.Email, *target.ResetCode); err != nil {
			t.Errorf("expected fresh code to verify, got %v", err)
		}
	})

	t.Run("VerifyRejectsWrongCode", func(t *testing.T) {
		err := service.VerifyResetCode(ctx, target.Email, "000000")
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("VerifyRejectsExpiredCode", func(t *testing.T) {
		expired := time.Now().Add(-time.Minute)
		target.ResetCodeExpires = &expired

		err := service.VerifyResetCode(ctx, target.Email, *target.ResetCode)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("ResetRehashesAndClearsCode", func(t *testing.T) {
		if err := service.ResetPassword(ctx, ResetPasswordRequest{
			Email:           target.Email,
			Password:        "newsecret",
			ConfirmPassword: "newsecret",
		}); err != nil {
			t.Fatalf("expected reset to succeed, got %v", err)
		}
		if target.ResetCode != nil || target.ResetCodeExpires != nil {
			t.Error("expected reset code to be cleared")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(target.Password), []byte("newsecret")); err != nil {
			t.Error("expected the new password to verify")
		}
	})

	t.Run("ResetRejectsMismatch", func(t *testing.T) {
		err := service.ResetPassword(ctx, ResetPasswordRequest{
			Email:           target.Email,
			Password:        "one",
			ConfirmPassword: "two",
		})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
