package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/mailer"
	"github.com/learnhub-dev/learnhub/internal/media"

	"github.com/learnhub-dev/learnhub/internal/auth"
)

const resetCodeTTL = 10 * time.Minute

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	DeleteProfile(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)
	UploadProfilePhoto(ctx context.Context, filename string, content []byte) (media.Asset, error)
	SendResetCode(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userService struct {
	repo     UserRepository
	uploader media.Uploader
	mail     mailer.Mailer
}

func NewService(repo UserRepository, uploader media.Uploader, mail mailer.Mailer) UserService {
	return &userService{repo: repo, uploader: uploader, mail: mail}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) error {
	log := config.WithContext(ctx)

	role := authz.Role(req.Role)
	if req.Role == "" {
		role = authz.RoleStudent
	}
	if !role.IsValid() {
		return apperr.Validation("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return err
	}

	u := &User{
		ID:       uuid.New(),
		UserName: req.UserName,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}

	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("user already exists")
		}
		log.WithError(err).Error("Failed to create user")
		return err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user for login")
		return nil, err
	}
	if u == nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), config.Get().TokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return &LoginResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
		Token:    token,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*User, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}
	if err := authz.IsSelfOrAdmin(actor, targetID); err != nil {
		return nil, err
	}
	return s.findUser(ctx, targetID)
}

func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != authz.RoleAdmin {
		return nil, apperr.Forbidden("not authorized, admin only")
	}
	return s.repo.FindAll()
}

func (s *userService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}
	if err := authz.IsSelf(actor, targetID); err != nil {
		return nil, err
	}

	u, err := s.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.UserName != nil {
		u.UserName = *req.UserName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already in use")
		}
		log.WithError(err).Error("Failed to update user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Profile updated")
	return u, nil
}

func (s *userService) DeleteProfile(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	targetID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid user id")
	}
	if err := authz.IsSelfOrAdmin(actor, targetID); err != nil {
		return err
	}

	u, err := s.findUser(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(u.ID); err != nil {
		log.WithError(err).Error("Failed to delete user")
		return err
	}

	if u.ProfilePhotoID != "" {
		if err := s.uploader.Remove(ctx, u.ProfilePhotoID); err != nil {
			log.WithError(err).Warn("Failed to release profile photo after account deletion")
		}
	}

	log.WithField("user_id", u.ID).Info("User deleted")
	return nil
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if err := authz.IsAdminOrInstructor(actor); err != nil {
		return 0, err
	}
	return s.repo.Count()
}

func (s *userService) UploadProfilePhoto(ctx context.Context, filename string, content []byte) (media.Asset, error) {
	log := config.WithContext(ctx)

	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return media.Asset{}, err
	}

	u, err := s.findUser(ctx, actor.ID)
	if err != nil {
		return media.Asset{}, err
	}

	asset, err := s.uploader.Upload(ctx, filename, content)
	if err != nil {
		return media.Asset{}, err
	}

	oldID := u.ProfilePhotoID
	u.ProfilePhotoURL = asset.URL
	u.ProfilePhotoID = asset.PublicID
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to store profile photo reference")
		return media.Asset{}, err
	}

	if oldID != "" {
		if err := s.uploader.Remove(ctx, oldID); err != nil {
			log.WithError(err).Warn("Failed to release replaced profile photo")
		}
	}

	log.WithField("user_id", u.ID).Info("Profile photo updated")
	return asset, nil
}

func (s *userService) SendResetCode(ctx context.Context, email string) error {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(resetCodeTTL)

	u.ResetCode = &code
	u.ResetCodeExpires = &expiry
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to store reset code")
		return err
	}

	if err := s.mail.Send(ctx, u.Email, "Your Reset Code", mailer.ResetCodeBody(code)); err != nil {
		return err
	}

	log.WithField("user_id", u.ID).Info("Reset code sent")
	return nil
}

func (s *userService) VerifyResetCode(ctx context.Context, email, code string) error {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if u == nil || u.ResetCode == nil || *u.ResetCode != code ||
		u.ResetCodeExpires == nil || u.ResetCodeExpires.Before(time.Now()) {
		return apperr.Validation("invalid or expired code")
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	log := config.WithContext(ctx)

	if req.Password != req.ConfirmPassword {
		return apperr.Validation("passwords do not match")
	}

	u, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hash)
	u.ResetCode = nil
	u.ResetCodeExpires = nil
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to reset password")
		return err
	}

	log.WithField("user_id", u.ID).Info("Password reset")
	return nil
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to fetch user")
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
