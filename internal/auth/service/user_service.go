package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/platformcore/auth-service/config"
	"github.com/platformcore/auth-service/internal/auth/domain"
	"github.com/platformcore/auth-service/internal/auth/dto"
	autherror "github.com/platformcore/auth-service/internal/errors"
	authconstant "github.com/platformcore/auth-service/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo       domain.UserRepository
	sessionService *SessionService
	tokenService   TokenGenerator
	cfg            *config.Config
}

func NewUserService(userRepo domain.UserRepository, sessionService *SessionService,
	tokenService TokenGenerator, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:       userRepo,
		sessionService: sessionService,
		tokenService:   tokenService,
		cfg:            cfg,
	}
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	session, accessToken, err := s.sessionService.CreateOrUpdateSession(ctx, user.ID, input.IPAddress)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    authconstant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// SetPassword stores a freshly hashed password and retires any outstanding
// reset token for the account.
func (s *UserService) SetPassword(ctx context.Context, input dto.SetPasswordInput) error {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	if err := s.userRepo.ClearResetPasswordToken(ctx, user.ID); err != nil {
		log.Printf("warn: failed to clear reset token for user %s: %v", user.ID, err)
	}

	return nil
}

// RequestPasswordReset issues a reset token for the account and returns it
// so the caller can deliver it out of band.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", autherror.ErrUserNotFound
	}

	resetToken := uuid.NewString()
	expiresAt := time.Now().Add(time.Duration(s.cfg.ResetExpiryMin) * time.Minute)

	if err := s.userRepo.SetResetPasswordToken(ctx, user.ID, resetToken, expiresAt); err != nil {
		return "", err
	}

	return resetToken, nil
}

func (s *UserService) VerifyPasswordResetToken(ctx context.Context, input dto.VerifyResetTokenInput) error {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != input.ResetToken {
		return autherror.ErrResetTokenNotFound
	}

	if user.ResetPasswordExpiresAt == nil || time.Now().After(*user.ResetPasswordExpiresAt) {
		return autherror.ErrResetTokenExpired
	}

	return nil
}

// Refresh rotates the caller's session: the presented refresh token must
// still be the one held by a session row and must verify against the
// refresh secret. Rotation overwrites it, so a token can be used this way
// only once.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	session, err := s.sessionService.FindSessionByRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokenService.VerifyRefreshToken(input.RefreshToken); err != nil {
		return nil, autherror.ErrRefreshTokenExpired
	}

	newSession, accessToken, err := s.sessionService.CreateOrUpdateSession(ctx, session.UserID, input.IPAddress)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newSession.RefreshToken,
		TokenType:    authconstant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.sessionService.DeleteSessionByUserID(ctx, userID)
}
