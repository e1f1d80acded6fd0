package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/platformcore/auth-service/config"
	"github.com/platformcore/auth-service/internal/auth/domain"
	"github.com/platformcore/auth-service/internal/auth/dto"
	"github.com/platformcore/auth-service/internal/auth/service"
	autherror "github.com/platformcore/auth-service/internal/errors"
	"github.com/platformcore/auth-service/internal/mocks"
	authconstant "github.com/platformcore/auth-service/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userServiceMocks struct {
	userRepo     *mocks.MockUserRepository
	sessionRepo  *mocks.MockSessionRepository
	tokenService *mocks.MockTokenGenerator
}

func newUserService(ctrl *gomock.Controller, cfg *config.Config) (*service.UserService, userServiceMocks) {
	m := userServiceMocks{
		userRepo:     mocks.NewMockUserRepository(ctrl),
		sessionRepo:  mocks.NewMockSessionRepository(ctrl),
		tokenService: mocks.NewMockTokenGenerator(ctrl),
	}
	sessionService := service.NewSessionService(m.userRepo, m.sessionRepo, m.tokenService)

	return service.NewUserService(m.userRepo, sessionService, m.tokenService, cfg), m
}

func TestUserService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	user := &domain.User{
		ID:           "user-id",
		Email:        "test@example.com",
		PasswordHash: string(hashedPassword),
		UserType:     "User",
	}

	input := dto.LoginInput{
		Email:     user.Email,
		Password:  password,
		IPAddress: "192.168.1.1",
	}

	expiresAt := time.Now().Add(24 * time.Hour)

	// Mock expectations
	m.userRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(user, nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	m.tokenService.EXPECT().Generate(user.ID, user.UserType).
		Return("access-token", "refresh-token", expiresAt, nil)
	m.sessionRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *domain.UserSession) (*domain.UserSession, error) {
			return sess, nil
		})
	m.tokenService.EXPECT().GetAccessTokenExpiry().Return(30 * time.Minute)

	response, err := s.Login(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, authconstant.DefaultTokenType, response.TokenType)
	assert.Equal(t, int((30 * time.Minute).Seconds()), response.ExpiresIn)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	user := &domain.User{ID: "user-id", Email: "test@example.com", PasswordHash: string(hashedPassword)}

	m.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	response, err := s.Login(context.Background(), dto.LoginInput{Email: user.Email, Password: "wrong"})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	assert.Nil(t, response)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	m.userRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	response, err := s.Login(context.Background(),
		dto.LoginInput{Email: "nobody@example.com", Password: "password"})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	assert.Nil(t, response)
}

func TestUserService_SetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	user := &domain.User{ID: "user-id", Email: "test@example.com"}
	input := dto.SetPasswordInput{Email: user.Email, Password: "new-password", ConfirmPassword: "new-password"}

	t.Run("success", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		m.userRepo.EXPECT().UpdatePassword(gomock.Any(), user.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, hash string) error {
				// Stored hash must verify against the new password.
				return bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password))
			})
		m.userRepo.EXPECT().ClearResetPasswordToken(gomock.Any(), user.ID).Return(nil)

		assert.NoError(t, s.SetPassword(context.Background(), input))
	})

	t.Run("user not found", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(nil, nil)

		err := s.SetPassword(context.Background(), input)
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})

	t.Run("clear token failure is non-fatal", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		m.userRepo.EXPECT().UpdatePassword(gomock.Any(), user.ID, gomock.Any()).Return(nil)
		m.userRepo.EXPECT().ClearResetPasswordToken(gomock.Any(), user.ID).Return(errors.New("db error"))

		assert.NoError(t, s.SetPassword(context.Background(), input))
	})
}

func TestUserService_RequestPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{ResetExpiryMin: 60})

	user := &domain.User{ID: "user-id", Email: "test@example.com"}

	t.Run("success", func(t *testing.T) {
		var storedToken string
		before := time.Now()

		m.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		m.userRepo.EXPECT().SetResetPasswordToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, token string, expiresAt time.Time) error {
				storedToken = token
				assert.True(t, expiresAt.After(before.Add(59*time.Minute)))
				assert.True(t, expiresAt.Before(before.Add(61*time.Minute)))
				return nil
			})

		token, err := s.RequestPasswordReset(context.Background(), user.Email)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, storedToken, token)
	})

	t.Run("user not found", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		_, err := s.RequestPasswordReset(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})
}

func TestUserService_VerifyPasswordResetToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	email := "test@example.com"
	token := "reset-token-abc"

	userWith := func(token string, expiresAt time.Time) *domain.User {
		return &domain.User{
			ID:                     "user-id",
			Email:                  email,
			ResetPasswordToken:     &token,
			ResetPasswordExpiresAt: &expiresAt,
		}
	}

	t.Run("valid token", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), email).
			Return(userWith(token, time.Now().Add(time.Hour)), nil)

		err := s.VerifyPasswordResetToken(context.Background(),
			dto.VerifyResetTokenInput{Email: email, ResetToken: token})
		assert.NoError(t, err)
	})

	t.Run("wrong token", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), email).
			Return(userWith(token, time.Now().Add(time.Hour)), nil)

		err := s.VerifyPasswordResetToken(context.Background(),
			dto.VerifyResetTokenInput{Email: email, ResetToken: "other-token"})
		assert.ErrorIs(t, err, autherror.ErrResetTokenNotFound)
	})

	t.Run("no token issued", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), email).
			Return(&domain.User{ID: "user-id", Email: email}, nil)

		err := s.VerifyPasswordResetToken(context.Background(),
			dto.VerifyResetTokenInput{Email: email, ResetToken: token})
		assert.ErrorIs(t, err, autherror.ErrResetTokenNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), email).
			Return(userWith(token, time.Now().Add(-time.Minute)), nil)

		err := s.VerifyPasswordResetToken(context.Background(),
			dto.VerifyResetTokenInput{Email: email, ResetToken: token})
		assert.ErrorIs(t, err, autherror.ErrResetTokenExpired)
	})

	t.Run("user not found", func(t *testing.T) {
		m.userRepo.EXPECT().GetByEmail(gomock.Any(), email).Return(nil, nil)

		err := s.VerifyPasswordResetToken(context.Background(),
			dto.VerifyResetTokenInput{Email: email, ResetToken: token})
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})
}

func TestUserService_Refresh_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	user := &domain.User{ID: "user-id", UserType: "User"}
	session := &domain.UserSession{ID: "session-1", UserID: user.ID, RefreshToken: "old-refresh"}
	input := dto.RefreshInput{RefreshToken: "old-refresh", IPAddress: "10.0.0.1"}

	m.sessionRepo.EXPECT().GetByRefreshToken(gomock.Any(), "old-refresh").Return(session, nil)
	m.tokenService.EXPECT().VerifyRefreshToken("old-refresh").Return(&service.JWTCustomClaims{}, nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	m.tokenService.EXPECT().Generate(user.ID, user.UserType).
		Return("new-access", "new-refresh", time.Now().Add(24*time.Hour), nil)
	m.sessionRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *domain.UserSession) (*domain.UserSession, error) {
			assert.Equal(t, "new-refresh", sess.RefreshToken)
			assert.Equal(t, "10.0.0.1", sess.IPAddress)
			return sess, nil
		})
	m.tokenService.EXPECT().GetAccessTokenExpiry().Return(30 * time.Minute)

	response, err := s.Refresh(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "new-access", response.AccessToken)
	assert.Equal(t, "new-refresh", response.RefreshToken)
}

func TestUserService_Refresh_RotatedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	m.sessionRepo.EXPECT().GetByRefreshToken(gomock.Any(), "stale-refresh").Return(nil, nil)

	response, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "stale-refresh"})

	assert.ErrorIs(t, err, autherror.ErrRefreshTokenNotFound)
	assert.Nil(t, response)
}

func TestUserService_Refresh_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	session := &domain.UserSession{ID: "session-1", UserID: "user-id", RefreshToken: "expired-refresh"}

	m.sessionRepo.EXPECT().GetByRefreshToken(gomock.Any(), "expired-refresh").Return(session, nil)
	m.tokenService.EXPECT().VerifyRefreshToken("expired-refresh").
		Return(nil, errors.New("token is expired"))

	response, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "expired-refresh"})

	assert.ErrorIs(t, err, autherror.ErrRefreshTokenExpired)
	assert.Nil(t, response)
}

func TestUserService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newUserService(ctrl, &config.Config{})

	t.Run("success", func(t *testing.T) {
		session := &domain.UserSession{ID: "session-1", UserID: "user-id"}
		m.sessionRepo.EXPECT().GetByUserID(gomock.Any(), "user-id").Return(session, nil)
		m.sessionRepo.EXPECT().DeleteByID(gomock.Any(), session.ID).Return(nil)

		assert.NoError(t, s.Logout(context.Background(), "user-id"))
	})

	t.Run("no session", func(t *testing.T) {
		m.sessionRepo.EXPECT().GetByUserID(gomock.Any(), "user-id").Return(nil, nil)

		err := s.Logout(context.Background(), "user-id")
		assert.ErrorIs(t, err, autherror.ErrSessionNotFound)
	})
}
