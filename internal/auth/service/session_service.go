package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/platformcore/auth-service/internal/auth/domain"
	autherror "github.com/platformcore/auth-service/internal/errors"
)

// SessionService manages the single session record per user and issues the
// access/refresh token pair bound to it.
type SessionService struct {
	userRepo     domain.UserRepository
	sessionRepo  domain.SessionRepository
	tokenService TokenGenerator
}

func NewSessionService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository,
	tokenService TokenGenerator) *SessionService {
	return &SessionService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
	}
}

// CreateOrUpdateSession mints a fresh token pair for the user and writes it
// to their session row, creating the row if this is the user's first
// session. The write is a single upsert keyed on user id, so there is never
// more than one session per user and repeated calls keep the same session
// id. The old refresh token is overwritten and becomes unusable.
func (s *SessionService) CreateOrUpdateSession(ctx context.Context, userID,
	ipAddress string) (*domain.UserSession, string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", autherror.ErrUserNotFound
	}

	accessToken, refreshToken, refreshExpiresAt, err := s.tokenService.Generate(user.ID, user.UserType)
	if err != nil {
		return nil, "", err
	}

	session, err := s.sessionRepo.Upsert(ctx, &domain.UserSession{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		IPAddress:    ipAddress,
		ExpiresAt:    refreshExpiresAt,
	})
	if err != nil {
		return nil, "", err
	}

	return session, accessToken, nil
}

// FindSessionByRefreshToken resolves a session from the refresh token it
// currently holds. Tokens replaced by a later CreateOrUpdateSession call no
// longer match any row and come back as ErrRefreshTokenNotFound.
func (s *SessionService) FindSessionByRefreshToken(ctx context.Context,
	refreshToken string) (*domain.UserSession, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	return session, nil
}

// DeleteSessionByID removes the session record. Deleting an absent id is a no-op.
func (s *SessionService) DeleteSessionByID(ctx context.Context, sessionID string) error {
	return s.sessionRepo.DeleteByID(ctx, sessionID)
}

// DeleteSessionByUserID removes the user's session, failing with
// ErrSessionNotFound when the user has none.
func (s *SessionService) DeleteSessionByUserID(ctx context.Context, userID string) error {
	session, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return autherror.ErrSessionNotFound
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}
