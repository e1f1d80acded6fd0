package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/platformcore/auth-service/internal/auth/domain UserRepository,SessionRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetResetPasswordToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ClearResetPasswordToken(ctx context.Context, userID string) error
}

type SessionRepository interface {
	Upsert(ctx context.Context, session *UserSession) (*UserSession, error)
	GetByUserID(ctx context.Context, userID string) (*UserSession, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*UserSession, error)
	DeleteByID(ctx context.Context, id string) error
}
