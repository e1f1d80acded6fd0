package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/platformcore/auth-service/internal/auth/domain"
)

type PostgresSessionRepository struct {
	db PgxIface
}

func NewPostgresSessionRepository(db PgxIface) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Upsert writes the single session row for a user in one atomic statement.
// A concurrent call for the same user can never produce a second row; the
// existing row keeps its id and gets the new token, IP and expiry.
func (r *PostgresSessionRepository) Upsert(ctx context.Context,
	session *domain.UserSession) (*domain.UserSession, error) {
	query := `
		INSERT INTO user_sessions (id, user_id, refresh_token, ip_address, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			refresh_token = EXCLUDED.refresh_token,
			ip_address = EXCLUDED.ip_address,
			expires_at = EXCLUDED.expires_at,
			updated_at = now()
		RETURNING id, user_id, refresh_token, ip_address, expires_at, created_at, updated_at;
	`
	row := r.db.QueryRow(ctx, query,
		session.ID, session.UserID, session.RefreshToken, session.IPAddress, session.ExpiresAt)

	var saved domain.UserSession
	err := row.Scan(&saved.ID, &saved.UserID, &saved.RefreshToken, &saved.IPAddress,
		&saved.ExpiresAt, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user session: %w", err)
	}

	return &saved, nil
}

func (r *PostgresSessionRepository) GetByUserID(ctx context.Context,
	userID string) (*domain.UserSession, error) {
	query := `
		SELECT id, user_id, refresh_token, ip_address, expires_at, created_at, updated_at
		FROM user_sessions
		WHERE user_id = $1
		LIMIT 1;
	`

	return r.scanSession(r.db.QueryRow(ctx, query, userID))
}

func (r *PostgresSessionRepository) GetByRefreshToken(ctx context.Context,
	refreshToken string) (*domain.UserSession, error) {
	query := `
		SELECT id, user_id, refresh_token, ip_address, expires_at, created_at, updated_at
		FROM user_sessions
		WHERE refresh_token = $1
		LIMIT 1;
	`

	return r.scanSession(r.db.QueryRow(ctx, query, refreshToken))
}

// DeleteByID is idempotent: deleting an id that no longer exists is not an error.
func (r *PostgresSessionRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_sessions WHERE id = $1`, id)

	return err
}

func (r *PostgresSessionRepository) scanSession(row pgx.Row) (*domain.UserSession, error) {
	var session domain.UserSession
	err := row.Scan(&session.ID, &session.UserID, &session.RefreshToken, &session.IPAddress,
		&session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user session: %w", err)
	}

	return &session, nil
}
