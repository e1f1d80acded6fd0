package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/platformcore/auth-service/internal/auth/domain"
)

// PgxIface is the subset of pgxpool.Pool the repositories use. pgxmock
// pools satisfy it too, which is what the repository tests rely on.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUserRepository struct {
	db PgxIface
}

func NewPostgresUserRepository(db PgxIface) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, first_name, last_name, email, password_hash,
		is_verified, user_type, verification_token, verification_token_expires_at,
		reset_password_token, reset_password_expires_at, created_at, updated_at`

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		LIMIT 1;
	`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1;
	`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, userID, passwordHash)

	return err
}

func (r *PostgresUserRepository) SetResetPasswordToken(ctx context.Context, userID, token string,
	expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $2, reset_password_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, userID, token, expiresAt)

	return err
}

func (r *PostgresUserRepository) ClearResetPasswordToken(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, userID)

	return err
}

func (r *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.IsVerified, &user.UserType,
		&user.VerificationToken, &user.VerificationTokenExpiresAt,
		&user.ResetPasswordToken, &user.ResetPasswordExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
