package domain

import "time"

type User struct {
	ID                         string
	Username                   string
	FirstName                  string
	LastName                   string
	Email                      string
	PasswordHash               string
	IsVerified                 bool
	UserType                   string
	VerificationToken          *string
	VerificationTokenExpiresAt *time.Time
	ResetPasswordToken         *string
	ResetPasswordExpiresAt     *time.Time
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// UserSession binds a user to their current refresh token. At most one
// session row exists per user; every new login or refresh overwrites it.
type UserSession struct {
	ID           string
	UserID       string
	RefreshToken string
	IPAddress    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
