package dto

type SetPasswordInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type PasswordResetRequestInput struct {
	Email string `json:"email"`
}

type VerifyResetTokenInput struct {
	Email      string `json:"email"`
	ResetToken string `json:"resetToken"`
}
