package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/login", h.Login)
	app.Post("/user/set-password", h.SetPassword)
	app.Post("/request-password-reset", h.RequestPasswordReset)
	app.Post("/verify-password-resettoken", h.VerifyPasswordResetToken)
	app.Post("/refresh", h.Refresh)
	app.Delete("/session", h.Logout)
}
