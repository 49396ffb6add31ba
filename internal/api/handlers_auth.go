package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/services"
)

type pinRequest struct {
	PIN string `json:"pin" form:"pin"`
}

type changePINRequest struct {
	CurrentPIN string `json:"currentPin" form:"currentPin"`
	NewPIN     string `json:"newPin" form:"newPin"`
}

func (handler *Handler) AuthStatus(c *fiber.Ctx) error {
	hasPIN, err := handler.services.Auth.HasPIN()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"hasPin":        hasPIN,
		"authenticated": handler.isAuthenticated(c),
	})
}

func (handler *Handler) SetupPIN(c *fiber.Ctx) error {
	request := pinRequest{}
	if err := c.BodyParser(&request); err != nil {
		return handler.respondInvalidInput(c)
	}

	result, err := handler.services.Auth.SetupPIN(request.PIN)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(result)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	request := pinRequest{}
	if err := c.BodyParser(&request); err != nil {
		return handler.respondInvalidInput(c)
	}

	key := requestLimiterKey(c)
	attemptAt := time.Now()
	if !handler.loginLimiter.reserve(key, attemptAt) {
		return apiError(c, fiber.StatusTooManyRequests, handler.translate(c, "api.too_many_attempts"))
	}

	result, err := handler.services.Auth.VerifyPIN(request.PIN)
	if err != nil {
		handler.loginLimiter.release(key, attemptAt)
		return handler.respondServiceError(c, err)
	}
	if !result.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}

	handler.loginLimiter.clear(key)
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(result)
}

// Logout ends every session of the owner, not only the caller's cookie.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if handler.isAuthenticated(c) {
		if err := handler.services.Auth.EndSessions(); err != nil {
			return handler.respondServiceError(c, err)
		}
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePIN(c *fiber.Ctx) error {
	request := changePINRequest{}
	if err := c.BodyParser(&request); err != nil {
		return handler.respondInvalidInput(c)
	}

	result, err := handler.services.Auth.ChangePIN(request.CurrentPIN, request.NewPIN)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !result.Success {
		status := fiber.StatusBadRequest
		if result.Error == services.PINErrorCurrentIncorrect {
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).JSON(result)
	}
	// Other sessions end with the old PIN; the caller keeps a fresh one.
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(result)
}
