package auth

import (
	"crypto/subtle"
	"time"

	"asador-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// POST /api/auth/login: un solo puesto, una sola credencial compartida.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ingresa la contraseña")
		}

		if !passwordMatches(cfg, body.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Contraseña incorrecta")
		}

		token, err := GenerateToken(cfg.JWTSecret)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la sesión")
		}

		return c.JSON(LoginResponse{Token: token, Message: "Acceso concedido"})
	}
}

func passwordMatches(cfg *config.Config, password string) bool {
	if cfg.AuthPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.AuthPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cfg.AuthPassword), []byte(password)) == 1
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		operator, _ := c.Locals(CtxOperatorKey).(string)
		expiresAt, _ := c.Locals(CtxExpiresAtKey).(time.Time)
		return c.JSON(fiber.Map{
			"operator":   operator,
			"expires_at": expiresAt,
		})
	}
}
