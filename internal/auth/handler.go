package auth

import (
	"strings"

	"nexus-backend/internal/config"
	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Senha    string `json:"senha"`
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var usuario models.Usuario
		if err := database.DB.Where("username = ?", body.Username).First(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário ou senha incorretos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(body.Senha)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário ou senha incorretos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &usuario)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"usuario": fiber.Map{
				"id":       usuario.ID,
				"nome":     usuario.Nome,
				"username": usuario.Username,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Informações do usuário não encontradas")
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário não encontrado")
		}

		return c.JSON(fiber.Map{
			"id":       usuario.ID,
			"nome":     usuario.Nome,
			"username": usuario.Username,
		})
	}
}
