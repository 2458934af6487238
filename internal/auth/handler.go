package auth

import (
	"strings"

	"poa-backend/internal/config"
	"poa-backend/internal/database"
	"poa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegistrarAdministradorRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegistrarAdministradorHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegistrarAdministradorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		}

		// Solo se permite un administrador inicial por esta vía
		var count int64
		database.DB.Model(&models.Usuario{}).
			Where("rol = ?", models.RolAdministrador).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Ya existe un administrador")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		usuario := models.Usuario{
			Nombre:       body.Nombre,
			Email:        body.Email,
			PasswordHash: string(hash),
			Rol:          models.RolAdministrador,
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    usuario.ID,
			"email": usuario.Email,
			"rol":   usuario.Rol,
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var usuario models.Usuario
		if err := database.DB.Where("email = ?", body.Email).First(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &usuario)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"usuario": fiber.Map{
				"id":     usuario.ID,
				"nombre": usuario.Nombre,
				"email":  usuario.Email,
				"rol":    usuario.Rol,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioIDVal := c.Locals(CtxUsuarioIDKey)

		var usuario models.Usuario
		if usuarioID, ok := usuarioIDVal.(uint); ok {
			if err := database.DB.First(&usuario, usuarioID).Error; err == nil {
				return c.JSON(fiber.Map{
					"usuario_id": usuario.ID,
					"nombre":     usuario.Nombre,
					"email":      usuario.Email,
					"rol":        usuario.Rol,
				})
			}
		}

		return c.JSON(fiber.Map{
			"usuario_id": usuarioIDVal,
			"rol":        c.Locals(CtxRolKey),
		})
	}
}
