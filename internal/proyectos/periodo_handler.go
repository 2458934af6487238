package proyectos

import (
	"strings"
	"time"

	"poa-backend/internal/database"
	"poa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CrearPeriodoRequest struct {
	Codigo      string `json:"codigo"`
	Anio        int    `json:"anio"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

// POST /api/periodos
func CrearPeriodoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearPeriodoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Codigo = strings.TrimSpace(body.Codigo)
		if body.Codigo == "" || body.Anio < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "codigo y anio son obligatorios")
		}

		inicio, err := time.Parse("2006-01-02", body.FechaInicio)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_inicio debe tener formato 'YYYY-MM-DD'")
		}
		fin, err := time.Parse("2006-01-02", body.FechaFin)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_fin debe tener formato 'YYYY-MM-DD'")
		}

		periodo := models.Periodo{
			Codigo:      body.Codigo,
			Anio:        body.Anio,
			FechaInicio: inicio,
			FechaFin:    fin,
		}
		if err := database.DB.Create(&periodo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el período")
		}
		return c.Status(fiber.StatusCreated).JSON(periodo)
	}
}

// GET /api/periodos
func ListPeriodosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var periodos []models.Periodo
		if err := database.DB.Order("anio asc").Find(&periodos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los períodos")
		}
		return c.JSON(periodos)
	}
}
