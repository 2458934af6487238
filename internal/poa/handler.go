package poa

import (
	"fmt"
	"strings"

	"poa-backend/internal/database"
	"poa-backend/internal/models"
	"poa-backend/internal/presupuesto"

	"github.com/gofiber/fiber/v2"
)

type CrearPoaRequest struct {
	ProyectoID          uint    `json:"proyecto_id"`
	PeriodoID           uint    `json:"periodo_id"`
	CodigoPoa           string  `json:"codigo_poa"`
	PresupuestoAsignado float64 `json:"presupuesto_asignado"`
}

type ActualizarPoaRequest struct {
	PresupuestoAsignado *float64          `json:"presupuesto_asignado"`
	Estado              *models.EstadoPoa `json:"estado"`
}

type PoaResponse struct {
	ID                  uint             `json:"id"`
	ProyectoID          uint             `json:"proyecto_id"`
	PeriodoID           uint             `json:"periodo_id"`
	CodigoPoa           string           `json:"codigo_poa"`
	AnioEjecucion       int              `json:"anio_ejecucion"`
	PresupuestoAsignado float64          `json:"presupuesto_asignado"`
	Estado              models.EstadoPoa `json:"estado"`
	TipoPoa             string           `json:"tipo_poa"`
}

func aRespuesta(p models.Poa) PoaResponse {
	return PoaResponse{
		ID:                  p.ID,
		ProyectoID:          p.ProyectoID,
		PeriodoID:           p.PeriodoID,
		CodigoPoa:           p.CodigoPoa,
		AnioEjecucion:       p.AnioEjecucion,
		PresupuestoAsignado: p.PresupuestoAsignado,
		Estado:              p.Estado,
		TipoPoa:             p.TipoPoa,
	}
}

// POST /api/poas
// Regla dura: la suma de presupuestos asignados de los POAs de un proyecto
// no puede superar su presupuesto aprobado. Esto sí bloquea la creación.
func CrearPoaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearPoaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.CodigoPoa = strings.TrimSpace(body.CodigoPoa)
		if body.ProyectoID == 0 || body.PeriodoID == 0 || body.CodigoPoa == "" {
			return fiber.NewError(fiber.StatusBadRequest, "proyecto_id, periodo_id y codigo_poa son obligatorios")
		}
		if body.PresupuestoAsignado <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "presupuesto_asignado debe ser mayor a 0")
		}

		var proyecto models.Proyecto
		if err := database.DB.Preload("TipoProyecto").First(&proyecto, "id = ?", body.ProyectoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Proyecto no encontrado")
		}

		var periodo models.Periodo
		if err := database.DB.First(&periodo, "id = ?", body.PeriodoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Período no encontrado")
		}

		// Un POA por período fiscal por proyecto
		var repetidos int64
		database.DB.Model(&models.Poa{}).
			Where("proyecto_id = ? AND periodo_id = ?", body.ProyectoID, body.PeriodoID).
			Count(&repetidos)
		if repetidos > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El proyecto ya tiene un POA para ese período")
		}

		var existentes []models.Poa
		if err := database.DB.Where("proyecto_id = ?", body.ProyectoID).Find(&existentes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los POAs del proyecto")
		}
		if err := presupuesto.ValidarTechoProyecto(proyecto.PresupuestoAprobado, existentes, 0, body.PresupuestoAsignado); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		nuevo := models.Poa{
			ProyectoID:          body.ProyectoID,
			PeriodoID:           body.PeriodoID,
			CodigoPoa:           body.CodigoPoa,
			AnioEjecucion:       periodo.Anio,
			PresupuestoAsignado: body.PresupuestoAsignado,
			Estado:              models.EstadoPoaBorrador,
			TipoPoa:             proyecto.TipoProyecto.Codigo,
		}

		if err := database.DB.Create(&nuevo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el POA")
		}

		return c.Status(fiber.StatusCreated).JSON(aRespuesta(nuevo))
	}
}

// GET /api/poas?proyecto_id=1
func ListPoasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Poa{})

		if pid := c.QueryInt("proyecto_id"); pid > 0 {
			dbq = dbq.Where("proyecto_id = ?", pid)
		}

		var poas []models.Poa
		if err := dbq.Order("anio_ejecucion asc, id asc").Find(&poas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los POAs")
		}

		resp := make([]PoaResponse, 0, len(poas))
		for _, p := range poas {
			resp = append(resp, aRespuesta(p))
		}
		return c.JSON(resp)
	}
}

// GET /api/poas/:id
func GetPoaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Poa
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}
		return c.JSON(aRespuesta(p))
	}
}

// PUT /api/poas/:id — mismo techo duro que en la creación
func ActualizarPoaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Poa
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}

		var body ActualizarPoaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.PresupuestoAsignado != nil {
			if *body.PresupuestoAsignado <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "presupuesto_asignado debe ser mayor a 0")
			}

			var proyecto models.Proyecto
			if err := database.DB.First(&proyecto, "id = ?", p.ProyectoID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el proyecto del POA")
			}
			var hermanos []models.Poa
			if err := database.DB.Where("proyecto_id = ?", p.ProyectoID).Find(&hermanos).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los POAs del proyecto")
			}
			if err := presupuesto.ValidarTechoProyecto(proyecto.PresupuestoAprobado, hermanos, p.ID, *body.PresupuestoAsignado); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			p.PresupuestoAsignado = *body.PresupuestoAsignado
		}
		if body.Estado != nil {
			p.Estado = *body.Estado
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el POA")
		}
		return c.JSON(aRespuesta(p))
	}
}

// DELETE /api/poas/:id
func EliminarPoaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Poa{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el POA")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/proyectos/:id/presupuesto-restante?anios_en_edicion=2025,2026
// Cifra de validación en vivo: aprobado − asignado en otros POAs. Los POAs de
// los años abiertos en la sesión de edición se excluyen del "ya asignado".
func PresupuestoRestanteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var proyecto models.Proyecto
		if err := database.DB.First(&proyecto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proyecto no encontrado")
		}

		var poas []models.Poa
		if err := database.DB.Where("proyecto_id = ?", proyecto.ID).Find(&poas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los POAs")
		}

		aniosEnEdicion := make(map[int]bool)
		if raw := c.Query("anios_en_edicion"); raw != "" {
			for _, parte := range strings.Split(raw, ",") {
				var anio int
				if _, err := fmt.Sscan(strings.TrimSpace(parte), &anio); err == nil && anio > 0 {
					aniosEnEdicion[anio] = true
				}
			}
		}

		asignadoOtros := presupuesto.AsignadoEnOtrosPoas(poas, aniosEnEdicion)
		return c.JSON(fiber.Map{
			"presupuesto_aprobado": proyecto.PresupuestoAprobado,
			"asignado_otros_poas":  asignadoOtros,
			"restante":             presupuesto.PresupuestoRestante(proyecto.PresupuestoAprobado, asignadoOtros, 0),
		})
	}
}
