package proyectos

import (
	"strings"
	"time"

	"poa-backend/internal/database"
	"poa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CrearProyectoRequest struct {
	CodigoProyecto      string  `json:"codigo_proyecto"`
	Titulo              string  `json:"titulo"`
	TipoProyectoID      uint    `json:"tipo_proyecto_id"`
	PresupuestoAprobado float64 `json:"presupuesto_aprobado"`
	FechaInicio         string  `json:"fecha_inicio"` // "2026-01-01"
	FechaFin            string  `json:"fecha_fin"`
}

type ActualizarProyectoRequest struct {
	Titulo              *string  `json:"titulo"`
	PresupuestoAprobado *float64 `json:"presupuesto_aprobado"`
	FechaFin            *string  `json:"fecha_fin"`
	FechaProrroga       *string  `json:"fecha_prorroga"`
	MesesProrroga       *int     `json:"meses_prorroga"`
}

type ProyectoResponse struct {
	ID                  uint    `json:"id"`
	CodigoProyecto      string  `json:"codigo_proyecto"`
	Titulo              string  `json:"titulo"`
	TipoProyecto        string  `json:"tipo_proyecto"`
	PresupuestoAprobado float64 `json:"presupuesto_aprobado"`
	FechaInicio         string  `json:"fecha_inicio"`
	FechaFin            string  `json:"fecha_fin"`
	FechaProrroga       *string `json:"fecha_prorroga,omitempty"`
	MesesProrroga       *int    `json:"meses_prorroga,omitempty"`
}

func aRespuesta(p models.Proyecto) ProyectoResponse {
	resp := ProyectoResponse{
		ID:                  p.ID,
		CodigoProyecto:      p.CodigoProyecto,
		Titulo:              p.Titulo,
		TipoProyecto:        p.TipoProyecto.Codigo,
		PresupuestoAprobado: p.PresupuestoAprobado,
		FechaInicio:         p.FechaInicio.Format("2006-01-02"),
		FechaFin:            p.FechaFin.Format("2006-01-02"),
		MesesProrroga:       p.MesesProrroga,
	}
	if p.FechaProrroga != nil {
		f := p.FechaProrroga.Format("2006-01-02")
		resp.FechaProrroga = &f
	}
	return resp
}

// POST /api/proyectos
func CrearProyectoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearProyectoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.CodigoProyecto = strings.TrimSpace(body.CodigoProyecto)
		body.Titulo = strings.TrimSpace(body.Titulo)
		if body.CodigoProyecto == "" || body.Titulo == "" || body.TipoProyectoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "codigo_proyecto, titulo y tipo_proyecto_id son obligatorios")
		}
		if body.PresupuestoAprobado <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "presupuesto_aprobado debe ser mayor a 0")
		}

		inicio, err := time.Parse("2006-01-02", body.FechaInicio)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_inicio debe tener formato 'YYYY-MM-DD'")
		}
		fin, err := time.Parse("2006-01-02", body.FechaFin)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_fin debe tener formato 'YYYY-MM-DD'")
		}
		if fin.Before(inicio) {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_fin no puede ser anterior a fecha_inicio")
		}

		var tipo models.TipoProyecto
		if err := database.DB.First(&tipo, "id = ?", body.TipoProyectoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de proyecto no encontrado")
		}

		proyecto := models.Proyecto{
			CodigoProyecto:      body.CodigoProyecto,
			Titulo:              body.Titulo,
			TipoProyectoID:      body.TipoProyectoID,
			TipoProyecto:        tipo,
			PresupuestoAprobado: body.PresupuestoAprobado,
			FechaInicio:         inicio,
			FechaFin:            fin,
		}

		if err := database.DB.Create(&proyecto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el proyecto")
		}

		return c.Status(fiber.StatusCreated).JSON(aRespuesta(proyecto))
	}
}

// GET /api/proyectos?tipo=PIF
func ListProyectosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Proyecto{}).Preload("TipoProyecto")

		if tipo := c.Query("tipo"); tipo != "" {
			dbq = dbq.Joins("JOIN tipo_proyectos ON tipo_proyectos.id = proyectos.tipo_proyecto_id").
				Where("tipo_proyectos.codigo = ?", strings.ToUpper(tipo))
		}

		var proyectos []models.Proyecto
		if err := dbq.Order("codigo_proyecto asc").Find(&proyectos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proyectos")
		}

		resp := make([]ProyectoResponse, 0, len(proyectos))
		for _, p := range proyectos {
			resp = append(resp, aRespuesta(p))
		}
		return c.JSON(resp)
	}
}

// GET /api/proyectos/:id
func GetProyectoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var proyecto models.Proyecto
		if err := database.DB.Preload("TipoProyecto").First(&proyecto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proyecto no encontrado")
		}
		return c.JSON(aRespuesta(proyecto))
	}
}

// PUT /api/proyectos/:id
func ActualizarProyectoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var proyecto models.Proyecto
		if err := database.DB.Preload("TipoProyecto").First(&proyecto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proyecto no encontrado")
		}

		var body ActualizarProyectoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Titulo != nil {
			titulo := strings.TrimSpace(*body.Titulo)
			if titulo == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El título no puede quedar vacío")
			}
			proyecto.Titulo = titulo
		}
		if body.PresupuestoAprobado != nil {
			if *body.PresupuestoAprobado <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "presupuesto_aprobado debe ser mayor a 0")
			}
			// No se permite bajar el techo por debajo de lo ya asignado
			var asignado float64
			database.DB.Model(&models.Poa{}).
				Select("COALESCE(SUM(presupuesto_asignado), 0)").
				Where("proyecto_id = ?", proyecto.ID).
				Scan(&asignado)
			if *body.PresupuestoAprobado < asignado {
				return fiber.NewError(fiber.StatusBadRequest, "El presupuesto aprobado no puede ser menor a lo ya asignado en los POAs")
			}
			proyecto.PresupuestoAprobado = *body.PresupuestoAprobado
		}
		if body.FechaFin != nil {
			fin, err := time.Parse("2006-01-02", *body.FechaFin)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_fin debe tener formato 'YYYY-MM-DD'")
			}
			proyecto.FechaFin = fin
		}
		if body.FechaProrroga != nil {
			prorroga, err := time.Parse("2006-01-02", *body.FechaProrroga)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_prorroga debe tener formato 'YYYY-MM-DD'")
			}
			proyecto.FechaProrroga = &prorroga
		}
		if body.MesesProrroga != nil {
			proyecto.MesesProrroga = body.MesesProrroga
		}

		if err := database.DB.Save(&proyecto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proyecto")
		}
		return c.JSON(aRespuesta(proyecto))
	}
}

// DELETE /api/proyectos/:id — borra en cascada sus POAs
func EliminarProyectoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Proyecto{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el proyecto")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/tipos-proyecto
func ListTiposProyectoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tipos []models.TipoProyecto
		if err := database.DB.Order("codigo asc").Find(&tipos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los tipos de proyecto")
		}
		return c.JSON(tipos)
	}
}
