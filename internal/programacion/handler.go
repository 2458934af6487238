package programacion

import (
	"errors"
	"time"

	"poa-backend/internal/database"
	"poa-backend/internal/models"
	"poa-backend/internal/planificacion"

	"github.com/gofiber/fiber/v2"
)

type CrearProgramacionRequest struct {
	TareaID uint    `json:"tarea_id"`
	Mes     string  `json:"mes"` // "MM-YYYY"
	Valor   float64 `json:"valor"`
}

type ReemplazarProgramacionRequest struct {
	GastosMensuales [12]float64 `json:"gastos_mensuales"`
}

type ProgramacionResponse struct {
	ID      uint    `json:"id"`
	TareaID uint    `json:"tarea_id"`
	Mes     string  `json:"mes"`
	Valor   float64 `json:"valor"`
}

// POST /api/programacion-mensual
// Un duplicado (tarea, mes) responde 400 con el detalle exacto que la
// interfaz distingue de un fallo genérico.
func CrearProgramacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearProgramacionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.TareaID == 0 || body.Valor <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tarea_id y valor son obligatorios, valor > 0")
		}
		if planificacion.IndiceMes(body.Mes) < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "mes debe tener formato 'MM-YYYY'")
		}

		var tarea models.Tarea
		if err := database.DB.First(&tarea, "id = ?", body.TareaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarea no encontrada")
		}

		almacen := planificacion.NuevoAlmacenGorm(database.DB)
		p := models.ProgramacionMensual{
			TareaID: body.TareaID,
			Mes:     body.Mes,
			Valor:   body.Valor,
		}
		if err := almacen.CrearProgramacion(&p); err != nil {
			if errors.Is(err, planificacion.ErrProgramacionDuplicada) {
				return fiber.NewError(fiber.StatusBadRequest, planificacion.ErrProgramacionDuplicada.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la programación")
		}

		return c.Status(fiber.StatusCreated).JSON(ProgramacionResponse{
			ID:      p.ID,
			TareaID: p.TareaID,
			Mes:     p.Mes,
			Valor:   p.Valor,
		})
	}
}

// GET /api/tareas/:id/programacion
func ListProgramacionPorTareaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tareaID, err := c.ParamsInt("id")
		if err != nil || tareaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de tarea inválido")
		}

		var tarea models.Tarea
		if err := database.DB.First(&tarea, "id = ?", tareaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarea no encontrada")
		}

		var filas []models.ProgramacionMensual
		if err := database.DB.Where("tarea_id = ?", tareaID).Order("id asc").Find(&filas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar la programación")
		}

		resp := make([]ProgramacionResponse, 0, len(filas))
		for _, f := range filas {
			resp = append(resp, ProgramacionResponse{ID: f.ID, TareaID: f.TareaID, Mes: f.Mes, Valor: f.Valor})
		}
		return c.JSON(resp)
	}
}

// validarReemplazo acepta o rechaza el vector entrante de un reemplazo
// completo. Un vector sin ningún mes positivo es un vaciado válido del
// cronograma (la operación solo borra); en cualquier otro caso la suma debe
// cuadrar con el total de la tarea.
func validarReemplazo(tarea models.Tarea, gastos [12]float64) error {
	vacio := true
	for _, v := range gastos {
		if v > 0 {
			vacio = false
			break
		}
	}
	if vacio {
		return nil
	}
	return planificacion.ValidarProgramacionTarea(planificacion.TareaEdicion{
		Nombre:          tarea.Nombre,
		Cantidad:        tarea.Cantidad,
		PrecioUnitario:  tarea.PrecioUnitario,
		Total:           tarea.Total,
		GastosMensuales: gastos,
	})
}

// PUT /api/tareas/:id/programacion
// Reescritura completa del cronograma: borra todo y recrea los meses
// positivos. Un cuerpo todo en cero vacía el cronograma y reporta cero
// creaciones; cualquier otro cronograma debe cuadrar con el total de la tarea.
func ReemplazarProgramacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tareaID, err := c.ParamsInt("id")
		if err != nil || tareaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de tarea inválido")
		}

		var tarea models.Tarea
		if err := database.DB.First(&tarea, "id = ?", tareaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarea no encontrada")
		}

		var body ReemplazarProgramacionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if err := validarReemplazo(tarea, body.GastosMensuales); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reconciliador := planificacion.NuevoReconciliador(planificacion.NuevoAlmacenGorm(database.DB), time.Now().Year())
		creadas, err := reconciliador.ReemplazarProgramacion(tarea.ID, body.GastosMensuales)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo reemplazar la programación")
		}

		return c.JSON(fiber.Map{
			"tarea_id":               tarea.ID,
			"programaciones_creadas": creadas,
		})
	}
}

// DELETE /api/tareas/:id/programacion — borrado masivo por tarea
func EliminarProgramacionPorTareaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tareaID, err := c.ParamsInt("id")
		if err != nil || tareaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de tarea inválido")
		}

		if err := database.DB.Delete(&models.ProgramacionMensual{}, "tarea_id = ?", tareaID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la programación")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
