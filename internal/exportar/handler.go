package exportar

import (
	"fmt"
	"time"

	"poa-backend/internal/database"
	"poa-backend/internal/models"
	"poa-backend/internal/planificacion"

	"github.com/gofiber/fiber/v2"
)

// GET /api/poas/:id/exportar — descarga el plan del POA como .xlsx
func ExportarPoaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		poaID, err := c.ParamsInt("id")
		if err != nil || poaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de POA inválido")
		}

		var p models.Poa
		if err := database.DB.First(&p, "id = ?", poaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}

		motor := planificacion.NuevoMotor(planificacion.NuevoAlmacenGorm(database.DB), time.Now().Year())
		actividades, err := motor.CargarActividades(p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el plan del POA")
		}

		arbol := planificacion.PoaEdicion{
			PoaID:               p.ID,
			CodigoPoa:           p.CodigoPoa,
			TipoPoa:             p.TipoPoa,
			AnioEjecucion:       p.AnioEjecucion,
			PresupuestoAsignado: p.PresupuestoAsignado,
			Actividades:         actividades,
		}

		f, err := GenerarExcelPoa(arbol)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="poa_%s.xlsx"`, p.CodigoPoa))

		if err := f.Write(c.Response().BodyWriter()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo escribir el archivo")
		}
		return nil
	}
}
