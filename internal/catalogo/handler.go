package catalogo

import (
	"poa-backend/internal/database"
	"poa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	cache *CacheItems
}

func NewHandler(cache *CacheItems) *Handler {
	return &Handler{cache: cache}
}

func (h *Handler) buscarItem(id uint) (models.ItemPresupuestario, error) {
	return h.cache.Obtener(id, func(id uint) (models.ItemPresupuestario, error) {
		var item models.ItemPresupuestario
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return item, err
		}
		return item, nil
	})
}

// GET /api/catalogo/actividades
func (h *Handler) ActividadesCatalogoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(CatalogoActividades())
	}
}

// GET /api/poas/:id/detalles-tarea?ordinal=3
// Devuelve los detalles de tarea permitidos para una actividad del POA,
// filtrados por la familia del tipo de POA y con duplicados agrupados.
func (h *Handler) DetallesPorActividadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		poaID, err := c.ParamsInt("id")
		if err != nil || poaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de POA inválido")
		}

		ordinal := c.QueryInt("ordinal")
		if ordinal <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ordinal de actividad inválido")
		}

		var poa models.Poa
		if err := database.DB.First(&poa, "id = ?", poaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}

		var detalles []models.DetalleTarea
		if err := database.DB.Order("id asc").Find(&detalles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el catálogo de detalles")
		}

		candidatos := FiltrarPorActividad(detalles, ordinal, poa.TipoPoa, h.buscarItem)
		agrupados, err := AgruparDuplicados(candidatos, h.buscarItem)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron agrupar los detalles de tarea")
		}

		return c.JSON(agrupados)
	}
}
