package poa

import (
	"fmt"
	"time"

	"poa-backend/internal/auditoria"
	"poa-backend/internal/auth"
	"poa-backend/internal/catalogo"
	"poa-backend/internal/database"
	"poa-backend/internal/models"
	"poa-backend/internal/planificacion"
	"poa-backend/internal/precios"
	"poa-backend/internal/presupuesto"

	"github.com/gofiber/fiber/v2"
)

// PlanHandler agrupa los endpoints que operan sobre el árbol de planificación
// completo de un POA. El caché de items es de sesión: se vacía cada vez que
// se abre una vista de edición.
type PlanHandler struct {
	cache *catalogo.CacheItems
}

func NewPlanHandler(cache *catalogo.CacheItems) *PlanHandler {
	return &PlanHandler{cache: cache}
}

func (h *PlanHandler) nuevoMotor() *planificacion.Motor {
	return planificacion.NuevoMotor(planificacion.NuevoAlmacenGorm(database.DB), time.Now().Year())
}

type GuardarActividadesRequest struct {
	Poas []planificacion.PoaEdicion `json:"poas"`
}

// GET /api/poas/:id/plan
// Abre una sesión de edición: vacía el caché de items y devuelve el árbol de
// actividades y tareas con su programación mensual.
func (h *PlanHandler) CargarPlanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		poaID, err := c.ParamsInt("id")
		if err != nil || poaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de POA inválido")
		}

		var p models.Poa
		if err := database.DB.First(&p, "id = ?", poaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}

		// Frontera de sesión: el caché de la sesión anterior se descarta aquí
		h.cache.Limpiar()

		actividades, err := h.nuevoMotor().CargarActividades(p.ID)
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

		totalPlanificado := presupuesto.TotalPlanificadoPoa(actividades)
		return c.JSON(fiber.Map{
			"poa":               arbol,
			"total_planificado": totalPlanificado,
			// Advertencia, no bloqueo: el guardado sigue permitido
			"excede_presupuesto": presupuesto.ExcedePlanificado(p.PresupuestoAsignado, totalPlanificado),
		})
	}
}

// POST /api/planificacion/guardar-actividades
// Flujo de creación. La respuesta es siempre el objeto de resultado
// estructurado, nunca un error crudo: con exito=false el caller muestra el
// único mensaje de error; con exito=true, el resumen de totales.
func (h *PlanHandler) GuardarActividadesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GuardarActividadesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if len(body.Poas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay POAs para guardar")
		}

		h.aplicarPreciosFijos(body.Poas)

		resultado := h.nuevoMotor().GuardarActividades(body.Poas)

		if resultado.Exito {
			h.registrarAuditoria(c, models.AccionCrear, fmt.Sprintf(
				"Guardado de plan: %d actividades, %d tareas, %d programaciones",
				resultado.TotalActividadesCreadas, resultado.TotalTareasCreadas, resultado.TotalProgramacionesCreadas))
		}

		return c.JSON(resultado)
	}
}

// POST /api/planificacion/editar-tareas
func (h *PlanHandler) EditarTareasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GuardarActividadesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if len(body.Poas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay POAs para editar")
		}

		h.aplicarPreciosFijos(body.Poas)

		resultado := h.nuevoMotor().EditarTareas(body.Poas)

		if resultado.Exito {
			h.registrarAuditoria(c, models.AccionActualizar, fmt.Sprintf(
				"Edición de plan: %d tareas nuevas, %d actualizadas, %d programaciones creadas, %d actualizadas",
				resultado.TotalTareasCreadas, resultado.TotalTareasActualizadas,
				resultado.TotalProgramacionesCreadas, resultado.TotalProgramacionesActualizadas))
		}

		return c.JSON(resultado)
	}
}

// GET /api/actividades/:id/detalles-tarea
// Detalles permitidos para una actividad ya persistida. El ordinal se
// resuelve con la heurística de desambiguación del motor.
func (h *PlanHandler) DetallesDeActividadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actividadID, err := c.ParamsInt("id")
		if err != nil || actividadID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id de actividad inválido")
		}

		var actividad models.Actividad
		if err := database.DB.First(&actividad, "id = ?", actividadID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Actividad no encontrada")
		}
		var p models.Poa
		if err := database.DB.First(&p, "id = ?", actividad.PoaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "POA no encontrado")
		}

		motor := h.nuevoMotor()
		ordinal := motor.ResolverOrdinalActividad(actividad, catalogo.CatalogoActividades())
		if ordinal == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "No se pudo determinar la actividad de catálogo")
		}

		var detalles []models.DetalleTarea
		if err := database.DB.Order("id asc").Find(&detalles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el catálogo de detalles")
		}

		buscar := func(id uint) (models.ItemPresupuestario, error) {
			return h.cache.Obtener(id, func(id uint) (models.ItemPresupuestario, error) {
				var item models.ItemPresupuestario
				err := database.DB.First(&item, "id = ?", id).Error
				return item, err
			})
		}

		candidatos := catalogo.FiltrarPorActividad(detalles, ordinal, p.TipoPoa, buscar)
		agrupados, err := catalogo.AgruparDuplicados(candidatos, buscar)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron agrupar los detalles de tarea")
		}

		return c.JSON(fiber.Map{
			"ordinal":  ordinal,
			"detalles": agrupados,
		})
	}
}

// aplicarPreciosFijos aplica la tabla de precios de servicios profesionales a
// cada tarea entrante. El servidor la reaplica aunque el cliente ya lo haya
// hecho: el precio fijo no es negociable desde el formulario.
func (h *PlanHandler) aplicarPreciosFijos(poas []planificacion.PoaEdicion) {
	for pi := range poas {
		for ai := range poas[pi].Actividades {
			tareas := poas[pi].Actividades[ai].Tareas
			for ti := range tareas {
				var detalle models.DetalleTarea
				if err := database.DB.First(&detalle, "id = ?", tareas[ti].DetalleTareaID).Error; err != nil {
					continue
				}
				tareas[ti] = precios.AplicarSiCorresponde(tareas[ti], detalle.Nombre, tareas[ti].Descripcion)
			}
		}
	}
}

func (h *PlanHandler) registrarAuditoria(c *fiber.Ctx, accion models.AccionAuditoria, descripcion string) {
	usuarioID, _ := c.Locals(auth.CtxUsuarioIDKey).(uint)

	var usuario models.Usuario
	nombre := ""
	if usuarioID != 0 {
		if err := database.DB.First(&usuario, usuarioID).Error; err == nil {
			nombre = usuario.Nombre
		}
	}

	if err := auditoria.WriteLog(auditoria.LogOptions{
		UsuarioID:     usuarioID,
		NombreUsuario: nombre,
		TipoEntidad:   "plan_poa",
		Accion:        accion,
		Descripcion:   descripcion,
	}); err != nil {
		// Un fallo de auditoría no frena la operación
		fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", err)
	}
}
