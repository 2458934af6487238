package auditoria

import (
	"fmt"

	"poa-backend/internal/database"
	"poa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RegistroAuditoriaResponse struct {
	ID            uint                   `json:"id"`
	CreatedAt     string                 `json:"created_at"`
	UsuarioID     uint                   `json:"usuario_id"`
	NombreUsuario string                 `json:"nombre_usuario"`
	TipoEntidad   string                 `json:"tipo_entidad"`
	EntidadID     uint                   `json:"entidad_id"`
	Accion        models.AccionAuditoria `json:"accion"`
	Descripcion   string                 `json:"descripcion"`
}

// GET /api/auditoria?tipo_entidad=tarea&entidad_id=1&usuario_id=2
func ListRegistrosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipoEntidad := c.Query("tipo_entidad")
		entidadIDStr := c.Query("entidad_id")
		usuarioIDStr := c.Query("usuario_id")

		dbq := database.DB.Model(&models.RegistroAuditoria{})

		if tipoEntidad != "" {
			dbq = dbq.Where("tipo_entidad = ?", tipoEntidad)
		}
		if entidadIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entidadIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entidad_id = ?", eid)
			}
		}
		if usuarioIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(usuarioIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("usuario_id = ?", uid)
			}
		}

		var registros []models.RegistroAuditoria
		if err := dbq.Order("created_at desc, id desc").Limit(200).Find(&registros).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros de auditoría")
		}

		resp := make([]RegistroAuditoriaResponse, 0, len(registros))
		for _, r := range registros {
			resp = append(resp, RegistroAuditoriaResponse{
				ID:            r.ID,
				CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
				UsuarioID:     r.UsuarioID,
				NombreUsuario: r.NombreUsuario,
				TipoEntidad:   r.TipoEntidad,
				EntidadID:     r.EntidadID,
				Accion:        r.Accion,
				Descripcion:   r.Descripcion,
			})
		}

		return c.JSON(resp)
	}
}
