package models

import "time"

type AccionAuditoria string

const (
	AccionCrear      AccionAuditoria = "crear"
	AccionActualizar AccionAuditoria = "actualizar"
	AccionEliminar   AccionAuditoria = "eliminar"
)

// RegistroAuditoria: bitácora de las operaciones de guardado sobre el plan.
type RegistroAuditoria struct {
	ID            uint            `gorm:"primaryKey"`
	UsuarioID     uint            `gorm:"index;not null"`
	NombreUsuario string          `gorm:"size:100"`
	TipoEntidad   string          `gorm:"size:40;not null"` // poa / actividad / tarea / programacion
	EntidadID     uint            `gorm:"index"`
	Accion        AccionAuditoria `gorm:"size:20;not null"`
	Descripcion   string          `gorm:"size:400"`
	DatosAntes    string          `gorm:"type:jsonb"`
	DatosDespues  string          `gorm:"type:jsonb"`
	CreatedAt     time.Time
}
