package auditoria

import (
	"encoding/json"
	"fmt"

	"poa-backend/internal/database"
	"poa-backend/internal/models"
)

type LogOptions struct {
	UsuarioID     uint
	NombreUsuario string
	TipoEntidad   string
	EntidadID     uint
	Accion        models.AccionAuditoria
	Descripcion   string
	Antes         any
	Despues       any
}

func WriteLog(opts LogOptions) error {
	// Para jsonb de PostgreSQL hay que usar el string JSON "null", no cadena vacía
	antesStr := "null"
	despuesStr := "null"

	if opts.Antes != nil {
		if b, err := json.Marshal(opts.Antes); err == nil {
			antesStr = string(b)
		}
	}
	if opts.Despues != nil {
		if b, err := json.Marshal(opts.Despues); err == nil {
			despuesStr = string(b)
		}
	}

	registro := models.RegistroAuditoria{
		UsuarioID:     opts.UsuarioID,
		NombreUsuario: opts.NombreUsuario,
		TipoEntidad:   opts.TipoEntidad,
		EntidadID:     opts.EntidadID,
		Accion:        opts.Accion,
		Descripcion:   opts.Descripcion,
		DatosAntes:    antesStr,
		DatosDespues:  despuesStr,
	}

	if err := database.DB.Create(&registro).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de auditoría: %w", err)
	}

	return nil
}
