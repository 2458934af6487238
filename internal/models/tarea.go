package models

import "time"

type Tarea struct {
	ID                   uint `gorm:"primaryKey"`
	ActividadID          uint `gorm:"index;not null"`
	Actividad            Actividad
	DetalleTareaID       uint `gorm:"index;not null"`
	DetalleTarea         DetalleTarea
	Nombre               string `gorm:"size:200;not null"`
	DetalleDescripcion   string `gorm:"size:400"`
	ItemPresupuestarioID uint   `gorm:"index;not null"`
	ItemPresupuestario   ItemPresupuestario
	Cantidad             int     `gorm:"not null"`
	PrecioUnitario       float64 `gorm:"not null"`
	Total                float64 `gorm:"not null"` // invariante: Cantidad * PrecioUnitario
	SaldoDisponible      float64 `gorm:"not null"` // arranca igual al total, editable por separado
	LineaPaiViiv         *int    // número de línea de referencia, opcional
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Programacion []ProgramacionMensual `gorm:"constraint:OnDelete:CASCADE"`
}
