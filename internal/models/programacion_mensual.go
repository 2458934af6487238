package models

import "time"

// ProgramacionMensual: un registro por (tarea, mes) con valor > 0. Los meses
// en cero simplemente no existen, nunca se persisten como filas en cero.
type ProgramacionMensual struct {
	ID        uint `gorm:"primaryKey"`
	TareaID   uint `gorm:"not null;uniqueIndex:idx_tarea_mes"`
	Tarea     Tarea
	Mes       string  `gorm:"size:7;not null;uniqueIndex:idx_tarea_mes"` // formato "MM-YYYY"
	Valor     float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
