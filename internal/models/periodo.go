package models

import "time"

// Periodo: período fiscal anual. Cada proyecto puede tener un POA por período.
type Periodo struct {
	ID          uint   `gorm:"primaryKey"`
	Codigo      string `gorm:"size:20;not null;unique"`
	Anio        int    `gorm:"index;not null"` // año fiscal, ej. 2026
	FechaInicio time.Time
	FechaFin    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
