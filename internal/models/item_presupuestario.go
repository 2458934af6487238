package models

import "time"

// ItemPresupuestario: código contable institucional al que se carga el costo de una tarea.
type ItemPresupuestario struct {
	ID          uint   `gorm:"primaryKey"`
	Codigo      string `gorm:"size:20;not null;unique"`
	Nombre      string `gorm:"size:200;not null"`
	Descripcion string `gorm:"size:400"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
