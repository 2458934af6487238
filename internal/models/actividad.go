package models

import "time"

type Actividad struct {
	ID                uint `gorm:"primaryKey"`
	PoaID             uint `gorm:"index;not null"`
	Poa               Poa
	Descripcion       string  `gorm:"size:400;not null"`
	TotalPorActividad float64 `gorm:"default:0"` // derivado: suma de totales de sus tareas
	SaldoActividad    float64 `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Tareas []Tarea `gorm:"constraint:OnDelete:CASCADE"`
}
