package models

import "time"

type EstadoPoa string

const (
	EstadoPoaBorrador    EstadoPoa = "borrador"
	EstadoPoaEnEjecucion EstadoPoa = "en_ejecucion"
	EstadoPoaCerrado     EstadoPoa = "cerrado"
)

// Poa: Plan Operativo Anual de un proyecto. El año fiscal queda fijado por el
// período al crearlo; las ediciones reutilizan el mismo período.
type Poa struct {
	ID                  uint `gorm:"primaryKey"`
	ProyectoID          uint `gorm:"index;not null"`
	Proyecto            Proyecto
	PeriodoID           uint `gorm:"index;not null"`
	Periodo             Periodo
	CodigoPoa           string    `gorm:"size:40;not null;unique"`
	AnioEjecucion       int       `gorm:"index;not null"`
	PresupuestoAsignado float64   `gorm:"not null"`
	Estado              EstadoPoa `gorm:"size:20;not null"`
	TipoPoa             string    `gorm:"size:10;not null"` // código del tipo de proyecto (PIF, PTT, ...)
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Actividades []Actividad `gorm:"constraint:OnDelete:CASCADE"`
}
