package models

import "time"

// TipoProyecto: catálogo de tipos (PIF, PTT, PVIF, ...). El código determina
// qué variante del catálogo de actividades aplica a los POAs del proyecto.
type TipoProyecto struct {
	ID        uint   `gorm:"primaryKey"`
	Codigo    string `gorm:"size:10;not null;unique"` // PIF / PTT / PVIF / PIS / PIGR
	Nombre    string `gorm:"size:150;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Proyecto struct {
	ID                  uint   `gorm:"primaryKey"`
	CodigoProyecto      string `gorm:"size:30;not null;unique"`
	Titulo              string `gorm:"size:300;not null"`
	TipoProyectoID      uint   `gorm:"index;not null"`
	TipoProyecto        TipoProyecto
	PresupuestoAprobado float64 `gorm:"not null"` // techo: suma de presupuestos asignados de sus POAs
	FechaInicio         time.Time
	FechaFin            time.Time
	FechaProrroga       *time.Time // prórroga opcional
	MesesProrroga       *int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Poas []Poa `gorm:"constraint:OnDelete:CASCADE"`
}
