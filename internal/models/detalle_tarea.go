package models

import "time"

// DetalleTarea: entrada del catálogo de tareas permitidas. Caracteristicas
// codifica hasta tres ordinales de actividad separados por "; ", uno por
// familia de tipo de POA (variantes históricas del catálogo). Ej: "0; 3.2; 5.1".
// Un token "0" significa que el detalle no aplica a ninguna actividad de esa familia.
type DetalleTarea struct {
	ID                   uint `gorm:"primaryKey"`
	ItemPresupuestarioID uint `gorm:"index;not null"`
	ItemPresupuestario   ItemPresupuestario
	Nombre               string `gorm:"size:200;not null"`
	Descripcion          string `gorm:"size:400"`
	Caracteristicas      string `gorm:"size:60;not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
