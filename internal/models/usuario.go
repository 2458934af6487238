package models

import "time"

type RolUsuario string

const (
	RolAdministrador RolUsuario = "administrador"
	RolDirector      RolUsuario = "director_investigacion"
)

type Usuario struct {
	ID           uint       `gorm:"primaryKey"`
	Nombre       string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Rol          RolUsuario `gorm:"size:30;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
