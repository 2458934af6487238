package database

import (
	"log"

	"poa-backend/internal/config"
	"poa-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Usuario{},
		&models.Periodo{},
		&models.TipoProyecto{},
		&models.Proyecto{},
		&models.Poa{},
		&models.Actividad{},
		&models.Tarea{},
		&models.ProgramacionMensual{},
		&models.ItemPresupuestario{},
		&models.DetalleTarea{},
		&models.RegistroAuditoria{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a base de datos lista. Migración completada.")
}
