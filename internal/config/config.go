package config

import (
	"log"
	"os"
	"strings"
)

// Config se construye una sola vez al arranque y se pasa por inyección de
// dependencias; no hay acceso perezoso ni estado global mutable.
type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=poa port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Validación temprana: mejor caer al arrancar que a mitad de una sesión de edición
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET no está definido. Es obligatorio para producción.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if !strings.Contains(cfg.DatabaseDSN, "host=") {
		log.Fatal("[FATAL] DATABASE_DSN mal formado: se espera un DSN de Postgres (host=... user=... dbname=...).")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto; define tu dominio en producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
