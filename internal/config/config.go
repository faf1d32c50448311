package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         string
	DatabaseDSN      string
	JWTSecret        string
	CORSOrigins      string
	AuthPassword     string // contraseña compartida del operador (texto plano, sólo dev)
	AuthPasswordHash string // hash bcrypt; si está definido tiene prioridad
}

func Load() *Config {
	// .env sólo para desarrollo local; en producción todo viene del entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=asador port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AuthPassword:     getEnv("AUTH_PASSWORD", ""),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable JWT_SECRET no está definida. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if cfg.AuthPassword == "" && cfg.AuthPasswordHash == "" {
		log.Fatal("[FATAL] Define AUTH_PASSWORD o AUTH_PASSWORD_HASH para proteger la caja.")
	}
	if cfg.AuthPassword != "" && cfg.AuthPasswordHash == "" {
		log.Println("[WARN] AUTH_PASSWORD en texto plano; usa AUTH_PASSWORD_HASH (bcrypt) en producción.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=asador port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN con valor por defecto; configura tu propia conexión de Postgres en producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
