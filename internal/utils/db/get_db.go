package db

import (
	"os"
	"strconv"

	"gorm.io/gorm"
)

func ObtenerDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432 // Puerto por defecto de PostgreSQL
	}

	nombre := os.Getenv("DB_NAME")
	usuario := os.Getenv("DB_USERNAME")
	contrasena := os.Getenv("DB_PASSWORD")
	return ConectarBaseDatos(uint(port), host, nombre, usuario, contrasena)
}
