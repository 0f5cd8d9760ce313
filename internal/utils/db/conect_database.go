package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConectarBaseDatos(port uint, host, dbname, usuario, contrasena string) (*gorm.DB, error) {
	sslDeshabilitado := os.Getenv("DB_SSL_MODE_DISABLE")
	var sslMode string
	if sslDeshabilitado == "true" {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, usuario, contrasena, dbname, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
