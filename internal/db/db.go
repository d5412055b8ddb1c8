package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/config"
	"github.com/aviseihq/avisei-api/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.BusinessHour{},
		&models.ProfessionalAvailability{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// second line of defense against double-booking: identical starts
	// for a professional's active appointments are rejected by the
	// database even if two requests slip past the application check
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uq_active_appointment_start
        ON appointments (professional_id, appointment_date, appointment_time)
        WHERE status IN ('scheduled', 'confirmed')
    `)

	return db
}
