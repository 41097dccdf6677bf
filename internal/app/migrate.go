package app

import (
	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate прогоняет схему. Расширение uuid-ossp нужно для
// default uuid_generate_v4() на первичных ключах.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Order{},
		&models.Applicant{},
		&models.VacancyApplication{},
		&models.Review{},
		&models.OtpCode{},
		&models.EmailOtpCode{},
		&models.OrderPhoneView{},
		&models.OrderPhoneCall{},
	); err != nil {
		return err
	}

	logger.Info("Database schema migrated")
	return nil
}
