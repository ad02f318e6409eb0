package storage

import (
	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The handle is returned to
// the caller and threaded through the stores; nothing holds it globally.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
