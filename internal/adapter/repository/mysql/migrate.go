package mysql

import (
	"rental-backend/internal/domain/application"
	"rental-backend/internal/domain/lead"
	"rental-backend/internal/domain/property"
	"rental-backend/internal/domain/visit"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&lead.Lead{},
		&property.Property{},
		&application.Application{},
		&visit.Visit{},
	)
}
