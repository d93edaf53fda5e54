package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&ReportRecord{},
		&StreamSchema{},
		&TapState{},
	}
}

// TableNames returns names of the tables created by Migrate.
func TableNames() []string {
	return []string{
		ReportRecord{}.TableName(),
		StreamSchema{}.TableName(),
		TapState{}.TableName(),
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
