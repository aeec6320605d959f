package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect
)

// Open connects to the configured database and migrates the schema.
// Supported dialects: sqlite3 (default for development) and postgres.
func Open(dialect, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all record types.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&IngredientRecord{},
		&CategoryRecord{},
		&MenuItemRecord{},
		&OrderRecord{},
		&OrderLineRecord{},
	).Error; err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
