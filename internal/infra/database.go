package infra

import (
	"fmt"

	"github.com/DIBANGI/vasuki-inventory/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches for the DDL
// GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map driver unique-violation errors to gorm.ErrDuplicatedKey so the
		// service layer can translate them without parsing SQLSTATE codes.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Stone{},
		&model.Color{},
		&model.Finish{},
		&model.Item{},
		&model.Pricing{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Category identity is the (name, subcategory) pair where a NULL
		// subcategory is a real value equal only to itself. A plain unique
		// index would treat NULLs as distinct and admit duplicates, hence
		// NULLS NOT DISTINCT (PostgreSQL 15+).
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_categories_name_subcategory
		    ON categories (name, subcategory) NULLS NOT DISTINCT`,
		// Sales-report window scans filter on status + sold_on.
		`CREATE INDEX IF NOT EXISTS idx_items_status_sold_on
		    ON items (status, sold_on)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
