// Package database opens the backing store and owns schema migration.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dondigital/storefront/internal/config"
	"github.com/dondigital/storefront/internal/models"
)

// Open connects to the configured store. The hosted deployment runs against
// postgres (DSN from the environment); local development and tests use a
// sqlite file or ":memory:". TranslateError makes duplicate-key detection
// uniform across both drivers.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("database driver is postgres but no DSN is configured (set DATABASE_DSN)")
		}
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Database.Name, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// Migrate creates or updates all tables, guarantees the statistics singleton
// row, and (re)builds the leaderboard view so sqlite environments match the
// hosted store's vw_top_affiliators.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Affiliator{},
		&models.ReferralClick{},
		&models.ReferralConversion{},
		&models.Comment{},
		&models.Product{},
		&models.Statistics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	stats := models.Statistics{ID: models.StatisticsID}
	if err := db.FirstOrCreate(&stats, models.Statistics{ID: models.StatisticsID}).Error; err != nil {
		return fmt.Errorf("failed to create statistics row: %w", err)
	}

	// DROP + CREATE because sqlite lacks OR REPLACE and postgres lacks IF
	// NOT EXISTS for views.
	if err := db.Exec("DROP VIEW IF EXISTS vw_top_affiliators").Error; err != nil {
		return fmt.Errorf("failed to drop leaderboard view: %w", err)
	}
	createView := `
CREATE VIEW vw_top_affiliators AS
SELECT
    username,
    referral_code,
    total_robux_earned,
    total_clicks,
    total_conversions,
    CASE WHEN total_clicks > 0
         THEN total_conversions * 100.0 / total_clicks
         ELSE 0 END AS conversion_rate,
    created_at
FROM affiliators
WHERE referral_code IS NOT NULL
ORDER BY total_robux_earned DESC`
	if err := db.Exec(createView).Error; err != nil {
		return fmt.Errorf("failed to create leaderboard view: %w", err)
	}

	return nil
}
