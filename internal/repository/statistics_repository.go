package repository

import (
	"fmt"

	"github.com/dondigital/storefront/internal/models"
	"gorm.io/gorm"
)

// StatisticsRepository defines access to the single-row statistics table.
type StatisticsRepository interface {
	Get() (*models.Statistics, error)
	Update(currentRobux int, hoursStart, hoursEnd string) (*models.Statistics, error)
	EnsureRow() error
}

// GormStatisticsRepository is the StatisticsRepository implementation using GORM.
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates and returns a new GormStatisticsRepository.
func NewStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

// Get returns the singleton row.
func (r *GormStatisticsRepository) Get() (*models.Statistics, error) {
	var stats models.Statistics
	if err := r.db.First(&stats, models.StatisticsID).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Update overwrites all mutable fields of the singleton row and returns the
// fresh state.
func (r *GormStatisticsRepository) Update(currentRobux int, hoursStart, hoursEnd string) (*models.Statistics, error) {
	err := r.db.Model(&models.Statistics{}).
		Where("id = ?", models.StatisticsID).
		Updates(map[string]any{
			"current_robux":         currentRobux,
			"operating_hours_start": hoursStart,
			"operating_hours_end":   hoursEnd,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update statistics: %w", err)
	}
	return r.Get()
}

// EnsureRow creates the singleton row with zero values when it is missing.
// Called by migrate so every environment starts with exactly one row.
func (r *GormStatisticsRepository) EnsureRow() error {
	stats := models.Statistics{ID: models.StatisticsID}
	if err := r.db.FirstOrCreate(&stats, models.Statistics{ID: models.StatisticsID}).Error; err != nil {
		return fmt.Errorf("failed to ensure statistics row: %w", err)
	}
	return nil
}
