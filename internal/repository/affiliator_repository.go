package repository

import (
	"fmt"

	"github.com/dondigital/storefront/internal/models"
	"gorm.io/gorm"
)

// AffiliatorRepository defines the data access methods for affiliators.
// Mutating methods that target a username return the number of rows matched
// so callers can distinguish "updated" from "no such affiliator" without a
// prior read.
type AffiliatorRepository interface {
	Create(affiliator *models.Affiliator) error
	GetByUsername(username string) (*models.Affiliator, error)
	GetByReferralCode(code string) (*models.Affiliator, error)
	GetActiveByReferralCode(code string) (*models.Affiliator, error)
	TopByEarnings(limit int) ([]models.Affiliator, error)
	Leaderboard(limit int) ([]models.LeaderboardEntry, error)
	AddEarnings(username string, amount float64) (int64, error)
	ApplyConversion(code string, commission float64) error
	SetEarnings(username string, amount float64) (int64, error)
	SetActive(username string, active bool) (int64, error)
	IncrementClicks(code string) error
	DeleteByUsername(username string) error
}

// GormAffiliatorRepository is the AffiliatorRepository implementation using GORM.
type GormAffiliatorRepository struct {
	db *gorm.DB
}

// NewAffiliatorRepository creates and returns a new GormAffiliatorRepository.
func NewAffiliatorRepository(db *gorm.DB) *GormAffiliatorRepository {
	return &GormAffiliatorRepository{db: db}
}

// Create inserts a new affiliator. Unique constraint violations surface as
// gorm.ErrDuplicatedKey thanks to TranslateError.
func (r *GormAffiliatorRepository) Create(affiliator *models.Affiliator) error {
	return r.db.Create(affiliator).Error
}

// GetByUsername retrieves an affiliator by its username.
func (r *GormAffiliatorRepository) GetByUsername(username string) (*models.Affiliator, error) {
	var affiliator models.Affiliator
	if err := r.db.Where("username = ?", username).First(&affiliator).Error; err != nil {
		return nil, err
	}
	return &affiliator, nil
}

// GetByReferralCode retrieves an affiliator by referral code regardless of
// its active flag.
func (r *GormAffiliatorRepository) GetByReferralCode(code string) (*models.Affiliator, error) {
	var affiliator models.Affiliator
	if err := r.db.Where("referral_code = ?", code).First(&affiliator).Error; err != nil {
		return nil, err
	}
	return &affiliator, nil
}

// GetActiveByReferralCode retrieves an affiliator by referral code, matching
// only active rows.
func (r *GormAffiliatorRepository) GetActiveByReferralCode(code string) (*models.Affiliator, error) {
	var affiliator models.Affiliator
	if err := r.db.Where("referral_code = ? AND is_active = ?", code, true).First(&affiliator).Error; err != nil {
		return nil, err
	}
	return &affiliator, nil
}

// TopByEarnings returns up to limit affiliators ordered by robux_earned
// descending. This is the legacy registry listing.
func (r *GormAffiliatorRepository) TopByEarnings(limit int) ([]models.Affiliator, error) {
	var affiliators []models.Affiliator
	if err := r.db.Order("robux_earned DESC").Limit(limit).Find(&affiliators).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve top affiliators: %w", err)
	}
	return affiliators, nil
}

// Leaderboard reads up to limit rows from the pre-aggregated
// vw_top_affiliators view.
func (r *GormAffiliatorRepository) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := r.db.Table("vw_top_affiliators").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to read leaderboard view: %w", err)
	}
	return entries, nil
}

// AddEarnings atomically adds amount to both earnings counters of the named
// affiliator. The increment happens in the store, not via read-modify-write,
// so concurrent registrations cannot lose updates.
func (r *GormAffiliatorRepository) AddEarnings(username string, amount float64) (int64, error) {
	result := r.db.Model(&models.Affiliator{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"robux_earned":       gorm.Expr("robux_earned + ?", amount),
			"total_robux_earned": gorm.Expr("total_robux_earned + ?", amount),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to add earnings for %s: %w", username, result.Error)
	}
	return result.RowsAffected, nil
}

// ApplyConversion credits a completed conversion to the owner of the given
// referral code: bumps the conversion counter and adds the commission to both
// earnings counters in a single atomic update.
func (r *GormAffiliatorRepository) ApplyConversion(code string, commission float64) error {
	err := r.db.Model(&models.Affiliator{}).
		Where("referral_code = ?", code).
		Updates(map[string]any{
			"total_conversions":  gorm.Expr("total_conversions + ?", 1),
			"robux_earned":       gorm.Expr("robux_earned + ?", commission),
			"total_robux_earned": gorm.Expr("total_robux_earned + ?", commission),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to apply conversion for code %s: %w", code, err)
	}
	return nil
}

// SetEarnings overwrites both earnings counters with the exact amount.
func (r *GormAffiliatorRepository) SetEarnings(username string, amount float64) (int64, error) {
	result := r.db.Model(&models.Affiliator{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"robux_earned":       amount,
			"total_robux_earned": amount,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set earnings for %s: %w", username, result.Error)
	}
	return result.RowsAffected, nil
}

// SetActive toggles the active flag of the named affiliator.
func (r *GormAffiliatorRepository) SetActive(username string, active bool) (int64, error) {
	result := r.db.Model(&models.Affiliator{}).
		Where("username = ?", username).
		Update("is_active", active)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set active flag for %s: %w", username, result.Error)
	}
	return result.RowsAffected, nil
}

// IncrementClicks atomically bumps total_clicks for the owner of the given
// referral code. Replaces the hosted store's increment procedure.
func (r *GormAffiliatorRepository) IncrementClicks(code string) error {
	err := r.db.Model(&models.Affiliator{}).
		Where("referral_code = ?", code).
		Update("total_clicks", gorm.Expr("total_clicks + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment clicks for code %s: %w", code, err)
	}
	return nil
}

// DeleteByUsername removes the affiliator row. Deleting an unknown username
// is a no-op, not an error.
func (r *GormAffiliatorRepository) DeleteByUsername(username string) error {
	if err := r.db.Where("username = ?", username).Delete(&models.Affiliator{}).Error; err != nil {
		return fmt.Errorf("failed to delete affiliator %s: %w", username, err)
	}
	return nil
}
