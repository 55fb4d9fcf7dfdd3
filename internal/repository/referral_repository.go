package repository

import (
	"fmt"

	"github.com/dondigital/storefront/internal/models"
	"gorm.io/gorm"
)

// ReferralRepository defines the data access methods for referral events.
type ReferralRepository interface {
	CreateClick(click *models.ReferralClick) error
	CreateConversion(conversion *models.ReferralConversion) error
	CountClicksByCode(code string) (int, error)
}

// GormReferralRepository is the ReferralRepository implementation using GORM.
type GormReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates and returns a new GormReferralRepository.
func NewReferralRepository(db *gorm.DB) *GormReferralRepository {
	return &GormReferralRepository{db: db}
}

// CreateClick inserts a new click event.
func (r *GormReferralRepository) CreateClick(click *models.ReferralClick) error {
	if err := r.db.Create(click).Error; err != nil {
		return fmt.Errorf("failed to create referral click: %w", err)
	}
	return nil
}

// CreateConversion inserts a new conversion record. The hosted store's
// trigger reacts to this insert by updating the owning affiliator's
// aggregate counters.
func (r *GormReferralRepository) CreateConversion(conversion *models.ReferralConversion) error {
	if err := r.db.Create(conversion).Error; err != nil {
		return fmt.Errorf("failed to create referral conversion: %w", err)
	}
	return nil
}

// CountClicksByCode counts the recorded clicks for a referral code.
func (r *GormReferralRepository) CountClicksByCode(code string) (int, error) {
	var count int64
	if err := r.db.Model(&models.ReferralClick{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clicks for code %s: %w", code, err)
	}
	return int(count), nil
}
