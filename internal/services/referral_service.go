package services

import (
	"errors"

	"gorm.io/gorm"

	customerrors "github.com/dondigital/storefront/internal/errors"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// ValidationResult is the answer of the referral validator. Reason is set
// only for negative results ("not_found" or "inactive"); Username only for
// positive ones.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
	Username string `json:"username,omitempty"`
}

// ReferralService provides business logic for click tracking, conversion
// tracking and code validation.
type ReferralService struct {
	affiliatorRepo repository.AffiliatorRepository
	referralRepo   repository.ReferralRepository
}

// NewReferralService creates and returns a new ReferralService.
func NewReferralService(affiliatorRepo repository.AffiliatorRepository, referralRepo repository.ReferralRepository) *ReferralService {
	return &ReferralService{
		affiliatorRepo: affiliatorRepo,
		referralRepo:   referralRepo,
	}
}

// LookupForClick resolves a referral code ahead of click tracking. Unknown
// codes return ErrReferralCodeNotFound; codes whose affiliator has been
// deactivated return ErrReferralCodeInactive. Clicks are never counted for
// inactive codes.
func (s *ReferralService) LookupForClick(code string) (*models.Affiliator, error) {
	affiliator, err := s.affiliatorRepo.GetByReferralCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrReferralCodeNotFound
		}
		return nil, err
	}
	if !affiliator.IsActive {
		return nil, customerrors.ErrReferralCodeInactive
	}
	return affiliator, nil
}

// RecordClick persists a click event and then bumps the owning affiliator's
// click counter atomically in the store. Used by the click workers, not the
// HTTP handler; the handler reports success as soon as the event is queued.
func (s *ReferralService) RecordClick(event models.ClickEvent) error {
	click := &models.ReferralClick{
		ReferralCode: event.ReferralCode,
		Converted:    false,
		ClickedAt:    event.ClickedAt,
	}
	if err := s.referralRepo.CreateClick(click); err != nil {
		return err
	}
	return s.affiliatorRepo.IncrementClicks(event.ReferralCode)
}

// RecordConversion inserts a conversion for an active referral code with the
// commission computed at the fixed rate, then credits the commission and the
// conversion count to the affiliator atomically in the store. Unlike click
// tracking, a failed insert here is fatal: a lost conversion record means
// lost commission.
func (s *ReferralService) RecordConversion(code string, robuxAmount, pricePHP float64, ipAddress string) (*models.ReferralConversion, error) {
	affiliator, err := s.affiliatorRepo.GetActiveByReferralCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrReferralCodeNotFound
		}
		return nil, err
	}

	conversion := &models.ReferralConversion{
		AffiliatorID:    affiliator.ID,
		ReferralCode:    code,
		RobuxAmount:     robuxAmount,
		PricePHP:        pricePHP,
		CommissionRobux: robuxAmount * models.CommissionRate / 100,
		CommissionRate:  models.CommissionRate,
		IPAddress:       ipAddress,
	}
	if err := s.referralRepo.CreateConversion(conversion); err != nil {
		return nil, err
	}
	if err := s.affiliatorRepo.ApplyConversion(code, conversion.CommissionRobux); err != nil {
		return nil, err
	}
	return conversion, nil
}

// Validate answers whether a referral code is known and active. Absence is a
// normal negative result, never an error.
func (s *ReferralService) Validate(code string) (ValidationResult, error) {
	affiliator, err := s.affiliatorRepo.GetByReferralCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationResult{Valid: false, Reason: "not_found"}, nil
		}
		return ValidationResult{}, err
	}
	if !affiliator.IsActive {
		return ValidationResult{Valid: false, Reason: "inactive"}, nil
	}
	return ValidationResult{Valid: true, Username: affiliator.Username}, nil
}

// FacebookProfile returns the Facebook profile link of an active affiliator,
// or nil when none is set. Unknown and inactive codes both answer
// ErrAffiliatorNotFound.
func (s *ReferralService) FacebookProfile(code string) (*string, error) {
	affiliator, err := s.affiliatorRepo.GetActiveByReferralCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrAffiliatorNotFound
		}
		return nil, err
	}
	return affiliator.FacebookProfile, nil
}
