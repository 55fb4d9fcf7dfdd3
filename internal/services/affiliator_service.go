// Package services contains the business logic layer for the storefront API.
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"

	"gorm.io/gorm"

	customerrors "github.com/dondigital/storefront/internal/errors"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// codeCharset is the character set for the random suffix of generated
// referral codes. Uppercase plus digits keeps codes readable in links.
const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeRetries bounds the collision retry loop during code generation.
const maxCodeRetries = 5

// AffiliatorService provides business logic for the affiliator registry,
// including referral code generation (replacing the store-side procedure of
// the original deployment).
type AffiliatorService struct {
	affiliatorRepo   repository.AffiliatorRepository
	baseURL          string
	codeSuffixLength int
}

// NewAffiliatorService creates and returns a new AffiliatorService.
// baseURL is the public storefront address referral links point at.
func NewAffiliatorService(affiliatorRepo repository.AffiliatorRepository, baseURL string, codeSuffixLength int) *AffiliatorService {
	if codeSuffixLength <= 0 {
		codeSuffixLength = 6
	}
	return &AffiliatorService{
		affiliatorRepo:   affiliatorRepo,
		baseURL:          baseURL,
		codeSuffixLength: codeSuffixLength,
	}
}

// TopAffiliators returns the legacy listing: up to 20 affiliators ordered by
// earnings descending.
func (s *AffiliatorService) TopAffiliators() ([]models.Affiliator, error) {
	return s.affiliatorRepo.TopByEarnings(20)
}

// Leaderboard returns up to limit pre-aggregated leaderboard rows. A
// non-positive limit falls back to 20.
func (s *AffiliatorService) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.affiliatorRepo.Leaderboard(limit)
}

// GenerateReferralCode builds a referral code from an uppercase prefix of the
// username and a random suffix, retrying on collision with existing codes.
func (s *AffiliatorService) GenerateReferralCode(username string) (string, error) {
	prefix := codePrefix(username)

	for i := 0; i < maxCodeRetries; i++ {
		suffix, err := randomCode(s.codeSuffixLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate code suffix: %w", err)
		}
		code := prefix + "-" + suffix

		_, err = s.affiliatorRepo.GetByReferralCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code, nil
			}
			return "", fmt.Errorf("database error checking code uniqueness: %w", err)
		}

		log.Printf("Referral code '%s' already exists, retrying generation (%d/%d)...", code, i+1, maxCodeRetries)
	}

	return "", customerrors.ErrCodeGenerationFailed
}

// codePrefix derives the alphanumeric uppercase prefix of a referral code
// from a username, capped at 4 characters with "REF" as fallback.
func codePrefix(username string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(username) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "REF"
	}
	return b.String()
}

// randomCode generates length random characters from codeCharset using
// crypto/rand.
func randomCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}

// CreateWithReferral registers a new affiliator in the referral system with a
// freshly generated code. Existing usernames are rejected; the registry PUT
// must be used to mutate them. Returns the created row and its referral link.
func (s *AffiliatorService) CreateWithReferral(username string, robuxEarned float64) (*models.Affiliator, string, error) {
	code, err := s.GenerateReferralCode(username)
	if err != nil {
		if errors.Is(err, customerrors.ErrCodeGenerationFailed) {
			return nil, "", err
		}
		return nil, "", customerrors.ErrCodeGenerationFailed
	}

	_, err = s.affiliatorRepo.GetByUsername(username)
	if err == nil {
		return nil, "", customerrors.ErrAffiliatorExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	affiliator := &models.Affiliator{
		Username:         username,
		ReferralCode:     &code,
		TotalRobuxEarned: robuxEarned,
		IsActive:         true,
	}
	if err := s.affiliatorRepo.Create(affiliator); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", customerrors.ErrUsernameTaken
		}
		return nil, "", err
	}

	return affiliator, s.referralLink(code), nil
}

// referralLink builds the public link for a referral code.
func (s *AffiliatorService) referralLink(code string) string {
	return fmt.Sprintf("%s?ref=%s", s.baseURL, code)
}

// RegisterEarnings is the legacy additive upsert: when the username exists,
// amount is added to both earnings counters atomically in the store;
// otherwise a fresh row is created with the exact initial values. The bool
// result reports whether a new row was created.
func (s *AffiliatorService) RegisterEarnings(username string, robuxEarned float64) (*models.Affiliator, bool, error) {
	rows, err := s.affiliatorRepo.AddEarnings(username, robuxEarned)
	if err != nil {
		return nil, false, err
	}
	if rows > 0 {
		affiliator, err := s.affiliatorRepo.GetByUsername(username)
		return affiliator, false, err
	}

	affiliator := &models.Affiliator{
		Username:         username,
		RobuxEarned:      robuxEarned,
		TotalRobuxEarned: robuxEarned,
		IsActive:         true,
	}
	if err := s.affiliatorRepo.Create(affiliator); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent first registration.
			return nil, false, customerrors.ErrUsernameTaken
		}
		return nil, false, err
	}
	return affiliator, true, nil
}

// SetEarnings overwrites both earnings counters with the exact amount.
func (s *AffiliatorService) SetEarnings(username string, robuxEarned float64) (*models.Affiliator, error) {
	rows, err := s.affiliatorRepo.SetEarnings(username, robuxEarned)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, customerrors.ErrAffiliatorNotFound
	}
	return s.affiliatorRepo.GetByUsername(username)
}

// SetActive toggles the active flag only.
func (s *AffiliatorService) SetActive(username string, active bool) (*models.Affiliator, error) {
	rows, err := s.affiliatorRepo.SetActive(username, active)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, customerrors.ErrAffiliatorNotFound
	}
	return s.affiliatorRepo.GetByUsername(username)
}

// Delete removes an affiliator. Unknown usernames succeed silently.
func (s *AffiliatorService) Delete(username string) error {
	return s.affiliatorRepo.DeleteByUsername(username)
}
