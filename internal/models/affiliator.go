package models

import "time"

// Affiliator represents a referral partner earning commission on Robux sales.
// Two creation paths coexist: the legacy registry (no referral code, earnings
// tracked in RobuxEarned) and the referral system (generated code, counters).
// The canonical schema carries both sets of fields on a single row.
type Affiliator struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the natural key used by the registry endpoints.
	// Case-sensitive, stored trimmed.
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`

	// ReferralCode is present only for affiliators created through the
	// referral system. Legacy rows keep it NULL.
	ReferralCode *string `gorm:"uniqueIndex;size:30" json:"referral_code"`

	RobuxEarned      float64 `gorm:"not null;default:0" json:"robux_earned"`
	TotalRobuxEarned float64 `gorm:"not null;default:0" json:"total_robux_earned"`

	// TotalClicks is incremented by the click workers; TotalConversions and
	// the earnings counters are credited atomically when a conversion is
	// recorded. Counters are only ever mutated with in-store increments.
	TotalClicks      int `gorm:"not null;default:0" json:"total_clicks"`
	TotalConversions int `gorm:"not null;default:0" json:"total_conversions"`

	// IsActive carries no column default on purpose: gorm skips zero-valued
	// fields that have a default tag on insert, which would turn a row
	// created as inactive into an active one. Every create path sets the
	// flag explicitly.
	IsActive        bool    `gorm:"not null" json:"is_active"`
	FacebookProfile *string `gorm:"size:255" json:"facebook_profile,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name aligned with the hosted store.
func (Affiliator) TableName() string {
	return "affiliators"
}

// LeaderboardEntry mirrors one row of the vw_top_affiliators view. The view
// exposes earnings under total_robux_earned; the API reports the value as
// robux_earned, hence the diverging column and json tags.
type LeaderboardEntry struct {
	Username         string    `gorm:"column:username" json:"username"`
	ReferralCode     *string   `gorm:"column:referral_code" json:"referral_code"`
	RobuxEarned      float64   `gorm:"column:total_robux_earned" json:"robux_earned"`
	TotalClicks      int       `gorm:"column:total_clicks" json:"total_clicks"`
	TotalConversions int       `gorm:"column:total_conversions" json:"total_conversions"`
	ConversionRate   float64   `gorm:"column:conversion_rate" json:"conversion_rate"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}
