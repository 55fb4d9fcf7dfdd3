package models

import "time"

// CommissionRate is the fixed percentage of a conversion's Robux amount
// credited to the referring affiliator.
const CommissionRate = 10.00

// ReferralClick is an append-only record of a visit through a referral link.
// Converted defaults to false and is flipped out-of-band when a purchase is
// later attributed to the click; this code never updates existing rows.
type ReferralClick struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReferralCode string    `gorm:"index;size:30;not null" json:"referral_code"`
	Converted    bool      `gorm:"not null;default:false" json:"converted"`
	ClickedAt    time.Time `json:"clicked_at"`
}

func (ReferralClick) TableName() string {
	return "referral_clicks"
}

// ReferralConversion is an append-only record of a purchase attributed to a
// referral code. Inserting one causes the hosted store's trigger to update
// the owning affiliator's total_conversions and total_robux_earned.
type ReferralConversion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AffiliatorID uint   `gorm:"index;not null" json:"affiliator_id"`
	ReferralCode string `gorm:"index;size:30;not null" json:"referral_code"`

	RobuxAmount float64 `gorm:"not null" json:"robux_amount"`
	PricePHP    float64 `gorm:"not null" json:"price_php"`

	// CommissionRobux = RobuxAmount * CommissionRate / 100, computed at
	// insert time so the record stands on its own.
	CommissionRobux float64 `gorm:"not null" json:"commission_robux"`
	CommissionRate  float64 `gorm:"not null" json:"commission_rate"`

	// IPAddress is best-effort, "unknown" when no forwarding header is set.
	IPAddress string `gorm:"size:50" json:"ip_address"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ReferralConversion) TableName() string {
	return "referral_conversions"
}

// ClickEvent is the lightweight payload passed from the track-click handler
// to the worker pool over the click events channel.
type ClickEvent struct {
	ReferralCode string
	ClickedAt    time.Time
}
