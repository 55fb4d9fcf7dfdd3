package models

import "time"

// StatisticsID is the fixed primary key of the statistics singleton row.
const StatisticsID = 1

// Statistics is the single-row table holding global storefront state: the
// currently available Robux balance and the operating hours. Exactly one row
// with ID = StatisticsID exists at all times; migrate creates it.
type Statistics struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	CurrentRobux        int       `gorm:"not null;default:0" json:"current_robux"`
	OperatingHoursStart string    `gorm:"size:20" json:"operating_hours_start"`
	OperatingHoursEnd   string    `gorm:"size:20" json:"operating_hours_end"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Statistics) TableName() string {
	return "statistics"
}
