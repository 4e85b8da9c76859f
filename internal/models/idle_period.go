package models

import (
	"time"
)

// IdlePeriod records a span with no user input. EndTime and Duration
// stay null while the period is still open.
type IdlePeriod struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  *int64     `json:"duration"` // Duration in seconds
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
