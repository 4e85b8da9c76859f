package models

import (
	"time"
)

// FocusInterval records a contiguous span of time spent in one window.
// Timestamp marks the start of the interval.
type FocusInterval struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	AppName     string    `gorm:"not null" json:"app_name"`
	WindowTitle string    `gorm:"not null" json:"window_title"`
	Duration    int64     `gorm:"not null;default:0" json:"duration"` // Duration in seconds
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
