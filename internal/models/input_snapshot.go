package models

import (
	"time"
)

// InputSnapshot records the input counters drained at one metrics flush
type InputSnapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`
	KeyPresses    int64     `gorm:"not null;default:0" json:"key_presses"`
	MouseClicks   int64     `gorm:"not null;default:0" json:"mouse_clicks"`
	MouseDistance int64     `gorm:"not null;default:0" json:"mouse_distance"` // Distance in pixels
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
