package model

import "time"

// Report is an incident report filed by a user.
type Report struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	UserID         uint64    `gorm:"not null;index" json:"user_id"`
	Location       string    `gorm:"size:255" json:"location"`
	Details        string    `gorm:"type:text" json:"details"`
	Image          string    `gorm:"size:255" json:"image"`
	Video          string    `gorm:"size:255" json:"video"`
	Date           time.Time `json:"date"`
	IsAcknowledged bool      `gorm:"not null;default:false" json:"is_acknowledged"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
