package model

import "time"

// Visibility is a post or profile visibility tier.
type Visibility string

const (
	VisibilityEveryone  Visibility = "everyone"
	VisibilityFollowers Visibility = "followers"
	VisibilityMe        Visibility = "me"
)

// Valid reports whether v is one of the known tiers.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityEveryone, VisibilityFollowers, VisibilityMe:
		return true
	}
	return false
}

const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Firstname      string `gorm:"size:64;not null" json:"firstname"`
	Lastname       string `gorm:"size:64;not null" json:"lastname"`
	DisplayName    string `gorm:"size:64" json:"display_name"`
	Password       string `gorm:"size:255;not null" json:"-"`
	Role           int    `gorm:"not null;default:0" json:"role"`
	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`
	ProfilePicture string `gorm:"size:255" json:"profile_picture"`
	CoverPicture   string `gorm:"size:255" json:"cover_picture"`
	Bio            string `gorm:"size:255" json:"bio"`
	Gender         string `gorm:"size:16" json:"gender"`
	DateOfBirth    string `gorm:"size:32" json:"date_of_birth"`
	PhoneNumber    string `gorm:"size:32" json:"phone_number"`
	Website        string `gorm:"size:128" json:"website"`
	Location       string `gorm:"size:128" json:"location"`

	// Defaults applied to new posts; the account owner always sees their own
	// content regardless of these.
	PostVisibility    Visibility `gorm:"size:16;not null;default:everyone" json:"post_visibility"`
	ProfileVisibility Visibility `gorm:"size:16;not null;default:everyone" json:"profile_visibility"`

	// CanBeFollowed gates new follow requests only; existing followers keep
	// their edge when the flag is switched off.
	CanBeFollowed bool `gorm:"not null;default:1" json:"can_be_followed"`

	FollowerCount  int64 `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64 `gorm:"not null;default:0" json:"following_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
