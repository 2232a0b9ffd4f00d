package model

import "time"

// User supports registered accounts (email set), Google OAuth accounts
// and guests (no email). IsGuest is true exactly when Email is nil.
type User struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Username    string  `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email       *string `json:"email" gorm:"uniqueIndex;size:255"`
	DisplayName string  `json:"display_name" gorm:"size:100"`
	Password    string  `json:"-" gorm:"size:255"`

	AccountType string `json:"account_type" gorm:"size:20;default:registered"`
	IsGuest     bool   `json:"is_guest" gorm:"index;default:false"`

	GoogleID  *string `json:"google_id,omitempty" gorm:"uniqueIndex;size:255"`
	AvatarURL string  `json:"avatar_url" gorm:"size:500"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`

	Settings *UserSettings `json:"settings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Progress *UserProgress `json:"progress,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type UserSettings struct {
	UserID string `json:"user_id" gorm:"primaryKey"`

	VoiceEnabled bool   `json:"voice_enabled" gorm:"default:false"`
	Theme        string `json:"theme" gorm:"size:50;default:default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
