package model

import "time"

// GuestSession is an ephemeral, token-keyed session with a 24h lifetime.
// It is not linked to a durable User and is reaped after expiry.
type GuestSession struct {
	ID           string `json:"id" gorm:"primaryKey"`
	SessionToken string `json:"session_token" gorm:"uniqueIndex;size:255;not null"`
	UserNickname string `json:"user_nickname" gorm:"size:50"`

	IPAddress string `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent string `json:"user_agent,omitempty" gorm:"size:500"`

	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index;not null"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func (s *GuestSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
