package model

import "time"

// Achievement is immutable catalog data, seeded by code.
type Achievement struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;size:50;not null"`

	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
	IconEmoji   string `json:"icon_emoji" gorm:"size:10;default:🏆"`

	RequirementType  string `json:"requirement_type" gorm:"size:50;not null"`
	RequirementValue int    `json:"requirement_value" gorm:"not null"`

	PointsReward int `json:"points_reward" gorm:"default:10"`

	CreatedAt time.Time `json:"created_at"`
}

// UserAchievement records progress toward one achievement. IsUnlocked
// is a one-way latch; once set it never reverts and the reward is never
// paid again.
type UserAchievement struct {
	ID            string `json:"id" gorm:"primaryKey"`
	UserID        string `json:"user_id" gorm:"uniqueIndex:idx_user_achievement;not null"`
	AchievementID string `json:"achievement_id" gorm:"uniqueIndex:idx_user_achievement;not null"`

	CurrentProgress  int `json:"current_progress" gorm:"default:0"`
	RequiredProgress int `json:"required_progress" gorm:"not null"`

	IsUnlocked bool       `json:"is_unlocked" gorm:"index;default:false"`
	UnlockedAt *time.Time `json:"unlocked_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE"`
}
