package dto

import "time"

type UpdateSettingsRequest struct {
	VoiceEnabled *bool   `json:"voice_enabled"`
	Theme        *string `json:"theme" validate:"omitempty,max=50"`
}

func (r UpdateSettingsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SettingsResponse struct {
	VoiceEnabled bool   `json:"voice_enabled"`
	Theme        string `json:"theme"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

func (r UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UserStatsResponse struct {
	TotalAnimals  int `json:"total_animals"`
	TotalChats    int `json:"total_chats"`
	TotalMessages int `json:"total_messages"`
	CurrentStreak int `json:"current_streak"`
}

type ProgressResponse struct {
	TotalAnimalsExplored int        `json:"total_animals_explored"`
	TotalQuestionsAsked  int        `json:"total_questions_asked"`
	TotalImagesGenerated int        `json:"total_images_generated"`
	TotalSessions        int        `json:"total_sessions"`
	CurrentStreakDays    int        `json:"current_streak_days"`
	LongestStreakDays    int        `json:"longest_streak_days"`
	LastActivityDate     *time.Time `json:"last_activity_date"`
	TotalPoints          int        `json:"total_points"`
	CurrentLevel         int        `json:"current_level"`
	PointsToNextLevel    int        `json:"points_to_next_level"`
}

type AchievementProgressResponse struct {
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	IconEmoji        string     `json:"icon_emoji"`
	PointsReward     int        `json:"points_reward"`
	CurrentProgress  int        `json:"current_progress"`
	RequiredProgress int        `json:"required_progress"`
	IsUnlocked       bool       `json:"is_unlocked"`
	UnlockedAt       *time.Time `json:"unlocked_at,omitempty"`
}
