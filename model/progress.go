package model

import "time"

// UserProgress is the per-user gamification ledger. Counters only grow
// and only the progress service mutates them.
type UserProgress struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null"`

	TotalAnimalsExplored int `json:"total_animals_explored" gorm:"default:0"`
	TotalQuestionsAsked  int `json:"total_questions_asked" gorm:"default:0"`
	TotalImagesGenerated int `json:"total_images_generated" gorm:"default:0"`
	TotalSessions        int `json:"total_sessions" gorm:"default:0"`

	CurrentStreakDays int        `json:"current_streak_days" gorm:"default:0"`
	LongestStreakDays int        `json:"longest_streak_days" gorm:"default:0"`
	LastActivityDate  *time.Time `json:"last_activity_date"`

	TotalPoints       int `json:"total_points" gorm:"default:0"`
	CurrentLevel      int `json:"current_level" gorm:"default:1"`
	PointsToNextLevel int `json:"points_to_next_level" gorm:"default:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnimalExplored tracks each distinct animal a user has asked about.
// Rows are created on first detection and only ever incremented.
type AnimalExplored struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex:idx_user_animal;not null"`

	AnimalName    string `json:"animal_name" gorm:"uniqueIndex:idx_user_animal;size:100;not null"`
	TimesExplored int    `json:"times_explored" gorm:"default:1"`
	IsFavorite    bool   `json:"is_favorite" gorm:"default:false"`

	FirstExploredAt time.Time `json:"first_explored_at"`
	LastExploredAt  time.Time `json:"last_explored_at" gorm:"index"`
}
