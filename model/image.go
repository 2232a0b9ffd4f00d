package model

import "time"

type GeneratedImage struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index;not null"`

	Prompt     string `json:"prompt"`
	ImageURL   string `json:"image_url"`
	AnimalName string `json:"animal_name" gorm:"size:100"`

	IsFavorite bool `json:"is_favorite" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
