package seeders

import (
	"errors"
	"log"
	"time"

	"github.com/criss159/fauna-kids/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AchievementSeeder loads the achievement catalog. Seeding is
// idempotent and keyed by code: existing rows are updated in place so
// reward or copy changes roll out without touching user unlocks.
type AchievementSeeder struct {
	db *gorm.DB
}

func NewAchievementSeeder(db *gorm.DB) *AchievementSeeder {
	return &AchievementSeeder{db: db}
}

func (s *AchievementSeeder) SeedAchievements() error {
	achievements := s.getAchievementCatalog()

	created := 0
	updated := 0
	for _, achievement := range achievements {
		var existing model.Achievement
		err := s.db.Where("code = ?", achievement.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			id, _ := uuid.NewV7()
			achievement.ID = id.String()
			achievement.CreatedAt = time.Now().UTC()
			if err := s.db.Create(&achievement).Error; err != nil {
				log.Printf("Error creating achievement %s: %v", achievement.Code, err)
				return err
			}
			created++
			continue
		}
		if err != nil {
			log.Printf("Error checking achievement %s: %v", achievement.Code, err)
			return err
		}

		achievement.ID = existing.ID
		achievement.CreatedAt = existing.CreatedAt
		if err := s.db.Save(&achievement).Error; err != nil {
			log.Printf("Error updating achievement %s: %v", achievement.Code, err)
			return err
		}
		updated++
	}

	log.Printf("Achievement seeding completed: %d created, %d updated", created, updated)
	return nil
}

func (s *AchievementSeeder) getAchievementCatalog() []model.Achievement {
	return []model.Achievement{
		// Questions
		{
			Code:             "first_question",
			Name:             "Primera Pregunta",
			Description:      "Haz tu primera pregunta sobre un animal",
			IconEmoji:        "❓",
			RequirementType:  "questions_asked",
			RequirementValue: 1,
			PointsReward:     10,
		},
		{
			Code:             "curious_mind",
			Name:             "Mente Curiosa",
			Description:      "Realiza 10 preguntas",
			IconEmoji:        "🤔",
			RequirementType:  "questions_asked",
			RequirementValue: 10,
			PointsReward:     50,
		},
		{
			Code:             "question_master",
			Name:             "Maestro de Preguntas",
			Description:      "Realiza 50 preguntas",
			IconEmoji:        "🎓",
			RequirementType:  "questions_asked",
			RequirementValue: 50,
			PointsReward:     150,
		},

		// Animals
		{
			Code:             "first_discovery",
			Name:             "Primer Descubrimiento",
			Description:      "Explora tu primer animal",
			IconEmoji:        "🐾",
			RequirementType:  "animals_explored",
			RequirementValue: 1,
			PointsReward:     10,
		},
		{
			Code:             "animal_enthusiast",
			Name:             "Fanático de Animales",
			Description:      "Explora 10 animales diferentes",
			IconEmoji:        "🦁",
			RequirementType:  "animals_explored",
			RequirementValue: 10,
			PointsReward:     50,
		},
		{
			Code:             "wildlife_expert",
			Name:             "Experto en Vida Silvestre",
			Description:      "Explora 25 animales diferentes",
			IconEmoji:        "🌍",
			RequirementType:  "animals_explored",
			RequirementValue: 25,
			PointsReward:     100,
		},
		{
			Code:             "animal_master",
			Name:             "Maestro Animal",
			Description:      "Explora 50 animales diferentes",
			IconEmoji:        "👑",
			RequirementType:  "animals_explored",
			RequirementValue: 50,
			PointsReward:     250,
		},

		// Images
		{
			Code:             "first_image",
			Name:             "Primera Creación",
			Description:      "Genera tu primera imagen con IA",
			IconEmoji:        "🎨",
			RequirementType:  "images_generated",
			RequirementValue: 1,
			PointsReward:     15,
		},
		{
			Code:             "artist",
			Name:             "Artista",
			Description:      "Genera 10 imágenes",
			IconEmoji:        "🖼️",
			RequirementType:  "images_generated",
			RequirementValue: 10,
			PointsReward:     75,
		},
		{
			Code:             "master_artist",
			Name:             "Maestro Artista",
			Description:      "Genera 25 imágenes",
			IconEmoji:        "🎭",
			RequirementType:  "images_generated",
			RequirementValue: 25,
			PointsReward:     200,
		},

		// Streaks
		{
			Code:             "streak_3",
			Name:             "Constancia",
			Description:      "Mantén una racha de 3 días consecutivos",
			IconEmoji:        "🔥",
			RequirementType:  "streak_days",
			RequirementValue: 3,
			PointsReward:     30,
		},
		{
			Code:             "streak_7",
			Name:             "Dedicación",
			Description:      "Mantén una racha de 7 días consecutivos",
			IconEmoji:        "⚡",
			RequirementType:  "streak_days",
			RequirementValue: 7,
			PointsReward:     100,
		},
		{
			Code:             "streak_30",
			Name:             "Compromiso Total",
			Description:      "Mantén una racha de 30 días consecutivos",
			IconEmoji:        "💪",
			RequirementType:  "streak_days",
			RequirementValue: 30,
			PointsReward:     500,
		},

		// Points
		{
			Code:             "points_100",
			Name:             "Primer Centenar",
			Description:      "Acumula 100 puntos",
			IconEmoji:        "💯",
			RequirementType:  "total_points",
			RequirementValue: 100,
			PointsReward:     20,
		},
		{
			Code:             "points_500",
			Name:             "Coleccionista",
			Description:      "Acumula 500 puntos",
			IconEmoji:        "💰",
			RequirementType:  "total_points",
			RequirementValue: 500,
			PointsReward:     50,
		},
		{
			Code:             "points_1000",
			Name:             "Millonario",
			Description:      "Acumula 1000 puntos",
			IconEmoji:        "💎",
			RequirementType:  "total_points",
			RequirementValue: 1000,
			PointsReward:     100,
		},

		// Sessions
		{
			Code:             "session_10",
			Name:             "Explorador Activo",
			Description:      "Completa 10 sesiones de chat",
			IconEmoji:        "📝",
			RequirementType:  "sessions_completed",
			RequirementValue: 10,
			PointsReward:     40,
		},
		{
			Code:             "session_50",
			Name:             "Conversador Experto",
			Description:      "Completa 50 sesiones de chat",
			IconEmoji:        "💬",
			RequirementType:  "sessions_completed",
			RequirementValue: 50,
			PointsReward:     150,
		},
	}
}
