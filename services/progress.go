package services

import (
	"time"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// ProgressService owns the gamification ledger: points, levels, streaks,
// explored animals and achievement unlocks. All counter mutations go
// through here so achievement progress never drifts from the counters.
type ProgressService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func (svc *ProgressService) InitializeUser(userID string) error {
	if _, err := svc.sqlSvc.GetOrCreateProgress(userID); err != nil {
		return err
	}
	_, err := svc.sqlSvc.GetOrCreateSettings(userID)
	return err
}

// AddPoints credits points and cascades level-ups. The threshold grows
// by half (truncating) on every level: 100, 150, 225, 337, ...
// Leftover points carry into the new level.
func (svc *ProgressService) AddPoints(progress *model.UserProgress, points int) {
	if points <= 0 {
		return
	}

	progress.TotalPoints += points
	for progress.TotalPoints >= progress.PointsToNextLevel {
		progress.TotalPoints -= progress.PointsToNextLevel
		progress.CurrentLevel++
		progress.PointsToNextLevel = int(float64(progress.PointsToNextLevel) * 1.5)
	}
}

// CheckUnlock latches an achievement once its progress reaches the
// requirement. The latch is one-way: a second call with the same (or
// higher) progress changes nothing and never pays the reward again.
func (svc *ProgressService) CheckUnlock(ua *model.UserAchievement, achievement *model.Achievement, progress *model.UserProgress) bool {
	if ua.IsUnlocked {
		return false
	}
	if ua.CurrentProgress < ua.RequiredProgress {
		return false
	}

	now := time.Now().UTC()
	ua.IsUnlocked = true
	ua.UnlockedAt = &now
	svc.AddPoints(progress, achievement.PointsReward)
	return true
}

// RecordActivity advances the daily streak. Same calendar day is a
// no-op, the next day increments, any gap resets to 1.
func (svc *ProgressService) RecordActivity(progress *model.UserProgress, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if progress.LastActivityDate == nil {
		progress.CurrentStreakDays = 1
	} else {
		last := *progress.LastActivityDate
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
		switch days := int(today.Sub(lastDay).Hours() / 24); {
		case days == 0:
			return
		case days == 1:
			progress.CurrentStreakDays++
		default:
			progress.CurrentStreakDays = 1
		}
	}

	progress.LastActivityDate = &today
	if progress.CurrentStreakDays > progress.LongestStreakDays {
		progress.LongestStreakDays = progress.CurrentStreakDays
	}
}

// RegisterQuestionAsked bumps the question counter, streak and related
// achievements for one explorer turn.
func (svc *ProgressService) RegisterQuestionAsked(userID string) {
	svc.applyCounter(userID, func(p *model.UserProgress) (string, int) {
		p.TotalQuestionsAsked++
		return shared.RequirementQuestionsAsked, p.TotalQuestionsAsked
	})
}

// RegisterAnimalExplored records one detection of an animal. Only the
// first sighting of a given animal grows TotalAnimalsExplored.
func (svc *ProgressService) RegisterAnimalExplored(userID, animal string) {
	_, first, err := svc.sqlSvc.FindOrCreateAnimalExplored(userID, animal)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to record explored animal")
		return
	}
	if svc.monitoringSvc != nil {
		svc.monitoringSvc.AnimalDetected(animal)
	}
	if !first {
		return
	}

	svc.applyCounter(userID, func(p *model.UserProgress) (string, int) {
		p.TotalAnimalsExplored++
		return shared.RequirementAnimalsExplored, p.TotalAnimalsExplored
	})
}

func (svc *ProgressService) RegisterImageGenerated(userID string) {
	svc.applyCounter(userID, func(p *model.UserProgress) (string, int) {
		p.TotalImagesGenerated++
		return shared.RequirementImagesGenerated, p.TotalImagesGenerated
	})
}

func (svc *ProgressService) RegisterSessionCompleted(userID string) {
	svc.applyCounter(userID, func(p *model.UserProgress) (string, int) {
		p.TotalSessions++
		return shared.RequirementSessionsCompleted, p.TotalSessions
	})
}

// applyCounter loads progress, applies one counter bump, refreshes the
// streak, then routes the new counter value into the matching
// achievement family. Streak and points achievements are re-checked on
// every bump because those counters move as side effects.
func (svc *ProgressService) applyCounter(userID string, bump func(*model.UserProgress) (string, int)) {
	progress, err := svc.sqlSvc.GetOrCreateProgress(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load user progress")
		return
	}

	requirementType, value := bump(progress)
	svc.RecordActivity(progress, time.Now().UTC())

	svc.advanceAchievements(userID, progress, requirementType, value)
	svc.advanceAchievements(userID, progress, shared.RequirementStreakDays, progress.CurrentStreakDays)
	svc.advanceAchievements(userID, progress, shared.RequirementTotalPoints, svc.lifetimePoints(progress))

	if err := svc.sqlSvc.UpdateProgress(progress); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to persist user progress")
	}
}

// lifetimePoints reconstructs total points ever earned from the level
// chain, since TotalPoints only holds the in-level remainder.
func (svc *ProgressService) lifetimePoints(progress *model.UserProgress) int {
	total := progress.TotalPoints
	threshold := 100
	for level := 1; level < progress.CurrentLevel; level++ {
		total += threshold
		threshold = int(float64(threshold) * 1.5)
	}
	return total
}

func (svc *ProgressService) advanceAchievements(userID string, progress *model.UserProgress, requirementType string, value int) {
	achievements, err := svc.sqlSvc.GetAchievementsByType(requirementType)
	if err != nil {
		log.WithError(err).WithField("requirement_type", requirementType).Warn("Failed to load achievements")
		return
	}

	for i := range achievements {
		achievement := &achievements[i]
		ua, err := svc.sqlSvc.GetOrCreateUserAchievement(userID, achievement)
		if err != nil {
			log.WithError(err).WithField("achievement", achievement.Code).Warn("Failed to load user achievement")
			continue
		}
		if ua.IsUnlocked {
			continue
		}

		if value > ua.CurrentProgress {
			ua.CurrentProgress = value
		}
		if svc.CheckUnlock(ua, achievement, progress) {
			log.WithFields(log.Fields{
				"user_id":     userID,
				"achievement": achievement.Code,
			}).Info("Achievement unlocked")
		}
		if err := svc.sqlSvc.UpdateUserAchievement(ua); err != nil {
			log.WithError(err).WithField("achievement", achievement.Code).Warn("Failed to persist user achievement")
		}
	}
}

// --- Read models ---

func (svc *ProgressService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	progress, err := svc.sqlSvc.GetOrCreateProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load progress")
	}

	return &dto.ProgressResponse{
		TotalAnimalsExplored: progress.TotalAnimalsExplored,
		TotalQuestionsAsked:  progress.TotalQuestionsAsked,
		TotalImagesGenerated: progress.TotalImagesGenerated,
		TotalSessions:        progress.TotalSessions,
		CurrentStreakDays:    progress.CurrentStreakDays,
		LongestStreakDays:    progress.LongestStreakDays,
		LastActivityDate:     progress.LastActivityDate,
		TotalPoints:          progress.TotalPoints,
		CurrentLevel:         progress.CurrentLevel,
		PointsToNextLevel:    progress.PointsToNextLevel,
	}, nil
}

// GetAchievements returns the full catalog with the user's progress
// merged in; achievements the user has not touched come back at zero.
func (svc *ProgressService) GetAchievements(userID string) ([]dto.AchievementProgressResponse, error) {
	catalog, err := svc.sqlSvc.GetAchievements()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load achievements")
	}

	userAchievements, err := svc.sqlSvc.GetUserAchievements(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load achievements")
	}
	byAchievement := make(map[string]*model.UserAchievement, len(userAchievements))
	for i := range userAchievements {
		byAchievement[userAchievements[i].AchievementID] = &userAchievements[i]
	}

	out := make([]dto.AchievementProgressResponse, 0, len(catalog))
	for _, achievement := range catalog {
		resp := dto.AchievementProgressResponse{
			Code:             achievement.Code,
			Name:             achievement.Name,
			Description:      achievement.Description,
			IconEmoji:        achievement.IconEmoji,
			PointsReward:     achievement.PointsReward,
			RequiredProgress: achievement.RequirementValue,
		}
		if ua, ok := byAchievement[achievement.ID]; ok {
			resp.CurrentProgress = ua.CurrentProgress
			resp.IsUnlocked = ua.IsUnlocked
			resp.UnlockedAt = ua.UnlockedAt
		}
		out = append(out, resp)
	}
	return out, nil
}

func (svc *ProgressService) GetStats(userID string) (*dto.UserStatsResponse, error) {
	progress, err := svc.sqlSvc.GetOrCreateProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load stats")
	}

	chats, err := svc.sqlSvc.CountChats(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load stats")
	}
	messages, err := svc.sqlSvc.CountChatMessages(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load stats")
	}

	return &dto.UserStatsResponse{
		TotalAnimals:  progress.TotalAnimalsExplored,
		TotalChats:    int(chats),
		TotalMessages: int(messages),
		CurrentStreak: progress.CurrentStreakDays,
	}, nil
}

func (svc *ProgressService) GetAnimalsExplored(userID string) ([]dto.AnimalExploredResponse, error) {
	animals, err := svc.sqlSvc.GetAnimalsExplored(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load explored animals")
	}

	out := make([]dto.AnimalExploredResponse, 0, len(animals))
	for _, a := range animals {
		out = append(out, dto.AnimalExploredResponse{
			ID:              a.ID,
			Name:            a.AnimalName,
			TimesExplored:   a.TimesExplored,
			IsFavorite:      a.IsFavorite,
			FirstExploredAt: a.FirstExploredAt,
			LastExploredAt:  a.LastExploredAt,
		})
	}
	return out, nil
}
