package services

import (
	"testing"
	"time"

	"github.com/criss159/fauna-kids/model"

	"github.com/stretchr/testify/assert"
)

func TestAddPointsLevelChain(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 1, PointsToNextLevel: 100}

	// 250 points clears level 1 (100) and level 2 (150) exactly.
	svc.AddPoints(progress, 250)

	assert.Equal(t, 3, progress.CurrentLevel)
	assert.Equal(t, 0, progress.TotalPoints)
	assert.Equal(t, 225, progress.PointsToNextLevel)
}

func TestAddPointsCarriesRemainder(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 1, PointsToNextLevel: 100}

	svc.AddPoints(progress, 130)

	assert.Equal(t, 2, progress.CurrentLevel)
	assert.Equal(t, 30, progress.TotalPoints)
	assert.Equal(t, 150, progress.PointsToNextLevel)
}

func TestAddPointsThresholdTruncates(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 1, PointsToNextLevel: 100}

	// 100+150+225 = 475 clears three levels; the fourth threshold is
	// int(225*1.5) = 337, not 338.
	svc.AddPoints(progress, 475)

	assert.Equal(t, 4, progress.CurrentLevel)
	assert.Equal(t, 337, progress.PointsToNextLevel)
}

func TestAddPointsIgnoresNonPositive(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 2, PointsToNextLevel: 150, TotalPoints: 40}

	svc.AddPoints(progress, 0)
	svc.AddPoints(progress, -10)

	assert.Equal(t, 2, progress.CurrentLevel)
	assert.Equal(t, 40, progress.TotalPoints)
}

func TestCheckUnlockLatch(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 1, PointsToNextLevel: 100}
	achievement := &model.Achievement{PointsReward: 50}
	ua := &model.UserAchievement{CurrentProgress: 10, RequiredProgress: 10}

	assert.True(t, svc.CheckUnlock(ua, achievement, progress))
	assert.True(t, ua.IsUnlocked)
	assert.NotNil(t, ua.UnlockedAt)
	assert.Equal(t, 50, progress.TotalPoints)

	// Second call is a no-op: no second reward, timestamp untouched.
	unlockedAt := *ua.UnlockedAt
	assert.False(t, svc.CheckUnlock(ua, achievement, progress))
	assert.Equal(t, 50, progress.TotalPoints)
	assert.Equal(t, unlockedAt, *ua.UnlockedAt)
}

func TestCheckUnlockBelowRequirement(t *testing.T) {
	svc := &ProgressService{}
	progress := &model.UserProgress{CurrentLevel: 1, PointsToNextLevel: 100}
	achievement := &model.Achievement{PointsReward: 50}
	ua := &model.UserAchievement{CurrentProgress: 9, RequiredProgress: 10}

	assert.False(t, svc.CheckUnlock(ua, achievement, progress))
	assert.False(t, ua.IsUnlocked)
	assert.Zero(t, progress.TotalPoints)
}

func TestRecordActivityStreaks(t *testing.T) {
	svc := &ProgressService{}

	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 15, 0, 0, 0, time.UTC)
	}

	progress := &model.UserProgress{}

	svc.RecordActivity(progress, day(1))
	assert.Equal(t, 1, progress.CurrentStreakDays)
	assert.Equal(t, 1, progress.LongestStreakDays)

	// Same day again: no change.
	svc.RecordActivity(progress, day(1))
	assert.Equal(t, 1, progress.CurrentStreakDays)

	// Next day extends.
	svc.RecordActivity(progress, day(2))
	svc.RecordActivity(progress, day(3))
	assert.Equal(t, 3, progress.CurrentStreakDays)
	assert.Equal(t, 3, progress.LongestStreakDays)

	// A gap resets the current streak but not the record.
	svc.RecordActivity(progress, day(10))
	assert.Equal(t, 1, progress.CurrentStreakDays)
	assert.Equal(t, 3, progress.LongestStreakDays)
}

func TestLifetimePoints(t *testing.T) {
	svc := &ProgressService{}

	// Level 3 with 25 in-level points means 100+150+25 earned overall.
	progress := &model.UserProgress{CurrentLevel: 3, TotalPoints: 25}
	assert.Equal(t, 275, svc.lifetimePoints(progress))

	fresh := &model.UserProgress{CurrentLevel: 1, TotalPoints: 80}
	assert.Equal(t, 80, svc.lifetimePoints(fresh))
}
