package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/criss159/fauna-kids/model"
	"github.com/google/uuid"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "fauna_kids"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err := ds.Migrate(ds.db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	// Expired guest sessions are reaped hourly; the cleanup CLI exists
	// for orphaned deployments where the API is not running.
	ticker := time.NewTicker(time.Hour)
	go func() {
		for range ticker.C {
			deleted, err := ds.CleanupExpiredGuestSessions(time.Now().UTC())
			if err != nil {
				log.Printf("Failed to cleanup expired guest sessions: %v", err)
			} else if deleted > 0 {
				log.Printf("Removed %d expired guest sessions", deleted)
			}
		}
	}()

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.UserProgress{},
		&model.AnimalExplored{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Chat{},
		&model.ChatMessage{},
		&model.GuestSession{},
		&model.GeneratedImage{},
	)
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// IsNotFound reports whether err was produced from gorm.ErrRecordNotFound,
// either raw or after passing through HandleError.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

// --- Users ---

func (ds *PostgresService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = newID()
	}
	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) UpdateUser(user *model.User) error {
	if err := ds.db.Save(user).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) UsernameExists(username string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *PostgresService) EmailExists(email string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

// --- Settings ---

func (ds *PostgresService) GetOrCreateSettings(userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := ds.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ds.HandleError(err)
	}

	settings = model.UserSettings{UserID: userID, Theme: "default"}
	if err := ds.db.Create(&settings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &settings, nil
}

func (ds *PostgresService) UpdateSettings(settings *model.UserSettings) error {
	if err := ds.db.Save(settings).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// --- Progress ---

func (ds *PostgresService) GetOrCreateProgress(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := ds.db.Where("user_id = ?", userID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ds.HandleError(err)
	}

	progress = model.UserProgress{
		ID:                newID(),
		UserID:            userID,
		CurrentLevel:      1,
		PointsToNextLevel: 100,
	}
	if err := ds.db.Create(&progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &progress, nil
}

func (ds *PostgresService) UpdateProgress(progress *model.UserProgress) error {
	if err := ds.db.Save(progress).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// FindOrCreateAnimalExplored returns the row for (userID, animal) along
// with whether this is the first time the user explored that animal.
// On repeat visits the counter and LastExploredAt advance.
func (ds *PostgresService) FindOrCreateAnimalExplored(userID, animal string) (*model.AnimalExplored, bool, error) {
	now := time.Now().UTC()

	var explored model.AnimalExplored
	err := ds.db.Where("user_id = ? AND animal_name = ?", userID, animal).First(&explored).Error
	if err == nil {
		explored.TimesExplored++
		explored.LastExploredAt = now
		if err := ds.db.Save(&explored).Error; err != nil {
			return nil, false, ds.HandleError(err)
		}
		return &explored, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ds.HandleError(err)
	}

	explored = model.AnimalExplored{
		ID:              newID(),
		UserID:          userID,
		AnimalName:      animal,
		TimesExplored:   1,
		FirstExploredAt: now,
		LastExploredAt:  now,
	}
	if err := ds.db.Create(&explored).Error; err != nil {
		return nil, false, ds.HandleError(err)
	}
	return &explored, true, nil
}

func (ds *PostgresService) GetAnimalsExplored(userID string) ([]model.AnimalExplored, error) {
	var animals []model.AnimalExplored
	if err := ds.db.Where("user_id = ?", userID).Order("last_explored_at DESC").Find(&animals).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return animals, nil
}

// --- Achievements ---

func (ds *PostgresService) GetAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := ds.db.Order("requirement_type, requirement_value").Find(&achievements).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return achievements, nil
}

func (ds *PostgresService) GetAchievementsByType(requirementType string) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := ds.db.Where("requirement_type = ?", requirementType).
		Order("requirement_value").Find(&achievements).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return achievements, nil
}

func (ds *PostgresService) GetOrCreateUserAchievement(userID string, achievement *model.Achievement) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	err := ds.db.Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).First(&ua).Error
	if err == nil {
		return &ua, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ds.HandleError(err)
	}

	ua = model.UserAchievement{
		ID:               newID(),
		UserID:           userID,
		AchievementID:    achievement.ID,
		RequiredProgress: achievement.RequirementValue,
	}
	if err := ds.db.Create(&ua).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &ua, nil
}

func (ds *PostgresService) UpdateUserAchievement(ua *model.UserAchievement) error {
	if err := ds.db.Save(ua).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	if err := ds.db.Preload("Achievement").Where("user_id = ?", userID).Find(&achievements).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return achievements, nil
}

// --- Chats ---

func (ds *PostgresService) GetChat(chatID, userID string) (*model.Chat, error) {
	var chat model.Chat
	if err := ds.db.Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (ds *PostgresService) GetChatWithMessages(chatID, userID string) (*model.Chat, error) {
	var chat model.Chat
	err := ds.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at ASC")
	}).Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (ds *PostgresService) ListChats(userID string) ([]model.Chat, error) {
	var chats []model.Chat
	if err := ds.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&chats).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return chats, nil
}

func (ds *PostgresService) CreateChat(chat *model.Chat) (*model.Chat, error) {
	if chat.ID == "" {
		chat.ID = newID()
	}
	if err := ds.db.Create(chat).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return chat, nil
}

// ReplaceChatMessages swaps the full message set of a chat atomically.
// Saving a chat always sends every message, so partial updates never
// happen and CreatedAt spacing preserves the client's ordering.
func (ds *PostgresService) ReplaceChatMessages(chatID, title string, messages []model.ChatMessage) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}

		base := time.Now().UTC()
		for i := range messages {
			messages[i].ID = newID()
			messages[i].ChatID = chatID
			messages[i].CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		}
		if len(messages) > 0 {
			if err := tx.Create(&messages).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Chat{}).Where("id = ?", chatID).
			Updates(map[string]interface{}{"title": title, "updated_at": base}).Error
	})
}

func (ds *PostgresService) DeleteChat(chatID, userID string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", chatID, userID).Delete(&model.Chat{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("chat_id = ?", chatID).Delete(&model.ChatMessage{}).Error
	})
}

func (ds *PostgresService) CountMessagesInChat(chatID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.ChatMessage{}).Where("chat_id = ?", chatID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CountChats(userID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Chat{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CountChatMessages(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ChatMessage{}).
		Joins("JOIN chats ON chats.id = chat_messages.chat_id").
		Where("chats.user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// --- Guest sessions ---

func (ds *PostgresService) CreateGuestSession(session *model.GuestSession) (*model.GuestSession, error) {
	if session.ID == "" {
		session.ID = newID()
	}
	if err := ds.db.Create(session).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return session, nil
}

func (ds *PostgresService) GetGuestSessionByToken(token string) (*model.GuestSession, error) {
	var session model.GuestSession
	if err := ds.db.Where("session_token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *PostgresService) UpdateGuestSession(session *model.GuestSession) error {
	if err := ds.db.Save(session).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) DeleteGuestSession(sessionID string) error {
	if err := ds.db.Where("id = ?", sessionID).Delete(&model.GuestSession{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) CleanupExpiredGuestSessions(now time.Time) (int64, error) {
	res := ds.db.Where("expires_at < ?", now).Delete(&model.GuestSession{})
	if res.Error != nil {
		return 0, ds.HandleError(res.Error)
	}
	return res.RowsAffected, nil
}

// --- Generated images ---

func (ds *PostgresService) CreateGeneratedImage(image *model.GeneratedImage) (*model.GeneratedImage, error) {
	if image.ID == "" {
		image.ID = newID()
	}
	if err := ds.db.Create(image).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return image, nil
}

func (ds *PostgresService) ListGeneratedImages(userID string, limit int) ([]model.GeneratedImage, error) {
	var images []model.GeneratedImage
	q := ds.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&images).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return images, nil
}
