package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleLogin(req dto.GoogleLoginRequest) (*dto.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(userID string) (*model.User, error)
	CheckUsernameAvailable(username string) (bool, error)
	CheckEmailAvailable(email string) (bool, error)
	CreateGuestSession(nickname, ip, userAgent string) (*dto.GuestSessionResponse, error)
	VerifyGuestSession(token string) (*dto.GuestVerifyResponse, error)
	RequiredAuth() fiber.Handler
}

type GeminiServiceInterface interface {
	Ask(ctx context.Context, message string, history []dto.HistoryTurn) string
	HasKey() bool
	TextModel() string
}

type ImageServiceInterface interface {
	GenerateImage(ctx context.Context, userID string, isGuest bool, prompt string) (*dto.GenerateImageResponse, error)
	ListImages(userID string, isGuest bool, limit int) ([]model.GeneratedImage, error)
	ImageModel() string
}

type SpeechServiceInterface interface {
	Synthesize(ctx context.Context, req dto.SynthesizeRequest) (*dto.SynthesizeResponse, error)
}

type ChatServiceInterface interface {
	SaveChat(userID string, isGuest bool, req dto.SaveChatRequest) (*dto.SaveChatResponse, error)
	ListChats(userID string, isGuest bool) ([]dto.ChatSummary, error)
	GetChat(userID string, isGuest bool, chatID string) (*model.Chat, error)
	DeleteChat(userID string, isGuest bool, chatID string) error
}

type ProgressServiceInterface interface {
	RegisterQuestionAsked(userID string)
	RegisterAnimalExplored(userID, animal string)
	GetProgress(userID string) (*dto.ProgressResponse, error)
	GetAchievements(userID string) ([]dto.AchievementProgressResponse, error)
	GetStats(userID string) (*dto.UserStatsResponse, error)
	GetAnimalsExplored(userID string) ([]dto.AnimalExploredResponse, error)
}

type UserServiceInterface interface {
	GetSettings(userID string) (*dto.SettingsResponse, error)
	UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*model.User, error)
}
