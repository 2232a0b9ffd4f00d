package services

import (
	"strings"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
)

type UserService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *UserService) GetSettings(userID string) (*dto.SettingsResponse, error) {
	settings, err := svc.sqlSvc.GetOrCreateSettings(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load settings")
	}

	return &dto.SettingsResponse{
		VoiceEnabled: settings.VoiceEnabled,
		Theme:        settings.Theme,
	}, nil
}

func (svc *UserService) UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := svc.sqlSvc.GetOrCreateSettings(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load settings")
	}

	if req.VoiceEnabled != nil {
		settings.VoiceEnabled = *req.VoiceEnabled
	}
	if req.Theme != nil && *req.Theme != "" {
		settings.Theme = *req.Theme
	}

	if err := svc.sqlSvc.UpdateSettings(settings); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update settings")
	}

	return &dto.SettingsResponse{
		VoiceEnabled: settings.VoiceEnabled,
		Theme:        settings.Theme,
	}, nil
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load user")
	}

	user.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update profile")
	}

	return user, nil
}
