package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/shared"
)

type UserHandler struct {
	userSvc     UserServiceInterface
	progressSvc ProgressServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface, progressSvc ProgressServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc, progressSvc: progressSvc}
}

// guestForbidden rejects account endpoints for guest sessions.
func guestForbidden(c *fiber.Ctx) (string, error) {
	userID, isGuest := requestIdentity(c)
	if isGuest {
		return "", shared.NewForbiddenError(nil, "Crea una cuenta para usar esta función")
	}
	return userID, nil
}

// @Summary Get settings
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/user/settings [get]
func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	settings, err := h.userSvc.GetSettings(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", settings)
}

// @Summary Update settings
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param settingsRequest body dto.UpdateSettingsRequest true "Settings fields to change"
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/user/settings [put]
func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	settings, err := h.userSvc.UpdateSettings(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings updated", settings)
}

// @Summary Update profile
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param profileRequest body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/user/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.userSvc.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile updated", user)
}

// @Summary User stats
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/v1/user/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	stats, err := h.progressSvc.GetStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", stats)
}

// @Summary User progress
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/user/progress [get]
func (h *UserHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	progress, err := h.progressSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}

// @Summary User achievements
// @Description Full catalog with the user's unlock state merged in
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.AchievementProgressResponse}
// @Router /api/v1/user/achievements [get]
func (h *UserHandler) GetAchievements(c *fiber.Ctx) error {
	userID, err := guestForbidden(c)
	if err != nil {
		return err
	}

	achievements, err := h.progressSvc.GetAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", achievements)
}
