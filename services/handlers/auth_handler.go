package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// requestIdentity reads the locals set by the auth middleware.
func requestIdentity(c *fiber.Ctx) (userID string, isGuest bool) {
	userID, _ = c.Locals(shared.UserID).(string)
	isGuest, _ = c.Locals(shared.IsGuest).(bool)
	return userID, isGuest
}

// @Summary Register a new user
// @Description Create a new user account with password confirmation
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "User registered successfully", resp)
}

// @Summary Login user
// @Description Authenticate with username (or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Login with Google
// @Description Link or create an account from a verified Google identity
// @Tags auth
// @Accept json
// @Produce json
// @Param googleRequest body dto.GoogleLoginRequest true "Google identity payload"
// @Success 200 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.GoogleLogin(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Refresh access token
// @Description Generate a new token pair from a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} shared.Response{data=dto.TokenPair}
// @Router /api/v1/auth/token/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	tokens, err := h.authSvc.RefreshTokens(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Token refreshed successfully", tokens)
}

// @Summary Logout user
// @Description Revoke the submitted refresh token; access tokens expire on their own
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param logoutRequest body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := h.authSvc.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary Current user
// @Description Return the authenticated user's account
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	if isGuest {
		return shared.ResponseJSON(c, http.StatusOK, "Success", fiber.Map{
			"is_guest": true,
		})
	}

	user, err := h.authSvc.GetCurrentUser(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", user)
}

// @Summary Check username availability
// @Tags auth
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} shared.Response{data=dto.AvailabilityResponse}
// @Router /api/v1/auth/check/username [get]
func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return shared.NewBadRequestError(nil, "username is required")
	}

	available, err := h.authSvc.CheckUsernameAvailable(username)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.AvailabilityResponse{
		Available: available,
		Username:  username,
	})
}

// @Summary Check email availability
// @Tags auth
// @Produce json
// @Param email query string true "Email to check"
// @Success 200 {object} shared.Response{data=dto.AvailabilityResponse}
// @Router /api/v1/auth/check/email [get]
func (h *AuthHandler) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return shared.NewBadRequestError(nil, "email is required")
	}

	available, err := h.authSvc.CheckEmailAvailable(email)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.AvailabilityResponse{
		Available: available,
		Email:     email,
	})
}

// @Summary Create guest session
// @Description Start a 24h anonymous explorer session
// @Tags auth
// @Accept json
// @Produce json
// @Param guestRequest body dto.GuestSessionRequest false "Optional nickname"
// @Success 201 {object} shared.Response{data=dto.GuestSessionResponse}
// @Router /api/v1/auth/guest [post]
func (h *AuthHandler) CreateGuestSession(c *fiber.Ctx) error {
	var req dto.GuestSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.CreateGuestSession(req.Nickname, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Guest session created", resp)
}

// @Summary Verify guest session
// @Description Check whether a guest token is still valid
// @Tags auth
// @Produce json
// @Param token query string true "Guest session token"
// @Success 200 {object} shared.Response{data=dto.GuestVerifyResponse}
// @Router /api/v1/auth/guest/verify [get]
func (h *AuthHandler) VerifyGuestSession(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return shared.NewBadRequestError(nil, "token is required")
	}

	resp, err := h.authSvc.VerifyGuestSession(token)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
