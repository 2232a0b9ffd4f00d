package dto

import (
	"time"

	"github.com/criss159/fauna-kids/model"
)

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	DisplayName     string `json:"display_name" validate:"max=100"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GoogleLoginRequest struct {
	GoogleID string `json:"google_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

func (r GoogleLoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GuestSessionRequest struct {
	Nickname string `json:"nickname" validate:"max=50"`
}

func (r GuestSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AuthResponse struct {
	User      *model.User `json:"user"`
	Tokens    TokenPair   `json:"tokens"`
	IsNewUser bool        `json:"is_new_user,omitempty"`
	Message   string      `json:"message"`
}

type GuestSessionResponse struct {
	GuestToken string    `json:"guest_token"`
	Nickname   string    `json:"nickname"`
	ExpiresAt  time.Time `json:"expires_at"`
	Message    string    `json:"message"`
}

type GuestVerifyResponse struct {
	Valid     bool       `json:"valid"`
	Nickname  string     `json:"nickname,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
}
