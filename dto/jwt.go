package dto

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (r RefreshTokenRequest) Validate() error {
	return GetValidator().Struct(r)
}

// LogoutRequest carries the refresh token to revoke. Optional: clients
// that only hold an access token can still log out.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
