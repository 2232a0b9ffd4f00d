package services

import (
	context2 "context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	jwtSvc      *JWTService
	progressSvc *ProgressService
	redisSvc    *RedisService
}

const AUTH_SVC = "auth_svc"

const guestSessionTTL = 24 * time.Hour

const revokedTokenKeyPrefix = "revoked:refresh:"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := svc.sqlSvc.UsernameExists(username); err != nil {
		return nil, shared.NewInternalError(err, "Failed to check username")
	} else if taken {
		return nil, shared.NewConflictError(nil, "El nombre de usuario ya está en uso")
	}
	if taken, err := svc.sqlSvc.EmailExists(email); err != nil {
		return nil, shared.NewInternalError(err, "Failed to check email")
	} else if taken {
		return nil, shared.NewConflictError(nil, "El correo ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	now := time.Now().UTC()
	user := &model.User{
		Username:    username,
		Email:       &email,
		DisplayName: displayName,
		Password:    string(hashed),
		AccountType: shared.AccountTypeRegistered,
		IsActive:    true,
		LastLoginAt: &now,
	}
	if _, err := svc.sqlSvc.CreateUser(user); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create user")
	}

	if err := svc.progressSvc.InitializeUser(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to initialize user progress")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue tokens")
	}

	return &dto.AuthResponse{
		User:      user,
		Tokens:    *tokens,
		IsNewUser: true,
		Message:   "¡Cuenta creada! Bienvenido a Fauna Kids",
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := svc.sqlSvc.GetUserByUsername(username)
	if err != nil {
		if IsNotFound(err) {
			// Fall back to email login
			user, err = svc.sqlSvc.GetUserByEmail(username)
		}
		if err != nil {
			return nil, shared.NewUnauthorizedError(nil, "Usuario o contraseña incorrectos")
		}
	}

	if !user.IsActive {
		return nil, shared.NewForbiddenError(nil, "La cuenta está desactivada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Usuario o contraseña incorrectos")
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login time")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue tokens")
	}

	return &dto.AuthResponse{
		User:    user,
		Tokens:  *tokens,
		Message: "¡Hola de nuevo!",
	}, nil
}

// GoogleLogin links or creates an account from an already-verified Google
// identity payload. Matching order: google_id, then email (link), then a
// fresh account.
func (svc *AuthService) GoogleLogin(req dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	isNew := false

	user, err := svc.sqlSvc.GetUserByGoogleID(req.GoogleID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, shared.NewInternalError(err, "Failed to look up account")
		}

		user, err = svc.sqlSvc.GetUserByEmail(email)
		if err == nil {
			user.GoogleID = &req.GoogleID
			if user.AvatarURL == "" {
				user.AvatarURL = req.Picture
			}
			user.AccountType = shared.AccountTypeGoogle
		} else if IsNotFound(err) {
			isNew = true
			user = &model.User{
				Username:    svc.usernameFromEmail(email),
				Email:       &email,
				DisplayName: req.Name,
				AccountType: shared.AccountTypeGoogle,
				GoogleID:    &req.GoogleID,
				AvatarURL:   req.Picture,
				IsActive:    true,
			}
			if _, err := svc.sqlSvc.CreateUser(user); err != nil {
				return nil, shared.NewInternalError(err, "Failed to create user")
			}
			if err := svc.progressSvc.InitializeUser(user.ID); err != nil {
				log.WithError(err).WithField("user_id", user.ID).Error("Failed to initialize user progress")
			}
		} else {
			return nil, shared.NewInternalError(err, "Failed to look up account")
		}
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update account")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue tokens")
	}

	return &dto.AuthResponse{
		User:      user,
		Tokens:    *tokens,
		IsNewUser: isNew,
		Message:   "¡Hola!",
	}, nil
}

// usernameFromEmail derives a unique username from the local part of an
// email, suffixing a short random tag on collision.
func (svc *AuthService) usernameFromEmail(email string) string {
	base := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		base = email[:i]
	}
	base = strings.ToLower(base)

	taken, err := svc.sqlSvc.UsernameExists(base)
	if err == nil && !taken {
		return base
	}
	return base + "_" + randomToken(3)
}

func (svc *AuthService) RefreshTokens(ctx context2.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := svc.jwtSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid refresh token")
	}

	if svc.isTokenRevoked(ctx, refreshToken) {
		return nil, shared.NewUnauthorizedError(nil, "Invalid refresh token")
	}

	user, err := svc.sqlSvc.GetUser(claims.UserID)
	if err != nil || !user.IsActive {
		return nil, shared.NewUnauthorizedError(err, "Invalid refresh token")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue tokens")
	}
	return tokens, nil
}

// Logout revokes the submitted refresh token by holding it in a Redis
// denylist until its own expiry. Bad or missing tokens are swallowed so
// the client can always log out; without Redis revocation is skipped.
func (svc *AuthService) Logout(ctx context2.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := svc.jwtSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}

	if svc.redisSvc == nil || !svc.redisSvc.Enabled() {
		log.Warn("Redis unavailable, refresh token revocation skipped")
		return nil
	}
	if err := svc.redisSvc.Set(ctx, revokedTokenKeyPrefix+refreshToken, "1", ttl); err != nil {
		log.WithError(err).Warn("Failed to revoke refresh token")
	}
	return nil
}

func (svc *AuthService) isTokenRevoked(ctx context2.Context, refreshToken string) bool {
	if svc.redisSvc == nil || !svc.redisSvc.Enabled() {
		return false
	}
	val, err := svc.redisSvc.Get(ctx, revokedTokenKeyPrefix+refreshToken)
	if err != nil {
		log.WithError(err).Warn("Failed to check refresh token revocation")
		return false
	}
	return val != ""
}

func (svc *AuthService) GetCurrentUser(userID string) (*model.User, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "User not found")
	}
	return user, nil
}

func (svc *AuthService) CheckUsernameAvailable(username string) (bool, error) {
	taken, err := svc.sqlSvc.UsernameExists(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return false, shared.NewInternalError(err, "Failed to check username")
	}
	return !taken, nil
}

func (svc *AuthService) CheckEmailAvailable(email string) (bool, error) {
	taken, err := svc.sqlSvc.EmailExists(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, shared.NewInternalError(err, "Failed to check email")
	}
	return !taken, nil
}

// --- Guest sessions ---

func (svc *AuthService) CreateGuestSession(nickname, ip, userAgent string) (*dto.GuestSessionResponse, error) {
	if nickname == "" {
		nickname = "Explorador"
	}

	now := time.Now().UTC()
	session := &model.GuestSession{
		SessionToken:   randomToken(32),
		UserNickname:   nickname,
		IPAddress:      ip,
		UserAgent:      userAgent,
		ExpiresAt:      now.Add(guestSessionTTL),
		LastActivityAt: now,
	}

	if _, err := svc.sqlSvc.CreateGuestSession(session); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create guest session")
	}

	return &dto.GuestSessionResponse{
		GuestToken: session.SessionToken,
		Nickname:   session.UserNickname,
		ExpiresAt:  session.ExpiresAt,
		Message:    "¡Bienvenido, explorador!",
	}, nil
}

func (svc *AuthService) VerifyGuestSession(token string) (*dto.GuestVerifyResponse, error) {
	session, err := svc.sqlSvc.GetGuestSessionByToken(token)
	if err != nil {
		if IsNotFound(err) {
			return &dto.GuestVerifyResponse{Valid: false}, nil
		}
		return nil, shared.NewInternalError(err, "Failed to verify guest session")
	}

	if session.IsExpired(time.Now().UTC()) {
		// Expired sessions are removed as soon as they are seen; the
		// periodic sweep only catches the ones nobody verifies.
		if err := svc.sqlSvc.DeleteGuestSession(session.ID); err != nil {
			log.WithError(err).Warn("Failed to delete expired guest session")
		}
		return &dto.GuestVerifyResponse{Valid: false}, nil
	}

	return &dto.GuestVerifyResponse{
		Valid:     true,
		Nickname:  session.UserNickname,
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

// randomToken returns a URL-safe random string of n bytes of entropy.
func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// RequiredAuth resolves the bearer credential into request locals. A
// credential that parses as a JWT identifies a registered user; anything
// else is tried as a guest session token. Guests stay first-class here so
// explorer endpoints work without an account.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		if claims, err := svc.jwtSvc.VerifyJWTToken(token); err == nil {
			if claims.UserID == "" {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
			}
			c.Locals(shared.UserID, claims.UserID)
			c.Locals(shared.IsGuest, false)
			return c.Next()
		}

		session, err := svc.sqlSvc.GetGuestSessionByToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired credentials")
		}
		if session.IsExpired(time.Now().UTC()) {
			if err := svc.sqlSvc.DeleteGuestSession(session.ID); err != nil {
				log.WithError(err).Warn("Failed to delete expired guest session")
			}
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired credentials")
		}

		session.LastActivityAt = time.Now().UTC()
		if err := svc.sqlSvc.UpdateGuestSession(session); err != nil {
			log.WithError(err).Warn("Failed to bump guest session activity")
		}

		c.Locals(shared.UserID, session.ID)
		c.Locals(shared.IsGuest, true)
		return c.Next()
	}
}
