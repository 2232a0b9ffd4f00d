package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/criss159/fauna-kids/services/handlers"
	"github.com/criss159/fauna-kids/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	jwtSvc        *JWTService
	userSvc       *UserService
	chatSvc       *ChatService
	progressSvc   *ProgressService
	geminiSvc     *GeminiService
	imageSvc      *ImageService
	speechSvc     *SpeechService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.chatSvc = svc.Service(CHAT_SVC).(*ChatService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.geminiSvc = svc.Service(GEMINI_SVC).(*GeminiService)
	svc.imageSvc = svc.Service(IMAGE_SVC).(*ImageService)
	svc.speechSvc = svc.Service(SPEECH_SVC).(*SpeechService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONEncoder,
		JSONDecoder:  shared.JSONDecoder,
		ErrorHandler: svc.errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes(app)

	svc.server = app
	log.Printf("HTTP server listening on :%d", svc.port)
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	explorerHandler := handlers.NewExplorerHandler(svc.geminiSvc, svc.imageSvc, svc.speechSvc, svc.progressSvc)
	chatHandler := handlers.NewChatHandler(svc.chatSvc, svc.progressSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc, svc.progressSvc)

	requiredAuth := svc.authSvc.RequiredAuth()
	authLimiter := svc.rateLimitSvc.Limit("auth", 10, time.Minute)
	aiLimiter := svc.rateLimitSvc.Limit("ai", 30, time.Minute)

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/health", explorerHandler.Health)

	auth := v1.Group("/auth")
	auth.Post("/register", authLimiter, authHandler.Register)
	auth.Post("/login", authLimiter, authHandler.Login)
	auth.Post("/google", authLimiter, authHandler.GoogleLogin)
	auth.Post("/logout", requiredAuth, authHandler.Logout)
	auth.Post("/token/refresh", authLimiter, authHandler.RefreshToken)
	auth.Get("/me", requiredAuth, authHandler.Me)
	auth.Get("/check/username", authHandler.CheckUsername)
	auth.Get("/check/email", authHandler.CheckEmail)
	auth.Post("/guest", authLimiter, authHandler.CreateGuestSession)
	auth.Get("/guest/verify", authHandler.VerifyGuestSession)

	v1.Post("/explorer", requiredAuth, aiLimiter, explorerHandler.Explorer)
	v1.Post("/images/generate", requiredAuth, aiLimiter, explorerHandler.GenerateImage)
	v1.Get("/images", requiredAuth, explorerHandler.ListImages)
	v1.Post("/tts/synthesize", requiredAuth, aiLimiter, explorerHandler.Synthesize)

	chats := v1.Group("/explorer/chats", requiredAuth)
	chats.Get("/", chatHandler.ListChats)
	chats.Post("/save", chatHandler.SaveChat)
	chats.Get("/:chatId", chatHandler.GetChat)
	chats.Delete("/:chatId", chatHandler.DeleteChat)

	v1.Get("/explorer/animals", requiredAuth, chatHandler.GetAnimals)

	user := v1.Group("/user", requiredAuth)
	user.Get("/settings", userHandler.GetSettings)
	user.Put("/settings", userHandler.UpdateSettings)
	user.Put("/profile", userHandler.UpdateProfile)
	user.Get("/stats", userHandler.GetStats)
	user.Get("/progress", userHandler.GetProgress)
	user.Get("/achievements", userHandler.GetAchievements)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// errorHandler maps AppError to its status and everything else to a
// 500 without leaking internals.
func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= 500 {
			log.WithError(err).Error("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
