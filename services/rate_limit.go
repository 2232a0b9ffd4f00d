package services

import (
	"fmt"
	"time"

	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RateLimitService implements a fixed-window per-IP limiter on top of
// Redis. Auth endpoints get a tight window to slow credential stuffing;
// AI proxy endpoints get a wider one to cap upstream spend.
type RateLimitService struct {
	context.DefaultService

	redisSvc *RedisService
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Allow counts one hit against scope:ip in the current window.
func (svc *RateLimitService) Allow(c *fiber.Ctx, scope string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, c.IP())

	count, err := svc.redisSvc.Increment(c.UserContext(), key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(c.UserContext(), key, window); err != nil {
			return false, err
		}
	}
	return count <= limit, nil
}

// Limit is the Fiber middleware form of Allow. Redis being down or
// unconfigured fails open.
func (svc *RateLimitService) Limit(scope string, limit int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.redisSvc.Enabled() {
			return c.Next()
		}

		allowed, err := svc.Allow(c, scope, limit, window)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed")
			return c.Next()
		}
		if !allowed {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests",
				"Demasiadas peticiones, inténtalo en un momento")
		}
		return c.Next()
	}
}
