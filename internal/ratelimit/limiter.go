// Package ratelimit throttles requests per key, in process or through Redis.
package ratelimit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Limiter decides whether one more request for key is allowed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var errNoLimit = errors.New("ratelimit: limit must be positive")

// KeyFunc extracts the throttle key from a request.
type KeyFunc func(c *fiber.Ctx) string

// ByIP keys requests by client address.
func ByIP(c *fiber.Ctx) string { return c.IP() }

// Middleware answers 429 once limiter denies the request key. A failing store
// lets the request through.
func Middleware(limiter Limiter, key KeyFunc) fiber.Handler {
	if key == nil {
		key = ByIP
	}
	return func(c *fiber.Ctx) error {
		k := key(c)
		allowed, err := limiter.Allow(c.UserContext(), k)
		if err != nil {
			slog.Warn("rate limit store unavailable", "error", err, "key", k)
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Too many requests, please try again later",
			})
		}
		return c.Next()
	}
}
