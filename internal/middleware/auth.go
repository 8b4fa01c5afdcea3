package middleware

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const usernameKey = "username"

func JWTProtected(issuer *auth.TokenIssuer) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc: issuer.Keyfunc(),
		Claims:  &auth.Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			// The issuer additionally requires exp and sub.
			username, err := issuer.Validate(token.Raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(usernameKey, username)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// Username returns the subject of the validated bearer token.
func Username(c *fiber.Ctx) string {
	username, _ := c.Locals(usernameKey).(string)
	return username
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
