package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS admits the front-end origins listed in CORS_ORIGINS. Spaces around the
// commas are ignored.
func CORS(cfg *config.Config) fiber.Handler {
	origins := make([]string, 0)
	for _, o := range strings.Split(cfg.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowHeaders:  "Origin, Content-Type, Authorization, Accept",
		AllowMethods:  "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		ExposeHeaders: fiber.HeaderXRequestID,
		MaxAge:        600,
	})
}
