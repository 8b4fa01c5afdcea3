package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	loginLimiter ratelimit.Limiter,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	procurementHandler *handlers.ProcurementHandler,
	contractHandler *handlers.ContractHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// General API rate limit per IP
	if cfg.APIRateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.APIRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	api.Get("/health", healthHandler.Check)

	// Public auth routes; login is throttled per IP
	throttle := ratelimit.Middleware(loginLimiter, func(c *fiber.Ctx) string { return "login:" + c.IP() })
	api.Post("/login", throttle, authHandler.Login)
	api.Post("/usuarios/login", throttle, authHandler.Login)
	api.Post("/usuarios", authHandler.Register)

	jwt := middleware.JWTProtected(issuer)

	api.Get("/usuarios", jwt, authHandler.ListUsers)
	api.Get("/usuarios/me", jwt, authHandler.Me)

	licitacoes := api.Group("/licitacoes", jwt)
	licitacoes.Get("/", procurementHandler.List)
	licitacoes.Post("/", procurementHandler.Create)
	licitacoes.Get("/:id", procurementHandler.Get)
	licitacoes.Patch("/:id", procurementHandler.Update)
	licitacoes.Put("/:id", procurementHandler.Update)
	licitacoes.Delete("/:id", procurementHandler.Delete)
	licitacoes.Get("/:id/contratos", procurementHandler.Contracts)

	contratos := api.Group("/contratos", jwt)
	contratos.Get("/", contractHandler.List)
	contratos.Post("/", contractHandler.Create)
	contratos.Get("/licitacao/:id", contractHandler.ByProcurement)
	contratos.Get("/:id", contractHandler.Get)
	contratos.Patch("/:id", contractHandler.Update)
	contratos.Put("/:id", contractHandler.Update)
	contratos.Delete("/:id", contractHandler.Delete)

	// marcar-todas-lidas is registered before /:id so it is not taken as an id
	notificacoes := api.Group("/notificacoes", jwt)
	notificacoes.Get("/", notificationHandler.List)
	notificacoes.Post("/", notificationHandler.Create)
	notificacoes.Patch("/marcar-todas-lidas", notificationHandler.MarkAllRead)
	notificacoes.Get("/:id", notificationHandler.Get)
	notificacoes.Put("/:id", notificationHandler.Update)
	notificacoes.Patch("/:id", notificationHandler.Update)
	notificacoes.Patch("/:id/marcar-lida", notificationHandler.MarkRead)
	notificacoes.Delete("/:id", notificationHandler.Delete)

	api.Get("/relatorios/resumo", jwt, reportHandler.Summary)
}
