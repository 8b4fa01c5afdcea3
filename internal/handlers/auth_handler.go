package handlers

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login accepts a form-encoded or JSON body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.Username(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	users, err := h.authService.ListUsers(c.UserContext(), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(users)
}
