package handlers

import (
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *repository.NotificationRepository
}

func NewNotificationHandler(notifications *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	userID, ok := optionalUintQuery(c, "usuario_id")
	if !ok {
		return badRequest(c, "usuario_id must be an integer")
	}
	unreadOnly, err := strconv.ParseBool(c.Query("apenas_nao_lidas", "false"))
	if err != nil {
		return badRequest(c, "apenas_nao_lidas must be a boolean")
	}

	items, err := h.notifications.List(c.UserContext(), repository.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
	}, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	n := req.Model()
	if err := h.notifications.Create(c.UserContext(), n); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid notification id")
	}
	n, err := h.notifications.Get(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(n)
}

func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid notification id")
	}
	var patch models.NotificationPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	n, err := h.notifications.Update(c.UserContext(), id, patch)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(n)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid notification id")
	}
	if _, err := h.notifications.MarkRead(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notificação marcada como lida"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := optionalUintQuery(c, "usuario_id")
	if !ok {
		return badRequest(c, "usuario_id must be an integer")
	}
	count, err := h.notifications.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MarkAllReadResponse{
		Message: fmt.Sprintf("%d notificações marcadas como lidas", count),
		Count:   count,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid notification id")
	}
	if err := h.notifications.Delete(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notificação deletada com sucesso"})
}
