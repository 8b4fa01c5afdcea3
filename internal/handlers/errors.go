package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// errorResponse writes err using the status of its kind. Unknown errors are
// logged and answered with a generic 500.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusConflict
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parsePage(c *fiber.Ctx) (repository.Page, bool) {
	offset, err := strconv.Atoi(c.Query("offset", c.Query("skip", "0")))
	if err != nil {
		return repository.Page{}, false
	}
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil {
		return repository.Page{}, false
	}
	return repository.Page{Offset: offset, Limit: limit}, true
}

// optionalUintQuery reads an optional positive integer query parameter.
func optionalUintQuery(c *fiber.Ctx, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	id := uint(v)
	return &id, true
}
