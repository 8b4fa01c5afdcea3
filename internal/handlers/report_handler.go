package handlers

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary takes an optional usuario_id to scope the unread notification count.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	userID, ok := optionalUintQuery(c, "usuario_id")
	if !ok {
		return badRequest(c, "usuario_id must be an integer")
	}
	summary, err := h.reportService.Summary(c.UserContext(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(summary)
}
