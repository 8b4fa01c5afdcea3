package handlers

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type ProcurementHandler struct {
	procurements *repository.ProcurementRepository
	contracts    *repository.ContractRepository
}

func NewProcurementHandler(procurements *repository.ProcurementRepository, contracts *repository.ContractRepository) *ProcurementHandler {
	return &ProcurementHandler{procurements: procurements, contracts: contracts}
}

func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	filter := repository.ProcurementFilter{
		Status:     c.Query("status"),
		Modalidade: c.Query("modalidade"),
	}

	items, err := h.procurements.List(c.UserContext(), filter, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProcurementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p := req.Model()
	if err := h.procurements.Create(c.UserContext(), p); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProcurementHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid procurement id")
	}
	p, err := h.procurements.Get(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(p)
}

func (h *ProcurementHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid procurement id")
	}
	var patch models.ProcurementPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p, err := h.procurements.Update(c.UserContext(), id, patch)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(p)
}

func (h *ProcurementHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid procurement id")
	}
	if err := h.procurements.Delete(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Licitação deletada com sucesso"})
}

// Contracts lists the contracts of one procurement.
func (h *ProcurementHandler) Contracts(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid procurement id")
	}
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	if _, err := h.procurements.Get(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}

	items, err := h.contracts.List(c.UserContext(), repository.ContractFilter{ProcurementID: &id}, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}
