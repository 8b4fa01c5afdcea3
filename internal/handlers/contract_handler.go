package handlers

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type ContractHandler struct {
	contracts *repository.ContractRepository
}

func NewContractHandler(contracts *repository.ContractRepository) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

func (h *ContractHandler) List(c *fiber.Ctx) error {
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	procurementID, ok := optionalUintQuery(c, "licitacao_id")
	if !ok {
		return badRequest(c, "licitacao_id must be an integer")
	}

	items, err := h.contracts.List(c.UserContext(), repository.ContractFilter{
		ProcurementID: procurementID,
		Status:        c.Query("status"),
	}, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// ByProcurement lists contracts by the procurement id in the path. An unknown
// procurement yields an empty list.
func (h *ContractHandler) ByProcurement(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid procurement id")
	}
	page, ok := parsePage(c)
	if !ok {
		return badRequest(c, "offset and limit must be integers")
	}
	items, err := h.contracts.List(c.UserContext(), repository.ContractFilter{ProcurementID: &id}, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contract := req.Model()
	if err := h.contracts.Create(c.UserContext(), contract); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

func (h *ContractHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid contract id")
	}
	contract, err := h.contracts.Get(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(contract)
}

func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid contract id")
	}
	var patch models.ContractPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contract, err := h.contracts.Update(c.UserContext(), id, patch)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(contract)
}

func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid contract id")
	}
	if err := h.contracts.Delete(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contrato deletado com sucesso"})
}
