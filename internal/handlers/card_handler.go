package handlers

import (
	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardService  *services.CardService
	blockService *services.BlockService
}

func NewCardHandler(cardService *services.CardService, blockService *services.BlockService) *CardHandler {
	return &CardHandler{cardService: cardService, blockService: blockService}
}

// ListOwnCards returns the caller's cards.
func (h *CardHandler) ListOwnCards(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)

	cards, total, err := h.cardService.ListByEmail(email, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.Page[dto.CardResponse]{Items: cards, Total: total, Limit: limit, Offset: offset})
}

func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	resp, err := h.cardService.GetByEmailAndID(email, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *CardHandler) GetBalance(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	balance, err := h.cardService.Balance(email, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.BalanceResponse{Balance: balance})
}

// Transfer moves money between two of the caller's cards.
func (h *CardHandler) Transfer(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CardTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FromCardID == uuid.Nil || req.ToCardID == uuid.Nil {
		return badRequest(c, "from_card_id and to_card_id are required")
	}

	if err := h.cardService.Transfer(email, &req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer completed"})
}

// RequestBlock files a block request on the caller's own card.
func (h *CardHandler) RequestBlock(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	resp, err := h.blockService.Create(userID, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListAllCards is admin-only.
func (h *CardHandler) ListAllCards(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	cards, total, err := h.cardService.List(limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.Page[dto.CardResponse]{Items: cards, Total: total, Limit: limit, Offset: offset})
}

// CreateCard issues a card for the user behind the given email (admin).
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var req dto.CardCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	resp, err := h.cardService.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateStatus changes a card's status (admin).
func (h *CardHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	var req dto.CardStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.cardService.UpdateStatus(id, req.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

// DeleteCard removes a card and its block requests (admin).
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	if err := h.cardService.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Card deleted"})
}

// ListBlockRequests lists all block requests (admin).
func (h *CardHandler) ListBlockRequests(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	requests, total, err := h.blockService.List(limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.Page[dto.BlockResponse]{Items: requests, Total: total, Limit: limit, Offset: offset})
}

// CompleteBlockRequest blocks the card and closes the request (admin).
func (h *CardHandler) CompleteBlockRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request id")
	}

	if err := h.blockService.Complete(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Block request completed"})
}
