package handlers

import (
	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService  *services.UserService
	blockService *services.BlockService
}

func NewUserHandler(userService *services.UserService, blockService *services.BlockService) *UserHandler {
	return &UserHandler{userService: userService, blockService: blockService}
}

// ListUsers is admin-only.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	users, total, err := h.userService.List(limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.Page[dto.UserResponse]{Items: users, Total: total, Limit: limit, Offset: offset})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	resp, err := h.userService.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.userService.Update(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.userService.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// UpdatePassword changes the caller's own password.
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NewPassword == "" {
		return badRequest(c, "New password is required")
	}

	if err := h.userService.UpdatePassword(email, req.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// ListOwnBlockRequests returns the caller's block requests.
func (h *UserHandler) ListOwnBlockRequests(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)

	requests, total, err := h.blockService.ListByUser(userID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.Page[dto.BlockResponse]{Items: requests, Total: total, Limit: limit, Offset: offset})
}
