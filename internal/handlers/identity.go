package handlers

import (
	"errors"

	"github.com/akazakov/bankcards/internal/cardnumber"
	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// callerID extracts the user UUID from the verified JWT in context.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// callerEmail extracts the email claim from the verified JWT in context.
func callerEmail(c *fiber.Ctx) (string, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return "", err
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("missing email claim")
	}
	return email, nil
}

func callerClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// serviceError translates core errors into HTTP responses: missing
// entities map to 404, business-rule and cipher failures to 400, bad
// credentials to 401, everything else to an opaque 500.
func serviceError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: notFound.Error(),
		})
	}

	var opErr *services.OperationError
	if errors.As(err, &opErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: opErr.Error(),
		})
	}

	var encErr *cardnumber.EncryptError
	if errors.As(err, &encErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: encErr.Error(),
		})
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// pageParams reads limit/offset query parameters with sane bounds.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
