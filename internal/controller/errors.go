package controller

import (
	"github.com/benbeisheim/rollerball-backend/internal/model"
	"github.com/benbeisheim/rollerball-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// statusOf maps a service error to the HTTP status reported to the client.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidOptions),
		errors.Is(err, service.ErrInvalidBoard),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": errors.WithMessage(err, "invalid request body").Error(),
	})
}
