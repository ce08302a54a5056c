package controller

import (
	"github.com/benbeisheim/rollerball-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// EngineController exposes the engine on positions that belong to no game.
type EngineController struct {
	engineService *service.EngineService
}

func NewEngineController(engineService *service.EngineService) *EngineController {
	return &EngineController{engineService: engineService}
}

func (ec *EngineController) Search(c *fiber.Ctx) error {
	var req service.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	resp, err := ec.engineService.Search(req)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(resp)
}

func (ec *EngineController) Moves(c *fiber.Ctx) error {
	var req service.MovesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	moves, err := ec.engineService.Moves(req)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}
