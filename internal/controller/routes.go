package controller

import (
	"github.com/benbeisheim/rollerball-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the websocket and REST routes on app. Every route
// requires a player ID.
func SetupRoutes(app *fiber.App, gc *GameController, ec *EngineController, wsc *WebSocketController, origins []string) {
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves", gc.LegalMoves)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/reset", gc.ResetGame)

	engineRoutes := api.Group("/engine")
	engineRoutes.Post("/search", ec.Search)
	engineRoutes.Post("/moves", ec.Moves)
}
