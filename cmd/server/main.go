package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/rollerball-backend/internal/config"
	"github.com/benbeisheim/rollerball-backend/internal/controller"
	"github.com/benbeisheim/rollerball-backend/internal/middleware"
	"github.com/benbeisheim/rollerball-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
)

func newLogger(cfg config.Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(cfg.Level()).With().Timestamp().Logger()
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}
	log := newLogger(cfg)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(log.With().Str("component", "http").Logger()))

	// Initialize services
	gameManager := service.NewGameManager(cfg.ThinkDelay, log.With().Str("component", "games").Logger())
	gameService := service.NewGameService(gameManager, cfg.Depth, cfg.MaxDepth)
	engineService := service.NewEngineService(cfg.MaxDepth, log.With().Str("component", "engine").Logger())

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	engineController := controller.NewEngineController(engineService)
	wsController := controller.NewWebSocketController(gameService, log.With().Str("component", "ws").Logger())

	controller.SetupRoutes(app, gameController, engineController, wsController, cfg.Origins())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Int("depth", cfg.Depth).Dur("think_delay", cfg.ThinkDelay).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error().Err(err).Msg("listen")
	}
	if err := gameManager.Close(); err != nil {
		log.Error().Err(err).Msg("close games")
	}
}
