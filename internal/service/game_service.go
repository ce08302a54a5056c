package service

import (
	"github.com/benbeisheim/rollerball-backend/internal/engine"
	"github.com/benbeisheim/rollerball-backend/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CreateGameRequest is what a client may choose for a new game. Empty
// fields fall back to an engine game with the engine playing black.
type CreateGameRequest struct {
	Mode        string `json:"mode"`
	EngineColor string `json:"engineColor"`
	Depth       int    `json:"depth"`
}

type GameService struct {
	gameManager  *GameManager
	defaultDepth int
	maxDepth     int
}

func NewGameService(gameManager *GameManager, defaultDepth, maxDepth int) *GameService {
	return &GameService{
		gameManager:  gameManager,
		defaultDepth: defaultDepth,
		maxDepth:     maxDepth,
	}
}

func (gs *GameService) options(req CreateGameRequest) (model.Options, error) {
	opts := model.Options{
		Mode:       model.ModeEngine,
		HumanColor: engine.White,
		Depth:      gs.defaultDepth,
	}
	switch model.GameMode(req.Mode) {
	case "", model.ModeEngine:
	case model.ModeLocal:
		opts.Mode = model.ModeLocal
	default:
		return opts, errors.Wrapf(ErrInvalidOptions, "unknown mode %q", req.Mode)
	}
	if req.EngineColor != "" {
		c, err := engine.ParseColor(req.EngineColor)
		if err != nil {
			return opts, errors.Wrap(ErrInvalidOptions, err.Error())
		}
		opts.HumanColor = c.Other()
	}
	if req.Depth != 0 {
		if req.Depth < 1 || req.Depth > gs.maxDepth {
			return opts, errors.Wrapf(ErrInvalidOptions, "depth %d outside 1..%d", req.Depth, gs.maxDepth)
		}
		opts.Depth = req.Depth
	}
	return opts, nil
}

func (gs *GameService) CreateGame(req CreateGameRequest) (string, error) {
	opts, err := gs.options(req)
	if err != nil {
		return "", err
	}
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, opts); err != nil {
		return "", errors.WithMessage(err, "failed to create game")
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

// LegalMoves lists the moves of the piece on square, given in algebraic
// form such as "b1".
func (gs *GameService) LegalMoves(gameID string, square string) ([]model.SimpleMove, error) {
	sq, err := engine.ParseSquare(square)
	if err != nil {
		return nil, errors.Wrap(model.ErrOutOfBounds, err.Error())
	}
	return gs.gameManager.LegalMoves(gameID, model.Position{X: sq.Col, Y: sq.Row})
}

func (gs *GameService) ResetGame(gameID string) error {
	return gs.gameManager.ResetGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
