// service/game_manager.go
package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/rollerball-backend/internal/model"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type GameManager struct {
	games      map[string]*model.Game
	timers     map[string]*time.Timer // pending engine replies by game
	mu         sync.RWMutex
	thinkDelay time.Duration
	pending    sync.WaitGroup
	log        zerolog.Logger
}

func NewGameManager(thinkDelay time.Duration, log zerolog.Logger) *GameManager {
	return &GameManager{
		games:      make(map[string]*model.Game),
		timers:     make(map[string]*time.Timer),
		thinkDelay: thinkDelay,
		log:        log,
	}
}

func (gm *GameManager) CreateGame(gameID string, opts model.Options) error {
	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return errors.Wrap(ErrGameExists, gameID)
	}
	opts.Logger = &gm.log
	game := model.NewGame(gameID, opts)
	gm.games[gameID] = game
	gm.mu.Unlock()

	gm.log.Info().Str("game", gameID).Str("mode", string(opts.Mode)).Msg("game created")
	gm.scheduleEngineMove(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove plays a human move and, when the engine is to reply, schedules
// its search.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gm.scheduleEngineMove(game)
	return nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.SimpleMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from)
}

func (gm *GameManager) ResetGame(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	gm.cancelEngineMove(gameID)
	game.Reset()
	gm.scheduleEngineMove(game)
	return nil
}

// scheduleEngineMove lets the engine reply after the think delay. The game
// refuses a second schedule while a reply is pending.
func (gm *GameManager) scheduleEngineMove(game *model.Game) {
	if !game.BeginEngineTurn() {
		return
	}
	gm.pending.Add(1)
	gm.mu.Lock()
	defer gm.mu.Unlock()

	var timer *time.Timer
	timer = time.AfterFunc(gm.thinkDelay, func() {
		defer gm.pending.Done()

		gm.mu.Lock()
		current := gm.timers[game.ID] == timer
		if current {
			delete(gm.timers, game.ID)
		}
		gm.mu.Unlock()
		if !current {
			return
		}

		move, found, err := game.EngineMove()
		log := gm.log.With().Str("game", game.ID).Logger()
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("engine move skipped")
		case !found:
			log.Info().Msg("engine has no move")
		default:
			log.Info().Stringer("move", move).Msg("engine moved")
		}
	})
	gm.timers[game.ID] = timer
}

// cancelEngineMove stops the game's pending engine reply, if any.
func (gm *GameManager) cancelEngineMove(gameID string) {
	gm.mu.Lock()
	timer, ok := gm.timers[gameID]
	delete(gm.timers, gameID)
	gm.mu.Unlock()

	if ok && timer.Stop() {
		gm.pending.Done()
	}
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// Wait blocks until every scheduled engine reply has been played.
func (gm *GameManager) Wait() {
	gm.pending.Wait()
}

// Close cancels engine replies still waiting, waits for running ones and
// closes every connection.
func (gm *GameManager) Close() error {
	gm.mu.RLock()
	ids := make([]string, 0, len(gm.timers))
	for id := range gm.timers {
		ids = append(ids, id)
	}
	gm.mu.RUnlock()
	for _, id := range ids {
		gm.cancelEngineMove(id)
	}
	gm.Wait()

	gm.mu.RLock()
	defer gm.mu.RUnlock()

	var errs error
	for id, game := range gm.games {
		if err := game.CloseConnections(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "game %s", id))
		}
	}
	return errs
}
