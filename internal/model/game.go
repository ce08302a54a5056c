package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/rollerball-backend/internal/engine"
	"github.com/benbeisheim/rollerball-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type GameMode string

const (
	// ModeEngine pits a human against the engine.
	ModeEngine GameMode = "engine"
	// ModeLocal lets two humans play on the same board.
	ModeLocal GameMode = "local"
)

const (
	ResolveKingCaptured = "kingCaptured"
	ResolveNoMoves      = "noMoves"

	DefaultDepth = 2
)

// Options configure a new game. The zero value is an engine game at the
// default depth with the human playing white.
type Options struct {
	Mode GameMode
	// HumanColor is the side the human plays in ModeEngine.
	HumanColor engine.Color
	Depth      int
	Logger     *zerolog.Logger
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*SyncConn // playerID -> connection
	mu          sync.RWMutex
}

// Game is one session: the engine board, whose turn it is, and the
// observers to notify.
type Game struct {
	ID          string
	mu          sync.Mutex
	opts        Options
	board       engine.Board
	toMove      engine.Color
	state       GameState
	connections *GameConnections
	clocks      [2]*Clock
	log         zerolog.Logger
}

type GameState struct {
	ID             string         `json:"id"`
	Mode           GameMode       `json:"mode"`
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	Position       string         `json:"position"`
	ToMove         PlayerColor    `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LegalMoves     []SimpleMove   `json:"legalMoves"`
	Evaluation     int            `json:"evaluation"`
	Resolve        *string        `json:"resolve"`
	Winner         *PlayerColor   `json:"winner"`
	EngineThinking bool           `json:"engineThinking"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, opts Options) *Game {
	if opts.Mode == "" {
		opts.Mode = ModeEngine
	}
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("game", id).Logger()
	}
	g := &Game{
		ID:          id,
		opts:        opts,
		connections: NewGameConnections(),
		clocks:      [2]*Clock{NewClock(), NewClock()},
		log:         logger,
	}
	g.reset()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*SyncConn),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (g *Game) reset() {
	g.board = engine.InitialBoard()
	g.toMove = engine.White
	players := g.state.Players
	g.state = GameState{
		ID:             g.ID,
		Mode:           g.opts.Mode,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
	g.state.Players = players
	for i, clock := range g.clocks {
		clock.Reset()
		seat := g.seat(engine.Color(i))
		seat.Color = colorOf(engine.Color(i))
		seat.Engine = g.isEngine(engine.Color(i))
	}
	g.clocks[g.toMove].Start()
	g.refreshState()
}

func (g *Game) seat(c engine.Color) *ClientPlayer {
	if c == engine.White {
		return &g.state.Players.White
	}
	return &g.state.Players.Black
}

func (g *Game) isEngine(c engine.Color) bool {
	return g.opts.Mode == ModeEngine && c != g.opts.HumanColor
}

// refreshState recomputes everything in the client state that derives from
// the board.
func (g *Game) refreshState() {
	g.state.Board = newBoardState(g.board)
	g.state.Position = g.board.String()
	g.state.ToMove = colorOf(g.toMove)
	g.state.Evaluation = engine.Evaluate(g.board)
	g.state.LegalMoves = make([]SimpleMove, 0)
	if g.state.Resolve == nil {
		for _, m := range engine.GenerateMoves(g.board, g.toMove) {
			g.state.LegalMoves = append(g.state.LegalMoves, simpleMoveOf(m))
		}
	}
	for i, clock := range g.clocks {
		g.seat(engine.Color(i)).ThinkMs = clock.Used().Milliseconds()
	}
}

// AddPlayer seats playerID at the first free human color. Joining twice
// returns the color already held.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOfPlayer(playerID); ok {
		return colorOf(color), nil
	}
	for _, c := range []engine.Color{engine.White, engine.Black} {
		seat := g.seat(c)
		if seat.ID == "" && !seat.Engine {
			seat.ID = playerID
			g.log.Info().Str("player", playerID).Stringer("color", c).Msg("player joined")
			return seat.Color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) colorOfPlayer(playerID string) (engine.Color, bool) {
	if playerID == "" {
		return engine.White, false
	}
	if g.state.Players.White.ID == playerID {
		return engine.White, true
	}
	if g.state.Players.Black.ID == playerID {
		return engine.Black, true
	}
	return engine.White, false
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// snapshot copies the state so it can be read without the lock.
func (g *Game) snapshot() GameState {
	g.refreshState()
	s := g.state
	s.MoveHistory = append([]Move(nil), g.state.MoveHistory...)
	s.CapturedPieces = CapturedPieces{
		White: append([]Piece{}, g.state.CapturedPieces.White...),
		Black: append([]Piece{}, g.state.CapturedPieces.Black...),
	}
	return s
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOfPlayer(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// EngineToMove reports whether the engine should play the next ply.
func (g *Game) EngineToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Resolve == nil && g.isEngine(g.toMove)
}

// BeginEngineTurn marks the engine as thinking. It returns false if the
// engine is not to move or is already thinking, so a reply is scheduled
// at most once per turn.
func (g *Game) BeginEngineTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil || !g.isEngine(g.toMove) || g.state.EngineThinking {
		return false
	}
	g.state.EngineThinking = true
	go g.broadcastState(g.snapshot())
	return true
}

// MakeMove plays a human move for playerID. A side whose seat is still
// unclaimed may be moved by anyone.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	if !move.From.inBounds() || !move.To.inBounds() {
		return ErrOutOfBounds
	}
	m := move.engineMove()
	piece := g.board.PieceAt(m.From)
	if piece.IsEmpty() {
		return ErrNoPiece
	}
	if !piece.Is(g.toMove) || g.isEngine(g.toMove) {
		return ErrNotYourTurn
	}
	if owner := g.seat(g.toMove).ID; owner != "" && owner != playerID {
		return ErrNotYourTurn
	}
	if !engine.IsLegal(g.board, g.toMove, m) {
		return errors.Wrapf(ErrIllegalMove, "%s", m)
	}

	g.executeMove(m, false)
	return nil
}

// EngineMove searches for the side to move and plays the result. The
// returned flag is false when the search found no move, in which case the
// game is resolved against the engine.
func (g *Game) EngineMove() (engine.Move, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.EngineThinking = false
	if g.state.Resolve != nil {
		return engine.Move{}, false, ErrGameOver
	}
	if !g.isEngine(g.toMove) {
		return engine.Move{}, false, ErrNotYourTurn
	}

	res := engine.BestMove(g.board, g.opts.Depth, g.toMove)
	g.log.Debug().
		Int("depth", g.opts.Depth).
		Int("score", res.Score).
		Bool("found", res.Found).
		Stringer("move", res.Move).
		Msg("engine searched")
	if !res.Found {
		g.resolveGame(ResolveNoMoves, g.toMove.Other())
		go g.broadcastState(g.snapshot())
		return engine.Move{}, false, nil
	}
	g.executeMove(res.Move, true)
	return res.Move, true, nil
}

// LegalMoves lists the moves of the piece on from. It is empty when the
// piece does not belong to the side to move or the game is over.
func (g *Game) LegalMoves(from Position) ([]SimpleMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !from.inBounds() {
		return nil, ErrOutOfBounds
	}
	moves := make([]SimpleMove, 0)
	if g.state.Resolve != nil || !g.board.PieceAt(from.Square()).Is(g.toMove) {
		return moves, nil
	}
	for _, m := range engine.MovesFrom(g.board, from.Square()) {
		moves = append(moves, simpleMoveOf(m))
	}
	return moves, nil
}

// Reset restores the initial position, keeping the seated players.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset()
	g.log.Info().Msg("game reset")
	go g.broadcastState(g.snapshot())
}

func (g *Game) executeMove(m engine.Move, byEngine bool) {
	ply := makePly(g.board, m)
	ply.ByEngine = byEngine

	switch {
	case ply.Promotion != "":
		g.state.Sound = "promotion"
	case ply.CapturedPiece != nil:
		g.state.Sound = "capture"
	default:
		g.state.Sound = "move"
	}
	if ply.CapturedPiece != nil {
		switch g.toMove {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *ply.CapturedPiece)
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *ply.CapturedPiece)
		}
	}

	g.board = engine.ApplyMove(g.board, m)

	if g.toMove == engine.White || len(g.state.MoveHistory) == 0 {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{})
	}
	last := &g.state.MoveHistory[len(g.state.MoveHistory)-1]
	if g.toMove == engine.White {
		last.WhitePly = ply
	} else {
		last.BlackPly = ply
	}
	lastMove := simpleMoveOf(m)
	g.state.LastMove = &lastMove

	g.switchTurn()
	g.checkResolution()

	g.log.Info().
		Str("notation", ply.Notation).
		Bool("engine", byEngine).
		Str("position", g.board.String()).
		Msg("move played")

	go g.broadcastState(g.snapshot())
}

func (g *Game) switchTurn() {
	g.clocks[g.toMove].Stop()
	g.toMove = g.toMove.Other()
	g.clocks[g.toMove].Start()
}

// checkResolution ends the game when a king is gone or the side to move has
// no moves. A captured king takes precedence.
func (g *Game) checkResolution() {
	switch {
	case !g.board.HasKing(engine.White):
		g.resolveGame(ResolveKingCaptured, engine.Black)
	case !g.board.HasKing(engine.Black):
		g.resolveGame(ResolveKingCaptured, engine.White)
	case len(engine.GenerateMoves(g.board, g.toMove)) == 0:
		g.resolveGame(ResolveNoMoves, g.toMove.Other())
	}
}

func (g *Game) resolveGame(result string, winner engine.Color) {
	w := colorOf(winner)
	g.state.Resolve = &result
	g.state.Winner = &w
	g.state.Sound = "gameOver"
	g.state.EngineThinking = false
	for _, clock := range g.clocks {
		clock.Stop()
	}
	g.log.Info().Str("result", result).Str("winner", string(w)).Msg("game over")
}

// RegisterConnection adds conn as the player's connection. A second
// connection for the same player is closed and ErrDuplicateConnection
// returned; the first one stays registered.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	sc := NewSyncConn(conn)
	connID := fmt.Sprintf("%p", sc)

	g.mu.Lock()
	_, inGame := g.colorOfPlayer(playerID)
	isAuthorized := inGame || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		sc.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		sc.Close()
		return ErrDuplicateConnection
	}

	g.connections.connections[playerID] = sc
	g.connections.mu.Unlock()
	g.log.Debug().Str("player", playerID).Str("conn", connID).Msg("registered connection")

	go g.broadcastState(state)
	return nil
}

// UnregisterConnection removes the player's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	g.dropConnection(playerID, conn)
}

// dropConnection must be called with connections.mu held.
func (g *Game) dropConnection(playerID string, conn Conn) {
	if existing, exists := g.connections.connections[playerID]; exists && existing.wraps(conn) {
		g.log.Debug().Str("player", playerID).Msg("unregistered connection")
		delete(g.connections.connections, playerID)
	}
}

// CloseConnections closes every websocket of the game.
func (g *Game) CloseConnections() error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	var errs error
	for playerID, conn := range g.connections.connections {
		if err := conn.Close(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "close connection of %s", playerID))
		}
		delete(g.connections.connections, playerID)
	}
	return errs
}

// broadcastState sends state to every connection, dropping those that fail.
func (g *Game) broadcastState(state GameState) {
	jsonGameState, err := json.Marshal(state)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to marshal state")
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]*SyncConn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(jsonGameState),
		}); err != nil {
			g.log.Warn().Err(err).Str("player", playerID).Msg("failed to send state")
			g.connections.mu.Lock()
			g.dropConnection(playerID, conn)
			g.connections.mu.Unlock()
		}
	}
}
