package model

import "github.com/pkg/errors"

var (
	ErrGameOver      = errors.New("game is over")
	ErrGameFull      = errors.New("game is full")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrNotAuthorized = errors.New("not authorized to join this game")

	ErrDuplicateConnection = errors.New("player already has a connection")
)
