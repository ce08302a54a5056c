package service

import "github.com/pkg/errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrInvalidOptions = errors.New("invalid game options")
	ErrInvalidBoard   = errors.New("invalid board")
)
