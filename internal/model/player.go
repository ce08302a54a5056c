package model

import "github.com/benbeisheim/rollerball-backend/internal/engine"

// ClientPlayer is a seat as shown to clients. ID is empty while the seat is
// free, and stays empty for the engine.
type ClientPlayer struct {
	ID      string      `json:"name"`
	Color   PlayerColor `json:"color"`
	Engine  bool        `json:"engine"`
	ThinkMs int64       `json:"thinkMs"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(c engine.Color) PlayerColor {
	if c == engine.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}
