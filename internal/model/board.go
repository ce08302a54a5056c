package model

import "github.com/benbeisheim/rollerball-backend/internal/engine"

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Rook:
		return "R"
	case Knight:
		return "N"
	}
	return ""
}

const (
	King   PieceType = "king"
	Rook   PieceType = "rook"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func pieceTypeOf(k engine.Kind) PieceType {
	return PieceType(k.String())
}

// BoardState is the client view of an engine board. King positions are nil
// once the king has been captured.
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition *Position  `json:"blackKingPosition"`
	WhiteKingPosition *Position  `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
}

// Position addresses a square with X as the column and Y as the row, row 0
// being black's back rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionOf(sq engine.Square) Position {
	return Position{X: sq.Col, Y: sq.Row}
}

func (p Position) Square() engine.Square {
	return engine.Square{Row: p.Y, Col: p.X}
}

func (p Position) inBounds() bool {
	return p.Square().Valid()
}

func (p Position) getSquareNotation() string {
	return p.Square().String()
}

func (p Position) getFileNotation() string {
	return p.getSquareNotation()[:1]
}

func pieceOf(p engine.Piece, sq engine.Square) *Piece {
	if p.IsEmpty() {
		return nil
	}
	return &Piece{
		Type:     pieceTypeOf(p.Kind()),
		Color:    colorOf(p.Color()),
		Position: positionOf(sq),
	}
}

func newBoardState(b engine.Board) *BoardState {
	board := &BoardState{}
	for r := 0; r < engine.Rows; r++ {
		row := make([]*Piece, engine.Cols)
		for c := 0; c < engine.Cols; c++ {
			sq := engine.Square{Row: r, Col: c}
			piece := b.PieceAt(sq)
			row[c] = pieceOf(piece, sq)
			if piece.Kind() == engine.King {
				pos := positionOf(sq)
				if piece.IsWhite() {
					board.WhiteKingPosition = &pos
				} else {
					board.BlackKingPosition = &pos
				}
			}
		}
		board.Board = append(board.Board, row)
	}
	return board
}
