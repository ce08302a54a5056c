package model

import (
	"fmt"

	"github.com/benbeisheim/rollerball-backend/internal/engine"
)

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m WSMove) engineMove() engine.Move {
	return engine.Move{From: m.From.Square(), To: m.To.Square()}
}

type Ply struct {
	Piece         *Piece    `json:"piece"`
	From          Position  `json:"from"`
	To            Position  `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	Promotion     PieceType `json:"promotion"`
	Notation      string    `json:"notation"`
	ByEngine      bool      `json:"byEngine"`
}

// Move pairs a white ply with the black reply, which is nil until played.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func simpleMoveOf(m engine.Move) SimpleMove {
	return SimpleMove{From: positionOf(m.From), To: positionOf(m.To)}
}

// makePly describes m as played on b, before it is applied.
func makePly(b engine.Board, m engine.Move) *Ply {
	ply := &Ply{
		Piece:         pieceOf(b.PieceAt(m.From), m.From),
		From:          positionOf(m.From),
		To:            positionOf(m.To),
		CapturedPiece: pieceOf(b.PieceAt(m.To), m.To),
	}
	if engine.IsPromotion(b, m) {
		ply.Promotion = Knight
	}
	ply.Notation = getNotation(ply)
	return ply
}

// getNotation writes short algebraic notation: "Nc3", "axb4", "a6=N".
func getNotation(ply *Ply) string {
	prefix := ply.Piece.Type.getPieceNotation()
	capture := ""
	if ply.CapturedPiece != nil {
		capture = "x"
	}
	pawnFile := ""
	if ply.Piece.Type == Pawn && ply.From.X != ply.To.X {
		pawnFile = ply.From.getFileNotation()
	}
	suffix := ""
	if ply.Promotion != "" {
		suffix = "=" + ply.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, pawnFile, capture, ply.To.getSquareNotation(), suffix)
}
