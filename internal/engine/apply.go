package engine

import "fmt"

// ApplyMove returns the board after m is played. The input board is not
// modified. A pawn reaching the far back rank becomes a knight of its color.
//
// m is trusted to come from GenerateMoves; ApplyMove panics if either square
// is off the board or the from square is empty, since continuing would
// produce a corrupt position.
func ApplyMove(b Board, m Move) Board {
	if !m.From.Valid() || !m.To.Valid() {
		panic(fmt.Sprintf("engine: move %v leaves the board", m))
	}
	piece := b.PieceAt(m.From)
	if piece.IsEmpty() {
		panic(fmt.Sprintf("engine: move %v starts on an empty square", m))
	}
	next := b
	next.set(m.To, promote(piece, m.To))
	next.set(m.From, Empty)
	return next
}

// promote returns the piece that ends up on to when piece moves there.
func promote(piece Piece, to Square) Piece {
	if piece.Kind() != Pawn {
		return piece
	}
	if (piece.Color() == White && to.Row == 0) || (piece.Color() == Black && to.Row == Rows-1) {
		return NewPiece(Knight, piece.Color())
	}
	return piece
}

// IsPromotion reports whether playing m on b promotes a pawn.
func IsPromotion(b Board, m Move) bool {
	piece := b.PieceAt(m.From)
	return piece.Kind() == Pawn && promote(piece, m.To) != piece
}
