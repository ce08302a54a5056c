package engine

type direction struct {
	dr, dc int
}

// Direction tables. Their order is the generation order and therefore the
// search's tie-break order, so it must not change.
var (
	rookDirs   = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	knightDirs = []direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingDirs   = []direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// forward is the row step of a pawn of color c.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// GenerateMoves returns every pseudo-legal move for side, scanning source
// squares row-major. Moves that leave the mover's king capturable are
// included; an empty slice means the side cannot move.
func GenerateMoves(b Board, side Color) []Move {
	moves := make([]Move, 0, 32)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sq := Square{Row: r, Col: c}
			if b.PieceAt(sq).Is(side) {
				moves = appendPieceMoves(moves, &b, sq)
			}
		}
	}
	return moves
}

// MovesFrom returns the moves of the piece standing on sq, or nil when sq is
// empty or off the board.
func MovesFrom(b Board, sq Square) []Move {
	if !sq.Valid() || b.PieceAt(sq).IsEmpty() {
		return nil
	}
	return appendPieceMoves(nil, &b, sq)
}

// IsLegal reports whether m is among the moves GenerateMoves would return.
func IsLegal(b Board, side Color, m Move) bool {
	if !m.From.Valid() || !m.To.Valid() || !b.PieceAt(m.From).Is(side) {
		return false
	}
	for _, candidate := range appendPieceMoves(nil, &b, m.From) {
		if candidate == m {
			return true
		}
	}
	return false
}

func appendPieceMoves(moves []Move, b *Board, from Square) []Move {
	piece := b.PieceAt(from)
	switch piece.Kind() {
	case Pawn:
		return appendPawnMoves(moves, b, from, piece.Color())
	case Rook:
		return appendSlidingMoves(moves, b, from, piece.Color(), rookDirs)
	case Knight:
		return appendStepMoves(moves, b, from, piece.Color(), knightDirs)
	case King:
		return appendStepMoves(moves, b, from, piece.Color(), kingDirs)
	}
	return moves
}

func appendPawnMoves(moves []Move, b *Board, from Square, color Color) []Move {
	dr := forward(color)
	ahead := from.offset(dr, 0)
	if ahead.Valid() && b.PieceAt(ahead).IsEmpty() {
		moves = append(moves, Move{From: from, To: ahead})
	}
	for _, dc := range []int{-1, 1} {
		target := from.offset(dr, dc)
		if target.Valid() && b.PieceAt(target).Is(color.Other()) {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

func appendSlidingMoves(moves []Move, b *Board, from Square, color Color, dirs []direction) []Move {
	for _, dir := range dirs {
		target := from.offset(dir.dr, dir.dc)
		for target.Valid() {
			occupant := b.PieceAt(target)
			if occupant.IsEmpty() {
				moves = append(moves, Move{From: from, To: target})
			} else if occupant.Color() != color {
				moves = append(moves, Move{From: from, To: target})
				break
			} else {
				break
			}
			target = target.offset(dir.dr, dir.dc)
		}
	}
	return moves
}

func appendStepMoves(moves []Move, b *Board, from Square, color Color, dirs []direction) []Move {
	for _, dir := range dirs {
		target := from.offset(dir.dr, dir.dc)
		if target.Valid() && !b.PieceAt(target).Is(color) {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}
