package engine

var pieceValues = [...]int{
	NoKind: 0,
	Pawn:   1,
	Knight: 3,
	Rook:   5,
	King:   1000,
}

// Value is the material value of a piece kind.
func (k Kind) Value() int {
	return pieceValues[k]
}

// Evaluate is the material balance of b from white's point of view.
func Evaluate(b Board) int {
	score := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b[r][c]
			switch {
			case p.IsWhite():
				score += p.Kind().Value()
			case p.IsBlack():
				score -= p.Kind().Value()
			}
		}
	}
	return score
}
