package engine

import (
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

type Square struct {
	Row int
	Col int
}

// Valid reports whether the square lies on the 6x5 board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < Rows && sq.Col >= 0 && sq.Col < Cols
}

func (sq Square) offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// String returns the algebraic name. Files run a..e from column 0 and rank 1
// is white's back rank (row 5), which is the lower-left corner of a standard
// chessboard, so the naming is borrowed from it.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return chess.Square((Rows-1-sq.Row)*8 + sq.Col).String()
}

var squareNames = func() map[string]Square {
	m := make(map[string]Square, Rows*Cols)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sq := Square{Row: r, Col: c}
			m[sq.String()] = sq
		}
	}
	return m
}()

// ParseSquare parses an algebraic square name such as "a1" or "E6".
func ParseSquare(s string) (Square, error) {
	sq, ok := squareNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Square{}, errors.Errorf("invalid square %q", s)
	}
	return sq, nil
}

type Move struct {
	From Square
	To   Square
}

// String returns the move as two concatenated square names, e.g. "a2a3".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses the format produced by Move.String. A separating '-' or
// space is tolerated.
func ParseMove(s string) (Move, error) {
	s = strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
	if len(s) != 4 {
		return Move{}, errors.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, errors.WithMessage(err, "from")
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, errors.WithMessage(err, "to")
	}
	return Move{From: from, To: to}, nil
}
