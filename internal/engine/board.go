// Package engine implements the Rollerball rules on a 6x5 board: move
// generation, move application, material evaluation and alpha-beta search.
package engine

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	Rows = 6
	Cols = 5
)

type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, errors.Errorf("unknown color %q", s)
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Rook
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Rook:
		return "rook"
	case King:
		return "king"
	}
	return "none"
}

// Letter is the uppercase notation letter of the kind.
func (k Kind) Letter() byte {
	return ".PNRK"[k]
}

// Piece packs a kind into the low three bits and the color into bit 3.
// The zero value is the empty square.
type Piece uint8

const (
	Empty     Piece = 0
	colorBit  Piece = 1 << 3
	kindMask  Piece = colorBit - 1
	emptyChar       = '.'
)

func NewPiece(k Kind, c Color) Piece {
	if k == NoKind {
		return Empty
	}
	return Piece(k) | Piece(c)<<3
}

func (p Piece) Kind() Kind { return Kind(p & kindMask) }

// Color is only meaningful for non-empty pieces.
func (p Piece) Color() Color { return Color(p >> 3) }

func (p Piece) IsEmpty() bool { return p == Empty }

// IsWhite and IsBlack both report false for the empty square.
func (p Piece) IsWhite() bool { return !p.IsEmpty() && p.Color() == White }
func (p Piece) IsBlack() bool { return !p.IsEmpty() && p.Color() == Black }

// Is reports whether p is a piece of color c.
func (p Piece) Is(c Color) bool { return !p.IsEmpty() && p.Color() == c }

// Char returns the board symbol: uppercase white, lowercase black, '.' empty.
func (p Piece) Char() byte {
	if p.IsEmpty() {
		return emptyChar
	}
	ch := p.Kind().Letter()
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Char()) }

func pieceFromChar(ch byte) (Piece, bool) {
	if ch == emptyChar {
		return Empty, true
	}
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return NewPiece(Pawn, color), true
	case 'N':
		return NewPiece(Knight, color), true
	case 'R':
		return NewPiece(Rook, color), true
	case 'K':
		return NewPiece(King, color), true
	}
	return Empty, false
}

// Board is a 6x5 grid. Row 0 is black's back rank. Being an array, a Board
// is copied whole on assignment, so no two values ever share cells.
type Board [Rows][Cols]Piece

var initialBoard = mustParseBoard("rnknr/ppppp/...../...../PPPPP/RNKNR")

// InitialBoard returns the fixed starting position.
func InitialBoard() Board {
	return initialBoard
}

// PieceAt does no bounds checking; callers validate the square first.
func (b Board) PieceAt(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// HasKing reports whether a king of color c is still on the board.
func (b Board) HasKing(c Color) bool {
	king := NewPiece(King, c)
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			if b[r][col] == king {
				return true
			}
		}
	}
	return false
}

// String renders the board as six '/'-separated rows, row 0 first.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < Cols; c++ {
			sb.WriteByte(b[r][c].Char())
		}
	}
	return sb.String()
}

// Pretty renders the board as a grid with algebraic file and rank labels.
func (b Board) Pretty() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + Rows - r))
		for c := 0; c < Cols; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(b[r][c].Char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" ")
	for c := 0; c < Cols; c++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + c))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard reads the format produced by Board.String. Whitespace inside a
// row is ignored so hand-written boards can be spaced out.
func ParseBoard(s string) (Board, error) {
	var b Board
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Rows {
		return b, errors.Errorf("board has %d rows, want %d", len(rows), Rows)
	}
	var kings [2]int
	for r, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		if len(row) != Cols {
			return b, errors.Errorf("row %d has %d squares, want %d", r, len(row), Cols)
		}
		for c := 0; c < Cols; c++ {
			p, ok := pieceFromChar(row[c])
			if !ok {
				return b, errors.Errorf("unknown piece %q at row %d column %d", row[c], r, c)
			}
			if p.Kind() == King {
				kings[p.Color()]++
			}
			b[r][c] = p
		}
	}
	for c, n := range kings {
		if n > 1 {
			return b, errors.Errorf("%d %s kings on board", n, Color(c))
		}
	}
	return b, nil
}

func mustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
