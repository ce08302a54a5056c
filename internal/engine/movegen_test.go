package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	require.NoError(t, err)
	return s
}

func mv(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	require.NoError(t, err)
	return m
}

func board(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	require.NoError(t, err)
	return b
}

func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func TestInitialWhiteMoves(t *testing.T) {
	moves := GenerateMoves(InitialBoard(), White)

	assert.Contains(t, moves, Move{From: Square{Row: 4, Col: 0}, To: Square{Row: 3, Col: 0}})
	for _, m := range moves {
		assert.NotEqual(t, Rows-1, m.To.Row, "move %v lands on white's back rank", m)
	}
	assert.Equal(t, []string{
		"a2a3", "b2b3", "c2c3", "d2d3", "e2e3",
		"b1a3", "b1c3", "d1c3", "d1e3",
	}, moveStrings(moves))
}

func TestInitialBlackMoves(t *testing.T) {
	moves := GenerateMoves(InitialBoard(), Black)

	assert.Equal(t, []string{
		"b6a4", "b6c4", "d6c4", "d6e4",
		"a5a4", "b5b4", "c5c4", "d5d4", "e5e4",
	}, moveStrings(moves))
}

func TestRookStopsOnCapture(t *testing.T) {
	b := board(t, "....k/p..../...../...../...../R...K")

	moves := MovesFrom(b, Square{Row: 5, Col: 0})

	assert.Contains(t, moves, Move{From: Square{Row: 5, Col: 0}, To: Square{Row: 1, Col: 0}})
	assert.NotContains(t, moves, Move{From: Square{Row: 5, Col: 0}, To: Square{Row: 0, Col: 0}})
	assert.Equal(t, []string{"a1a2", "a1a3", "a1a4", "a1a5", "a1b1", "a1c1", "a1d1"}, moveStrings(moves))
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name  string
		board string
		from  string
		want  []string
	}{
		{
			name:  "blocked pawn cannot capture straight",
			board: "..k../...../..p../..P../...../..K..",
			from:  "c3",
			want:  []string{},
		},
		{
			name:  "captures both diagonals",
			board: "..k../...../.pnr./..P../...../..K..",
			from:  "c3",
			want:  []string{"c3b4", "c3d4"},
		},
		{
			name:  "never captures own piece",
			board: "..k../...../.NnR./..P../...../..K..",
			from:  "c3",
			want:  []string{},
		},
		{
			name:  "black moves down",
			board: "..k../...../..p../...../.P.../..K..",
			from:  "c4",
			want:  []string{"c4c3"},
		},
		{
			name:  "edge pawn",
			board: "..k../...../...../p..../.P.../..K..",
			from:  "b2",
			want:  []string{"b2b3", "b2a3"},
		},
		{
			name:  "no double step",
			board: "..k../ppppp/...../...../PPPPP/..K..",
			from:  "a2",
			want:  []string{"a2a3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves := MovesFrom(board(t, tt.board), sq(t, tt.from))
			assert.Equal(t, tt.want, moveStrings(moves))
		})
	}
}

func TestKnightAndKingMoves(t *testing.T) {
	b := board(t, "..k../...../..N../.p.P./...../K....")

	assert.Equal(t,
		[]string{"c4b6", "c4d6", "c4a5", "c4e5", "c4a3", "c4e3", "c4b2", "c4d2"},
		moveStrings(MovesFrom(b, sq(t, "c4"))))
	assert.Equal(t, []string{"a1a2", "a1b2", "a1b1"}, moveStrings(MovesFrom(b, sq(t, "a1"))))
	assert.Equal(t,
		[]string{"c6b6", "c6d6", "c6b5", "c6c5", "c6d5"},
		moveStrings(MovesFrom(b, sq(t, "c6"))))
}

func TestKingMayStepIntoCapture(t *testing.T) {
	b := board(t, "....k/...../...../.r.../...../K....")

	assert.Contains(t, moveStrings(MovesFrom(b, sq(t, "a1"))), "a1b1")
}

func TestNoMoves(t *testing.T) {
	b := board(t, "..k../...../...../...../...../.....")

	assert.Empty(t, GenerateMoves(b, White))
	assert.Nil(t, MovesFrom(b, sq(t, "a1")))
	assert.Nil(t, MovesFrom(b, Square{Row: -1, Col: 0}))
}

func TestIsLegal(t *testing.T) {
	b := InitialBoard()

	assert.True(t, IsLegal(b, White, mv(t, "a2a3")))
	assert.True(t, IsLegal(b, White, mv(t, "b1c3")))
	assert.False(t, IsLegal(b, White, mv(t, "a2a4")))
	assert.False(t, IsLegal(b, Black, mv(t, "a2a3")))
	assert.False(t, IsLegal(b, White, mv(t, "a3a4")))
	assert.False(t, IsLegal(b, White, Move{From: Square{Row: 9}, To: Square{}}))
}

// Every generated move starts on a piece of the mover and never lands on
// one of its own pieces, across positions reached by random play.
func TestGeneratedMovesRespectOccupancy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		b := InitialBoard()
		side := White
		for ply := 0; ply < 60; ply++ {
			if !b.HasKing(White) || !b.HasKing(Black) {
				break
			}
			moves := GenerateMoves(b, side)
			for _, m := range moves {
				require.True(t, b.PieceAt(m.From).Is(side), "%v from %v", m, b)
				require.False(t, b.PieceAt(m.To).Is(side), "%v onto own piece in %v", m, b)
				require.True(t, IsLegal(b, side, m))
			}
			if len(moves) == 0 {
				break
			}
			b = ApplyMove(b, moves[rng.Intn(len(moves))])
			side = side.Other()
		}
	}
}
