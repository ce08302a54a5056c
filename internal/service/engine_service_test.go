package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSearch(t *testing.T) {
	es := NewEngineService(4, zerolog.Nop())

	resp, err := es.Search(SearchRequest{Board: "..k../...../.N.../...../...../K....", Depth: 1, Side: "white"})
	require.NoError(t, err)

	assert.True(t, resp.Found)
	assert.Equal(t, "b4c6", resp.Move)
	assert.Equal(t, 9999, resp.Score)
	assert.Positive(t, resp.Nodes)
}

func TestEngineSearchTerminal(t *testing.T) {
	es := NewEngineService(4, zerolog.Nop())

	resp, err := es.Search(SearchRequest{Board: "...../...../...../...../...../..K..", Depth: 3, Side: "b"})
	require.NoError(t, err)

	assert.False(t, resp.Found)
	assert.Empty(t, resp.Move)
	assert.Equal(t, 9999, resp.Score)
}

func TestEngineSearchRejects(t *testing.T) {
	es := NewEngineService(4, zerolog.Nop())

	_, err := es.Search(SearchRequest{Board: "rnknr/ppppp", Depth: 1})
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, err = es.Search(SearchRequest{Board: "rnknr/ppppp/...../...../PPPPP/RNKNR", Depth: 5})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = es.Search(SearchRequest{Board: "rnknr/ppppp/...../...../PPPPP/RNKNR", Depth: 1, Side: "red"})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestEngineMoves(t *testing.T) {
	es := NewEngineService(4, zerolog.Nop())

	moves, err := es.Moves(MovesRequest{Board: "rnknr/ppppp/...../...../PPPPP/RNKNR"})
	require.NoError(t, err)

	assert.Len(t, moves, 9)
	assert.Contains(t, moves, "b1c3")
	assert.Contains(t, moves, "a2a3")

	moves, err = es.Moves(MovesRequest{Board: "....k/...../...../...../...../K....", Side: "black"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e6d6", "e6d5", "e6e5"}, moves)
}
