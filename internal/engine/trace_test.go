package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMatchesSearch(t *testing.T) {
	b := board(t, "..k../.p.../...../..N../.R.../K....")

	res, graph, err := Trace(b, 2, White)
	require.NoError(t, err)
	want, stats := SearchWithStats(b, 2, -Infinity, Infinity, true)

	assert.Equal(t, want, res)
	assert.Len(t, graph.Nodes.Nodes, stats.Nodes)
	assert.Len(t, graph.Edges.Edges, stats.Nodes-1)

	dot := graph.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(dot), "digraph search"))
	assert.Contains(t, dot, res.Move.String())
}

func TestTraceMarksKingCapture(t *testing.T) {
	b := board(t, "..k../...../.N.../...../...../K....")

	res, graph, err := Trace(b, 1, White)
	require.NoError(t, err)

	assert.Equal(t, WhiteWins, res.Score)
	assert.Contains(t, graph.String(), "king captured")
}
