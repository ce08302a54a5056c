package engine

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const traceGraphName = "search"

// Trace runs the same search as BestMove while recording every visited
// position as a node of a directed Graphviz graph. Node labels carry the
// returned score and, where relevant, why the node stopped (king captured,
// no moves, cut-off). Edges are labelled with the move played.
//
// The graph grows with the tree, so Trace is meant for shallow debugging
// searches only.
func Trace(b Board, depth int, side Color) (Result, *gographviz.Graph, error) {
	t, err := newTracer()
	if err != nil {
		return Result{}, nil, err
	}
	s := searcher{trace: t}
	res := s.minimax(b, depth, -Infinity, Infinity, side == White)
	if t.err != nil {
		return res, nil, t.err
	}
	return res, t.graph, nil
}

type tracer struct {
	graph *gographviz.Graph
	next  int
	last  string
	err   error
}

func newTracer() (*tracer, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(traceGraphName); err != nil {
		return nil, errors.Wrap(err, "name trace graph")
	}
	if err := g.SetDir(true); err != nil {
		return nil, errors.Wrap(err, "direct trace graph")
	}
	return &tracer{graph: g}, nil
}

func (t *tracer) enter() string {
	if t == nil {
		return ""
	}
	id := fmt.Sprintf("n%d", t.next)
	t.next++
	return id
}

// leave records node with its final result. Nodes are added post-order
// because the score is only known once the subtree is done.
func (t *tracer) leave(node string, res Result, reason string) Result {
	if t == nil {
		return res
	}
	t.last = node
	label := strconv.Itoa(res.Score)
	if reason != "" {
		label += "\n" + reason
	}
	attrs := map[string]string{"label": strconv.Quote(label)}
	switch reason {
	case "cut-off":
		attrs["shape"] = "box"
	case "king captured":
		attrs["color"] = "red"
	}
	t.fail(t.graph.AddNode(traceGraphName, node, attrs))
	return res
}

// edge links parent to the node left most recently.
func (t *tracer) edge(parent string, m Move) {
	if t == nil {
		return
	}
	attrs := map[string]string{"label": strconv.Quote(m.String())}
	t.fail(t.graph.AddEdge(parent, t.last, true, attrs))
}

func (t *tracer) fail(err error) {
	if err != nil && t.err == nil {
		t.err = errors.Wrap(err, "trace search")
	}
}
