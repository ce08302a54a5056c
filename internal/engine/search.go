package engine

const (
	// WhiteWins and BlackWins score positions where a king has been captured.
	WhiteWins = 9999
	BlackWins = -WhiteWins

	// Infinity bounds the initial alpha-beta window. It lies outside every
	// score the search can produce.
	Infinity = 1 << 30
)

// Result is the outcome of a search. Found is false when no move was
// searched: the position was terminal, the depth was exhausted, or the side
// to move had no moves. Callers treat a missing move as the end of the game.
type Result struct {
	Score int
	Move  Move
	Found bool
}

// Stats counts the work done by a search.
type Stats struct {
	Nodes   int // positions visited, root included
	Cutoffs int // times remaining siblings were skipped
}

// Search runs a depth-limited minimax with alpha-beta pruning. maximizing
// selects the side to move: true for white, which maximizes the
// white-positive score, false for black. The root call should pass
// -Infinity and Infinity for alpha and beta.
//
// Ties keep the first move in generation order.
func Search(b Board, depth, alpha, beta int, maximizing bool) Result {
	var s searcher
	return s.minimax(b, depth, alpha, beta, maximizing)
}

// SearchWithStats is Search that also reports node and cut-off counts.
func SearchWithStats(b Board, depth, alpha, beta int, maximizing bool) (Result, Stats) {
	var s searcher
	res := s.minimax(b, depth, alpha, beta, maximizing)
	return res, s.stats
}

// BestMove searches from the full window for side.
func BestMove(b Board, depth int, side Color) Result {
	return Search(b, depth, -Infinity, Infinity, side == White)
}

type searcher struct {
	stats Stats
	trace *tracer
}

func (s *searcher) minimax(b Board, depth, alpha, beta int, maximizing bool) Result {
	s.stats.Nodes++
	node := s.trace.enter()

	// A captured king decides the game before anything else is looked at.
	if !b.HasKing(White) {
		return s.trace.leave(node, Result{Score: BlackWins}, "king captured")
	}
	if !b.HasKing(Black) {
		return s.trace.leave(node, Result{Score: WhiteWins}, "king captured")
	}
	if depth <= 0 {
		return s.trace.leave(node, Result{Score: Evaluate(b)}, "")
	}

	side := Black
	if maximizing {
		side = White
	}
	moves := GenerateMoves(b, side)
	if len(moves) == 0 {
		return s.trace.leave(node, Result{Score: Evaluate(b)}, "no moves")
	}

	best := Result{Score: Infinity}
	if maximizing {
		best.Score = -Infinity
	}
	for i, m := range moves {
		child := s.minimax(ApplyMove(b, m), depth-1, alpha, beta, !maximizing)
		s.trace.edge(node, m)

		if maximizing {
			if child.Score > best.Score {
				best = Result{Score: child.Score, Move: m, Found: true}
			}
			alpha = max(alpha, child.Score)
		} else {
			if child.Score < best.Score {
				best = Result{Score: child.Score, Move: m, Found: true}
			}
			beta = min(beta, child.Score)
		}

		if beta <= alpha {
			if i < len(moves)-1 {
				s.stats.Cutoffs++
				return s.trace.leave(node, best, "cut-off")
			}
			break
		}
	}
	return s.trace.leave(node, best, "")
}
