package service

import (
	"github.com/benbeisheim/rollerball-backend/internal/engine"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SearchRequest asks for the best move of side on a board written in the
// engine's row notation, e.g. "rnknr/ppppp/...../...../PPPPP/RNKNR".
type SearchRequest struct {
	Board string `json:"board"`
	Depth int    `json:"depth"`
	Side  string `json:"side"`
}

type SearchResponse struct {
	Score   int    `json:"score"`
	Move    string `json:"move,omitempty"`
	Found   bool   `json:"found"`
	Nodes   int    `json:"nodes"`
	Cutoffs int    `json:"cutoffs"`
}

type MovesRequest struct {
	Board string `json:"board"`
	Side  string `json:"side"`
}

// EngineService answers stateless questions about arbitrary positions.
type EngineService struct {
	maxDepth int
	log      zerolog.Logger
}

func NewEngineService(maxDepth int, log zerolog.Logger) *EngineService {
	return &EngineService{maxDepth: maxDepth, log: log}
}

func parsePosition(board, side string) (engine.Board, engine.Color, error) {
	b, err := engine.ParseBoard(board)
	if err != nil {
		return b, engine.White, errors.Wrap(ErrInvalidBoard, err.Error())
	}
	c := engine.White
	if side != "" {
		if c, err = engine.ParseColor(side); err != nil {
			return b, c, errors.Wrap(ErrInvalidOptions, err.Error())
		}
	}
	return b, c, nil
}

func (es *EngineService) Search(req SearchRequest) (SearchResponse, error) {
	b, side, err := parsePosition(req.Board, req.Side)
	if err != nil {
		return SearchResponse{}, err
	}
	if req.Depth < 0 || req.Depth > es.maxDepth {
		return SearchResponse{}, errors.Wrapf(ErrInvalidOptions, "depth %d outside 0..%d", req.Depth, es.maxDepth)
	}

	res, stats := engine.SearchWithStats(b, req.Depth, -engine.Infinity, engine.Infinity, side == engine.White)
	es.log.Debug().
		Str("board", b.String()).
		Int("depth", req.Depth).
		Int("score", res.Score).
		Int("nodes", stats.Nodes).
		Msg("search")

	resp := SearchResponse{
		Score:   res.Score,
		Found:   res.Found,
		Nodes:   stats.Nodes,
		Cutoffs: stats.Cutoffs,
	}
	if res.Found {
		resp.Move = res.Move.String()
	}
	return resp, nil
}

// Moves lists the legal moves of side in generation order.
func (es *EngineService) Moves(req MovesRequest) ([]string, error) {
	b, side, err := parsePosition(req.Board, req.Side)
	if err != nil {
		return nil, err
	}
	moves := make([]string, 0)
	for _, m := range engine.GenerateMoves(b, side) {
		moves = append(moves, m.String())
	}
	return moves, nil
}
