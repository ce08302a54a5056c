// Command rollerball plays Rollerball in the terminal against the engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/rollerball-backend/internal/engine"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type session struct {
	board    engine.Board
	toMove   engine.Color
	depth    int
	engines  [2]bool
	maxPlies int
	dot      string
	traced   bool

	in  *bufio.Scanner
	out io.Writer
	log zerolog.Logger
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:], os.Stdin, os.Stdout, log); err != nil {
		log.Fatal().Err(err).Msg("rollerball")
	}
}

func run(args []string, in io.Reader, out io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("rollerball", flag.ContinueOnError)
	fs.SetOutput(out)
	depth := fs.Int("depth", 2, "engine search depth")
	whiteEngine := fs.Bool("white-engine", false, "engine plays white, you play black")
	selfPlay := fs.Bool("selfplay", false, "engine plays both sides")
	maxPlies := fs.Int("max-plies", 0, "stop after this many plies, 0 for no limit")
	start := fs.String("board", engine.InitialBoard().String(), "starting position, white to move")
	dot := fs.String("dot", "", "write the search tree of the first engine move as graphviz DOT to this file")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	if *depth < 1 {
		return errors.Errorf("depth %d must be at least 1", *depth)
	}
	b, err := engine.ParseBoard(*start)
	if err != nil {
		return errors.WithMessage(err, "starting position")
	}

	s := &session{
		board:    b,
		toMove:   engine.White,
		depth:    *depth,
		maxPlies: *maxPlies,
		dot:      *dot,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
	}
	s.engines[engine.White] = *whiteEngine || *selfPlay
	s.engines[engine.Black] = !*whiteEngine || *selfPlay
	return s.play()
}

func (s *session) play() error {
	for ply := 0; s.maxPlies == 0 || ply < s.maxPlies; ply++ {
		if over, msg := s.result(); over {
			fmt.Fprint(s.out, s.board.Pretty())
			fmt.Fprintln(s.out, msg)
			return nil
		}

		var m engine.Move
		if s.engines[s.toMove] {
			var err error
			if m, err = s.engineMove(); err != nil {
				return err
			}
		} else {
			var ok bool
			if m, ok = s.humanMove(); !ok {
				fmt.Fprintln(s.out, "bye")
				return nil
			}
		}

		s.board = engine.ApplyMove(s.board, m)
		s.toMove = s.toMove.Other()
	}
	fmt.Fprint(s.out, s.board.Pretty())
	fmt.Fprintf(s.out, "stopped after %d plies\n", s.maxPlies)
	return nil
}

// result reports whether the game has ended before the side to move plays.
func (s *session) result() (bool, string) {
	switch {
	case !s.board.HasKing(s.toMove):
		return true, fmt.Sprintf("%s wins (king captured)", s.toMove.Other())
	case !s.board.HasKing(s.toMove.Other()):
		return true, fmt.Sprintf("%s wins (king captured)", s.toMove)
	case len(engine.GenerateMoves(s.board, s.toMove)) == 0:
		return true, fmt.Sprintf("%s wins (%s has no moves)", s.toMove.Other(), s.toMove)
	}
	return false, ""
}

func (s *session) engineMove() (engine.Move, error) {
	var res engine.Result
	if s.dot != "" && !s.traced {
		r, graph, err := engine.Trace(s.board, s.depth, s.toMove)
		if err != nil {
			return engine.Move{}, errors.WithMessage(err, "trace search")
		}
		if err := os.WriteFile(s.dot, []byte(graph.String()), 0o644); err != nil {
			return engine.Move{}, errors.Wrap(err, "write search tree")
		}
		s.log.Info().Str("file", s.dot).Int("nodes", len(graph.Nodes.Nodes)).Msg("wrote search tree")
		s.traced = true
		res = r
	} else {
		res = engine.BestMove(s.board, s.depth, s.toMove)
	}
	if !res.Found {
		return engine.Move{}, errors.Errorf("engine found no move for %s", s.toMove)
	}
	fmt.Fprintf(s.out, "%s plays %s (score %d)\n", s.toMove, res.Move, res.Score)
	return res.Move, nil
}

// humanMove prompts until a legal move is entered. It returns false on end
// of input or "quit".
func (s *session) humanMove() (engine.Move, bool) {
	fmt.Fprint(s.out, s.board.Pretty())
	for {
		fmt.Fprintf(s.out, "%s> ", s.toMove)
		if !s.in.Scan() {
			return engine.Move{}, false
		}
		line := strings.TrimSpace(s.in.Text())
		switch line {
		case "":
			continue
		case "quit", "q":
			return engine.Move{}, false
		case "moves":
			var names []string
			for _, m := range engine.GenerateMoves(s.board, s.toMove) {
				names = append(names, m.String())
			}
			fmt.Fprintln(s.out, strings.Join(names, " "))
			continue
		}

		m, err := engine.ParseMove(line)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if !engine.IsLegal(s.board, s.toMove, m) {
			fmt.Fprintf(s.out, "illegal move %s\n", m)
			continue
		}
		return m, true
	}
}
