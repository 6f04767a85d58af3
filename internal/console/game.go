package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/engine"
)

// Outcome describes how a game ended.
type Outcome struct {
	Winner    board.Color // NoColor if abandoned
	Reason    string
	Abandoned bool
	Plies     int
	Duration  time.Duration
}

// Game is an interactive game between a human and the engine.
type Game struct {
	engine   *engine.Engine
	position *board.Position
	human    board.Color

	in  *bufio.Scanner
	out io.Writer
}

// NewGame creates a game from pos, or from the starting position when pos
// is nil. The human plays the given color; the engine plays the other.
func NewGame(eng *engine.Engine, pos *board.Position, human board.Color, in io.Reader, out io.Writer) *Game {
	if pos == nil {
		pos = board.NewPosition()
	}
	return &Game{
		engine:   eng,
		position: pos,
		human:    human,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Position returns the current game position.
func (g *Game) Position() *board.Position {
	return g.position
}

// Play runs the game loop until a king is captured, the side to move has
// no moves, the human types "quit", or input ends.
func (g *Game) Play() Outcome {
	start := time.Now()
	plies := 0

	finish := func(o Outcome) Outcome {
		o.Plies = plies
		o.Duration = time.Since(start)
		fmt.Fprintln(g.out, Render(g.position))
		fmt.Fprintf(g.out, "Game over: %s\n", o.Reason)
		return o
	}

	for {
		us := g.position.SideToMove()
		if g.position.KingSquare(us) == board.NoSquare {
			return finish(Outcome{Winner: us.Other(), Reason: fmt.Sprintf("%s king captured", us)})
		}
		moves := g.position.GenerateMoves()
		if len(moves) == 0 {
			return finish(Outcome{Winner: us.Other(), Reason: fmt.Sprintf("%s has no moves", us)})
		}

		var move board.Move
		if us == g.human {
			fmt.Fprintln(g.out, Render(g.position))
			m, ok := g.readMove(moves)
			if !ok {
				return finish(Outcome{Winner: board.NoColor, Reason: "abandoned", Abandoned: true})
			}
			move = m
		} else {
			fmt.Fprintln(g.out, "Calculating engine move...")
			m, score := g.engine.Search(g.position)
			fmt.Fprintf(g.out, "Engine plays %s (%s), evaluation %s\n", m.ToSAN(g.position), m, engine.ScoreToString(score))
			move = m
		}

		g.position.Apply(move)
		plies++
	}
}

// readMove prompts until the human enters one of moves. It reports false
// when the human quits or input ends.
func (g *Game) readMove(moves []board.Move) (board.Move, bool) {
	for {
		fmt.Fprint(g.out, "Enter a move (e.g. e2e4 or Nf3), \"moves\" or \"quit\": ")
		if !g.in.Scan() {
			fmt.Fprintln(g.out)
			return board.NoMove, false
		}

		text := strings.TrimSpace(g.in.Text())
		switch text {
		case "":
			continue
		case "quit", "exit":
			return board.NoMove, false
		case "moves":
			strs := make([]string, len(moves))
			for i, m := range moves {
				strs[i] = m.String()
			}
			fmt.Fprintln(g.out, strings.Join(strs, " "))
			continue
		}

		m, err := board.ParseMove(text)
		if err != nil {
			san, sanErr := board.ParseSAN(text, g.position)
			if sanErr != nil {
				fmt.Fprintf(g.out, "Invalid move: %v\n", err)
				continue
			}
			m = san
		}
		if !slices.Contains(moves, m) {
			fmt.Fprintf(g.out, "Move %s is not available\n", m)
			continue
		}
		return m, true
	}
}
