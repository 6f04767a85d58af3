package puzzle

import (
	"fmt"
	"io"
	"math"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/engine"
)

// Report summarizes a benchmark run.
type Report struct {
	Attempted     int
	Correct       int
	Skipped       int // positions that failed to parse
	Illegal       int // engine picks a full legal-move generator rejects
	HighestSolved int
	Rating        Rating
}

// Incorrect returns the number of attempted puzzles that were not solved.
func (r Report) Incorrect() int {
	return r.Attempted - r.Correct
}

// String renders the summary the way the benchmark prints it.
func (r Report) String() string {
	return fmt.Sprintf("%d puzzles attempted, %d correct, %d incorrect, %d skipped, %d illegal picks\n"+
		"Highest problem solved: %d\n"+
		"Estimated engine Elo: %d",
		r.Attempted, r.Correct, r.Incorrect(), r.Skipped, r.Illegal,
		r.HighestSolved, int(math.Round(r.Rating.Elo)))
}

// Runner solves puzzles with a fixed-depth engine search.
type Runner struct {
	Engine *engine.Engine
	Depth  int
	Limit  int       // 0 means every puzzle
	Out    io.Writer // per-puzzle progress, may be nil
}

// Run solves puzzles in order and returns the summary.
func (r *Runner) Run(puzzles []Puzzle) Report {
	rep := Report{Rating: NewRating()}

	for _, p := range puzzles {
		if r.Limit > 0 && rep.Attempted+rep.Skipped >= r.Limit {
			break
		}

		pos, err := board.ParseFEN(p.FEN)
		if err != nil {
			rep.Skipped++
			r.printf("%s: skipped: %v\n", p.ID, err)
			continue
		}

		move, _ := r.Engine.SearchDepth(pos, r.Depth)
		got := move.String()
		solved := got == p.Move

		rep.Attempted++
		if solved {
			rep.Correct++
			rep.HighestSolved = max(rep.HighestSolved, p.Rating)
		}
		if move != board.NoMove {
			if legal, known := IsLegal(p.FEN, got); known && !legal {
				rep.Illegal++
			}
		}
		rep.Rating.Update(p.Rating, solved)

		verdict := "no.    "
		if solved {
			verdict = "solved!"
		}
		r.printf("%d ... %s %s New elo = %d\n", p.Rating, verdict, got, int(rep.Rating.Elo))
	}

	return rep
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

// IsLegal reports whether move is legal in fen according to dragontoothmg,
// which checks king safety. known is false when dragontoothmg cannot load
// the position, such as one without kings.
func IsLegal(fen, move string) (legal, known bool) {
	defer func() {
		if recover() != nil {
			legal, known = false, false
		}
	}()

	b := dragontoothmg.ParseFen(fen)
	var moves []string
	for _, m := range b.GenerateLegalMoves() {
		moves = append(moves, m.String())
	}
	return slices.Contains(moves, move), true
}
