package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/engine"
)

func newTestGame(t *testing.T, fen string, human board.Color, input string) (*Game, *bytes.Buffer) {
	t.Helper()
	var pos *board.Position
	if fen != "" {
		var err error
		pos, err = board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("Failed to parse FEN: %v", err)
		}
	}
	eng := engine.NewEngine(nil)
	eng.SetDifficulty(engine.Easy)

	var out bytes.Buffer
	return NewGame(eng, pos, human, strings.NewReader(input), &out), &out
}

func TestRenderIncludesFEN(t *testing.T) {
	out := Render(board.NewPosition())
	if !strings.Contains(out, "White to move | "+board.StartFEN) {
		t.Errorf("render missing FEN line:\n%s", out)
	}
	if strings.Count(out, "\n") < 9 {
		t.Errorf("render too short:\n%s", out)
	}
}

func TestPlayHumanThenEngine(t *testing.T) {
	g, out := newTestGame(t, "", board.White, "e2e5\ne7e5\nmoves\ne2e4\nNf3\nquit\n")

	o := g.Play()
	if !o.Abandoned || o.Winner != board.NoColor {
		t.Errorf("outcome = %+v, want abandoned", o)
	}
	if o.Plies != 4 {
		t.Errorf("plies = %d, want 4", o.Plies)
	}
	if g.Position().PieceAt(board.E4) != board.WhitePawn {
		t.Errorf("e2e4 not played:%s", g.Position())
	}
	if g.Position().PieceAt(board.F3) != board.WhiteKnight {
		t.Errorf("Nf3 not played:%s", g.Position())
	}
	if g.Position().SideToMove() != board.White {
		t.Errorf("engine did not reply")
	}

	text := out.String()
	for _, want := range []string{
		"Move e2e5 is not available",
		"Move e7e5 is not available",
		"b1c3 b1a3 g1h3",
		"Engine plays ",
		"Game over: abandoned",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPlayRejectsMalformedInput(t *testing.T) {
	g, out := newTestGame(t, "", board.White, "hello\n")
	o := g.Play()
	if !o.Abandoned {
		t.Errorf("outcome = %+v, want abandoned at end of input", o)
	}
	if !strings.Contains(out.String(), "Invalid move") {
		t.Errorf("malformed move not reported:\n%s", out)
	}
}

func TestPlayEngineCapturesKing(t *testing.T) {
	g, out := newTestGame(t, "R3k3/8/8/8/8/8/8/4K3 w - - 0 1", board.Black, "")

	o := g.Play()
	if o.Winner != board.White || o.Abandoned {
		t.Errorf("outcome = %+v, want White win", o)
	}
	if !strings.Contains(out.String(), "Black king captured") {
		t.Errorf("missing result line:\n%s", out)
	}
}

func TestPlaySideWithoutMovesLoses(t *testing.T) {
	g, _ := newTestGame(t, "k7/8/8/8/8/ppp5/PPP5/KB6 w - - 0 1", board.White, "")

	o := g.Play()
	if o.Winner != board.Black || o.Reason != "White has no moves" {
		t.Errorf("outcome = %+v, want Black win by no moves", o)
	}
	if o.Plies != 0 {
		t.Errorf("plies = %d, want 0", o.Plies)
	}
}
