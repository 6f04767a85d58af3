package engine

import (
	"errors"
	"testing"

	"github.com/hailam/chessbrute/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN %q: %v", fen, err)
	}
	return pos
}

// minimax is an unmemoized reference search scoring from White's side.
func minimax(pos *board.Position, depth int) int {
	if depth == 0 {
		return pos.Material()
	}
	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		return -pos.SideToMove().Sign() * Infinity
	}

	white := pos.SideToMove() == board.White
	best := Infinity
	if white {
		best = -Infinity
	}
	for _, m := range moves {
		undo := pos.Apply(m)
		score := minimax(pos, depth-1)
		pos.Unapply(m, undo)
		if (white && score > best) || (!white && score < best) {
			best = score
		}
	}
	return best
}

func TestSearchStartPositionDepthOne(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher()

	move, score := s.BestMove(pos, 1)
	if move == board.NoMove {
		t.Fatal("BestMove returned NoMove for starting position")
	}

	found := false
	for _, m := range pos.GenerateMoves() {
		if m == move {
			found = true
		}
	}
	if !found {
		t.Errorf("move %v is not a start position move", move)
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if got := pos.ToFEN(); got != board.StartFEN {
		t.Errorf("position changed by search: %s", got)
	}
	t.Logf("Best move: %s (nodes %d)", move, s.Nodes())
}

func TestSearchDeterministic(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	m1, s1 := NewSearcher().BestMove(mustParse(t, fen), 2)
	m2, s2 := NewSearcher().BestMove(mustParse(t, fen), 2)
	if m1 != m2 || s1 != s2 {
		t.Errorf("searches differ: %v %d vs %v %d", m1, s1, m2, s2)
	}

	s := NewSearcher()
	pos := mustParse(t, fen)
	m3, s3 := s.BestMove(pos, 2)
	m4, s4 := s.BestMove(pos, 2)
	if m3 != m4 || s3 != s4 || m3 != m1 {
		t.Errorf("repeated search differs: %v %d vs %v %d", m3, s3, m4, s4)
	}
}

func TestSearchFindsCapture(t *testing.T) {
	for _, depth := range []int{1, 2, 3} {
		pos := mustParse(t, "q3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
		move, score := NewSearcher().BestMove(pos, depth)
		if move.String() != "a1a8" {
			t.Errorf("depth %d: move = %v, want a1a8", depth, move)
		}
		if score != 5 {
			t.Errorf("depth %d: score = %d, want 5", depth, score)
		}
	}
}

func TestSearchBlackScoresFromWhiteSide(t *testing.T) {
	pos := mustParse(t, "r3k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	move, score := NewSearcher().BestMove(pos, 1)
	if move.String() != "a8a1" {
		t.Errorf("move = %v, want a8a1", move)
	}
	if score != -5 {
		t.Errorf("score = %d, want -5", score)
	}
}

func TestSearchNoMoves(t *testing.T) {
	tests := []struct {
		fen  string
		want int
	}{
		{"8/8/8/8/8/p7/P7/8 w - - 0 1", -Infinity},
		{"8/p7/P7/8/8/8/8/8 b - - 0 1", Infinity},
	}

	for _, tc := range tests {
		pos := mustParse(t, tc.fen)
		move, score := NewSearcher().BestMove(pos, 2)
		if move != board.NoMove {
			t.Errorf("%s: move = %v, want none", tc.fen, move)
		}
		if score != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.fen, score, tc.want)
		}
	}
}

func TestSearchDepthZero(t *testing.T) {
	pos := mustParse(t, "q3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	move, score := NewSearcher().BestMove(pos, 0)
	if move != board.NoMove || score != -4 {
		t.Errorf("BestMove(0) = %v %d, want none -4", move, score)
	}
}

func TestSearchMatchesMinimax(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
	}{
		{board.StartFEN, 3},
		{"q3k3/8/8/8/8/8/8/R3K3 w - - 0 1", 3},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 3},
		{"4k3/8/3n4/8/2B5/8/8/4K3 b - - 0 1", 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"8/8/8/8/8/p7/P7/k6K w - - 0 1", 3},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			want := minimax(pos, tc.depth)

			s := NewSearcher()
			if got := s.Search(pos, tc.depth); got != want {
				t.Errorf("Search = %d, want %d", got, want)
			}
			if _, got := s.BestMove(pos, tc.depth); got != want {
				t.Errorf("BestMove score = %d, want %d", got, want)
			}
			if got := pos.ToFEN(); got != tc.fen {
				t.Errorf("position changed by search: %s", got)
			}
		})
	}
}

func TestMemoIsDepthAware(t *testing.T) {
	pos := mustParse(t, "q3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	s := NewSearcher()

	// A shallow search leaves depth-0 entries; a deeper one must not reuse
	// them for interior nodes.
	s.Search(pos, 1)
	if got, want := s.Search(pos, 2), minimax(pos, 2); got != want {
		t.Errorf("Search(2) after Search(1) = %d, want %d", got, want)
	}

	tt := NewTranspositionTable()
	tt.Store(42, 1, 7)
	if _, ok := tt.Probe(42, 2); ok {
		t.Error("probe at a different depth hit")
	}
	if score, ok := tt.Probe(42, 1); !ok || score != 7 {
		t.Errorf("Probe = %d %v, want 7 true", score, ok)
	}
	if tt.HitRate() != 50 {
		t.Errorf("HitRate = %v, want 50", tt.HitRate())
	}
	tt.Clear()
	if tt.Len() != 0 || tt.HitRate() != 0 {
		t.Error("Clear left entries or statistics")
	}
}

type fakeStore struct {
	results map[string]Result
	loads   int
	saves   int
	err     error
}

func (f *fakeStore) key(pos *board.Position, depth int) string {
	return pos.ToFEN() + "|" + string(rune('0'+depth))
}

func (f *fakeStore) LoadResult(pos *board.Position, depth int) (Result, bool, error) {
	f.loads++
	if f.err != nil {
		return Result{}, false, f.err
	}
	r, ok := f.results[f.key(pos, depth)]
	return r, ok, nil
}

func (f *fakeStore) SaveResult(pos *board.Position, depth int, r Result) error {
	f.saves++
	if f.err != nil {
		return f.err
	}
	f.results[f.key(pos, depth)] = r
	return nil
}

func TestEngineUsesStore(t *testing.T) {
	store := &fakeStore{results: make(map[string]Result)}
	eng := NewEngine(store)

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	pos := mustParse(t, "q3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	move, score := eng.SearchDepth(pos, 2)
	if move.String() != "a1a8" || score != 5 {
		t.Fatalf("SearchDepth = %v %d, want a1a8 5", move, score)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}

	move2, score2 := eng.SearchDepth(pos, 2)
	if move2 != move || score2 != score {
		t.Errorf("cached result = %v %d, want %v %d", move2, score2, move, score)
	}
	if store.saves != 1 {
		t.Errorf("cache hit saved again")
	}

	if len(infos) != 2 {
		t.Fatalf("got %d info reports, want 2", len(infos))
	}
	if infos[0].Cached || infos[0].Nodes == 0 {
		t.Errorf("first report = %+v, want a real search", infos[0])
	}
	if !infos[1].Cached {
		t.Errorf("second report = %+v, want cached", infos[1])
	}
}

func TestEngineIgnoresStoreErrors(t *testing.T) {
	store := &fakeStore{results: make(map[string]Result), err: errors.New("disk gone")}
	eng := NewEngine(store)

	move, score := eng.SearchDepth(mustParse(t, "q3k3/8/8/8/8/8/8/R3K3 w - - 0 1"), 1)
	if move.String() != "a1a8" || score != 5 {
		t.Errorf("SearchDepth = %v %d, want a1a8 5", move, score)
	}
	if store.loads != 1 || store.saves != 1 {
		t.Errorf("loads=%d saves=%d, want 1 and 1", store.loads, store.saves)
	}
}

func TestEngineDifficulty(t *testing.T) {
	eng := NewEngine(nil)
	var depth int
	eng.OnInfo = func(info SearchInfo) { depth = info.Depth }

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		eng.SetDifficulty(d)
		eng.Search(mustParse(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"))
		if depth != DifficultyDepth[d] {
			t.Errorf("difficulty %d searched depth %d, want %d", d, depth, DifficultyDepth[d])
		}
	}

	if d, ok := ParseDifficulty("hard"); !ok || d != Hard {
		t.Errorf("ParseDifficulty(hard) = %v %v", d, ok)
	}
	if _, ok := ParseDifficulty("impossible"); ok {
		t.Error("ParseDifficulty accepted an unknown level")
	}
}

func TestEnginePerft(t *testing.T) {
	eng := NewEngine(nil)
	pos := board.NewPosition()
	if got := eng.Perft(pos, 2); got != 400 {
		t.Errorf("Perft(2) = %d, want 400", got)
	}
	if got := pos.ToFEN(); got != board.StartFEN {
		t.Errorf("position changed by perft: %s", got)
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0"},
		{5, "+5"},
		{-3, "-3"},
		{board.KingValue, "+King"},
		{-board.KingValue + 9, "-King"},
		{Infinity, "White wins"},
		{-Infinity, "Black wins"},
	}

	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
