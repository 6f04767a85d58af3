package engine

import (
	"log"
	"strconv"
	"time"

	"github.com/hailam/chessbrute/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth   int
	Score   int // White's point of view
	Nodes   uint64
	Time    time.Duration
	Move    board.Move
	HitRate float64
	Cached  bool // Result came from the Store
}

// Result is a searched move and its score from White's point of view.
type Result struct {
	Move  board.Move
	Score int
}

// Store persists search results across engine instances and runs.
type Store interface {
	LoadResult(pos *board.Position, depth int) (Result, bool, error)
	SaveResult(pos *board.Position, depth int, r Result) error
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyDepth maps difficulty to search depth in plies.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

// ParseDifficulty maps a name to a difficulty level.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Medium, false
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	store      Store
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine. store may be nil.
func NewEngine(store Store) *Engine {
	return &Engine{
		searcher:   NewSearcher(),
		store:      store,
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds the best move at the depth of the current difficulty.
func (e *Engine) Search(pos *board.Position) (board.Move, int) {
	return e.SearchDepth(pos, DifficultyDepth[e.difficulty])
}

// SearchDepth finds the best move searching exactly depth plies. Results are
// read from and written to the Store when one is set; store failures are
// logged and the search proceeds without it.
func (e *Engine) SearchDepth(pos *board.Position, depth int) (board.Move, int) {
	startTime := time.Now()

	if e.store != nil {
		r, ok, err := e.store.LoadResult(pos, depth)
		if err != nil {
			log.Printf("engine: load result: %v", err)
		} else if ok {
			e.report(SearchInfo{
				Depth:  depth,
				Score:  r.Score,
				Time:   time.Since(startTime),
				Move:   r.Move,
				Cached: true,
			})
			return r.Move, r.Score
		}
	}

	move, score := e.searcher.BestMove(pos, depth)

	if e.store != nil {
		if err := e.store.SaveResult(pos, depth, Result{Move: move, Score: score}); err != nil {
			log.Printf("engine: save result: %v", err)
		}
	}

	e.report(SearchInfo{
		Depth:   depth,
		Score:   score,
		Nodes:   e.searcher.Nodes(),
		Time:    time.Since(startTime),
		Move:    move,
		HitRate: e.searcher.HitRate(),
	})

	return move, score
}

func (e *Engine) report(info SearchInfo) {
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
}

// Clear resets the searcher state.
func (e *Engine) Clear() {
	e.searcher.Reset()
}

// Perft counts the leaf nodes of the pseudo-legal move tree (for debugging
// move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, move := range moves {
		undo := pos.Apply(move)
		nodes += e.Perft(pos, depth-1)
		pos.Unapply(move, undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position (positive favors White).
func (e *Engine) Evaluate(pos *board.Position) int {
	return pos.Material()
}

// ScoreToString converts a score to a human-readable string. Scores at the
// bounds mean the side had no move left somewhere on the line.
func ScoreToString(score int) string {
	switch {
	case score >= Infinity:
		return "White wins"
	case score <= -Infinity:
		return "Black wins"
	case score >= board.KingValue/2:
		return "+King"
	case score <= -board.KingValue/2:
		return "-King"
	}
	if score > 0 {
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
