package engine

import (
	"github.com/hailam/chessbrute/internal/board"
)

// Infinity bounds every score. A node with no moves scores -Infinity for the
// side to move.
const Infinity = 100000

// Searcher performs a full-width negamax search over pseudo-legal moves.
// It owns its memo table; each top-level call starts from an empty table.
type Searcher struct {
	tt    *TranspositionTable
	nodes uint64
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{tt: NewTranspositionTable()}
}

// Reset clears the memo table and node counter.
func (s *Searcher) Reset() {
	s.tt.Clear()
	s.nodes = 0
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// HitRate returns the memo hit rate of the last search as a percentage.
func (s *Searcher) HitRate() float64 {
	return s.tt.HitRate()
}

// Search returns the score of pos searched to depth, from White's point of
// view. The position is restored before returning.
func (s *Searcher) Search(pos *board.Position, depth int) int {
	s.Reset()
	return pos.SideToMove().Sign() * s.negamax(pos, depth)
}

// BestMove returns the best move for the side to move and its score from
// White's point of view. Ties keep the earliest move in generation order.
// With depth <= 0, or when the side to move has no moves, NoMove is returned
// with the static score of the node.
func (s *Searcher) BestMove(pos *board.Position, depth int) (board.Move, int) {
	s.Reset()
	sign := pos.SideToMove().Sign()

	if depth <= 0 {
		s.nodes++
		return board.NoMove, pos.Material()
	}

	s.nodes++
	bestMove := board.NoMove
	bestScore := -Infinity

	for _, m := range pos.GenerateMoves() {
		undo := pos.Apply(m)
		score := -s.negamax(pos, depth-1)
		pos.Unapply(m, undo)

		if bestMove == board.NoMove || score > bestScore {
			bestMove = m
			bestScore = score
		}
	}

	s.tt.Store(pos.Key(), depth, bestScore)
	return bestMove, sign * bestScore
}

// negamax returns the score of pos relative to the side to move.
func (s *Searcher) negamax(pos *board.Position, depth int) int {
	s.nodes++
	key := pos.Key()

	if score, ok := s.tt.Probe(key, depth); ok {
		return score
	}

	if depth == 0 {
		score := pos.SideToMove().Sign() * pos.Material()
		s.tt.Store(key, depth, score)
		return score
	}

	best := -Infinity
	for _, m := range pos.GenerateMoves() {
		undo := pos.Apply(m)
		score := -s.negamax(pos, depth-1)
		pos.Unapply(m, undo)

		if score > best {
			best = score
		}
	}

	s.tt.Store(key, depth, best)
	return best
}
