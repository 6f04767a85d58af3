package puzzle

import "math"

// Rating constants
const (
	InitialElo = 1400.0
	InitialK   = 500.0
	MinK       = 32.0
	KDecay     = 0.8
)

// Rating is an Elo-like estimate updated after every puzzle. The K factor
// starts high and decays so early results move the estimate quickly.
type Rating struct {
	Elo float64
	K   float64
}

// NewRating returns the starting estimate.
func NewRating() Rating {
	return Rating{Elo: InitialElo, K: InitialK}
}

// Expected returns the expected score against a puzzle of the given rating.
// The rating gap is floored to whole 400-point steps.
func (r Rating) Expected(puzzleRating int) float64 {
	steps := math.Floor((float64(puzzleRating) - r.Elo) / 400)
	return 1 / (1 + math.Pow(10, steps))
}

// Update records one result and decays K.
func (r *Rating) Update(puzzleRating int, solved bool) {
	score := 0.0
	if solved {
		score = 1
	}
	r.Elo += r.K * (score - r.Expected(puzzleRating))
	r.K = math.Max(MinK, r.K*KDecay)
}
