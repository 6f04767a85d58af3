package engine

// ttKey identifies a memoized search result. Depth is part of the key so a
// shallow score is never reused for a deeper query.
type ttKey struct {
	hash  uint64
	depth int
}

// TranspositionTable memoizes negamax scores for one top-level search.
// Scores are stored relative to the side to move at the node.
type TranspositionTable struct {
	entries map[ttKey]int

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		entries: make(map[ttKey]int),
	}
}

// Probe looks up the score stored for a position at the given remaining depth.
func (tt *TranspositionTable) Probe(hash uint64, depth int) (int, bool) {
	tt.probes++
	score, ok := tt.entries[ttKey{hash, depth}]
	if ok {
		tt.hits++
	}
	return score, ok
}

// Store saves a score for a position at the given remaining depth.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int) {
	tt.entries[ttKey{hash, depth}] = score
}

// Clear empties the table and resets its statistics.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits = 0
	tt.probes = 0
}

// Len returns the number of stored entries.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}
