package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/engine"
)

// Storage keys
const (
	keyStats       = "stats"
	analysisPrefix = "analysis/"
)

// analysisRecord is the stored form of a search result.
type analysisRecord struct {
	FEN   string    `json:"fen"`
	Move  string    `json:"move"`
	Score int       `json:"score"`
	Saved time.Time `json:"saved"`
}

// GameStats stores console game statistics.
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Abandoned      int            `json:"abandoned"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByDiff: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Won        bool
	Abandoned  bool
	Difficulty engine.Difficulty
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// analysisKey identifies a search result. The position key does not cover
// castling rights, so they are part of the storage key.
func analysisKey(pos *board.Position, depth int) []byte {
	return []byte(fmt.Sprintf("%s%016x/%s/%d", analysisPrefix, pos.Key(), pos.CastlingRights(), depth))
}

// LoadResult returns the stored result for pos searched to depth.
func (s *Storage) LoadResult(pos *board.Position, depth int) (engine.Result, bool, error) {
	var rec analysisRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(pos, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return engine.Result{}, false, err
	}

	move := board.NoMove
	if rec.Move != board.NoMove.String() {
		move, err = board.ParseMove(rec.Move)
		if err != nil {
			return engine.Result{}, false, fmt.Errorf("stored move: %w", err)
		}
	}

	return engine.Result{Move: move, Score: rec.Score}, true, nil
}

// SaveResult stores the result for pos searched to depth.
func (s *Storage) SaveResult(pos *board.Position, depth int, r engine.Result) error {
	data, err := json.Marshal(analysisRecord{
		FEN:   pos.ToFEN(),
		Move:  r.Move.String(),
		Score: r.Score,
		Saved: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(analysisKey(pos, depth), data)
	})
}

// CountResults returns the number of stored search results.
func (s *Storage) CountResults() (int, error) {
	prefix := []byte(analysisPrefix)
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// ClearResults deletes every stored search result.
func (s *Storage) ClearResults() error {
	prefix := []byte(analysisPrefix)
	var keys [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	if stats.WinsByDiff == nil {
		stats.WinsByDiff = make(map[string]int)
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	diffKey := "easy"
	switch result.Difficulty {
	case engine.Medium:
		diffKey = "medium"
	case engine.Hard:
		diffKey = "hard"
	}

	switch {
	case result.Abandoned:
		stats.Abandoned++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByDiff[diffKey]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
