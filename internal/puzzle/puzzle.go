// Package puzzle benchmarks the engine against rated tactical puzzles and
// estimates its strength with an Elo-like rating.
package puzzle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Puzzle is one benchmark row: a position, the expected reply and the
// puzzle's difficulty rating.
type Puzzle struct {
	ID     string
	FEN    string
	Move   string
	Rating int
}

// ErrRow reports a CSV row that does not describe a puzzle.
var ErrRow = errors.New("malformed puzzle row")

// Read parses puzzles from CSV. The first row is a header and is skipped.
// Columns are id, position, expected move, rating; extra columns are
// ignored.
func Read(r io.Reader) ([]Puzzle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var puzzles []Puzzle
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return puzzles, nil
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		if len(rec) < 4 {
			return nil, fmt.Errorf("line %d: %w: %d columns", line, ErrRow, len(rec))
		}
		rating, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: rating %q", line, ErrRow, rec[3])
		}

		puzzles = append(puzzles, Puzzle{
			ID:     strings.TrimSpace(rec[0]),
			FEN:    strings.TrimSpace(rec[1]),
			Move:   strings.TrimSpace(rec[2]),
			Rating: rating,
		})
	}
}

// Load reads puzzles from a CSV file.
func Load(path string) ([]Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	puzzles, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return puzzles, nil
}
