// ChessBrute - play the brute-force engine on the terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/console"
	"github.com/hailam/chessbrute/internal/engine"
	"github.com/hailam/chessbrute/internal/storage"
)

var (
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
	black      = flag.Bool("black", false, "play the black pieces")
	fen        = flag.String("fen", "", "start from this position instead of the initial one")
	dbFlag     = flag.String("db", "default", `analysis and statistics store: "memory", "default" (platform data dir) or a directory`)
)

func main() {
	flag.Parse()

	d, ok := engine.ParseDifficulty(*difficulty)
	if !ok {
		log.Fatalf("unknown difficulty %q", *difficulty)
	}

	var pos *board.Position
	if *fen != "" {
		var err error
		if pos, err = board.ParseFEN(*fen); err != nil {
			log.Fatal(err)
		}
	}

	dir, err := storage.ResolveDatabaseDir(*dbFlag)
	if err != nil {
		log.Fatal("could not resolve database directory: ", err)
	}
	store, err := storage.Open(dir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	eng := engine.NewEngine(store)
	eng.SetDifficulty(d)

	human := board.White
	if *black {
		human = board.Black
	}

	outcome := console.NewGame(eng, pos, human, os.Stdin, os.Stdout).Play()

	if err := store.RecordGame(storage.GameResult{
		Won:        outcome.Winner == human,
		Abandoned:  outcome.Abandoned,
		Difficulty: d,
		Duration:   outcome.Duration,
	}); err != nil {
		log.Printf("could not record game: %v", err)
		return
	}

	stats, err := store.LoadStats()
	if err != nil {
		log.Printf("could not load statistics: %v", err)
		return
	}
	fmt.Printf("Games: %d, won: %d, lost: %d, abandoned: %d (win rate %.0f%%)\n",
		stats.GamesPlayed, stats.Wins, stats.Losses, stats.Abandoned, stats.GetWinRate())
}
