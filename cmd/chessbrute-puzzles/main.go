package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessbrute/internal/engine"
	"github.com/hailam/chessbrute/internal/puzzle"
	"github.com/hailam/chessbrute/internal/storage"
)

var (
	file       = flag.String("file", "puzzles.csv", "puzzle CSV (id, fen, move, rating)")
	limit      = flag.Int("n", 50, "number of puzzles to attempt (0 for all)")
	depth      = flag.Int("depth", 3, "search depth in plies")
	dbFlag     = flag.String("db", "memory", `analysis store: "memory", "default" (platform data dir) or a directory`)
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	puzzles, err := puzzle.Load(*file)
	if err != nil {
		log.Fatal(err)
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

	runner := &puzzle.Runner{
		Engine: engine.NewEngine(store),
		Depth:  *depth,
		Limit:  *limit,
		Out:    os.Stdout,
	}
	report := runner.Run(puzzles)

	fmt.Println()
	fmt.Println("--------------------RESULTS--------------------")
	fmt.Println(report)
}
