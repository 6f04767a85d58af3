package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessbrute/internal/engine"
	"github.com/hailam/chessbrute/internal/storage"
	"github.com/hailam/chessbrute/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbFlag     = flag.String("db", "memory", `analysis store: "memory", "default" (platform data dir) or a directory`)
	depth      = flag.Int("depth", 0, "fixed search depth for \"go\" without depth (0 uses difficulty)")
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
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
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
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
	d, ok := engine.ParseDifficulty(*difficulty)
	if !ok {
		log.Fatalf("unknown difficulty %q", *difficulty)
	}
	eng.SetDifficulty(d)

	protocol := uci.New(eng, os.Stdin, os.Stdout, os.Stderr)
	if *depth > 0 {
		protocol.SetDepth(*depth)
	}
	if err := protocol.Run(); err != nil {
		log.Printf("input error: %v", err)
	}
}
