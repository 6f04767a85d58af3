// Package uci implements a synchronous subset of the Universal Chess
// Interface protocol on top of the brute-force engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/hailam/chessbrute/internal/board"
	"github.com/hailam/chessbrute/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	// Fixed search depth set by "setoption name Depth"; 0 uses difficulty.
	depth int

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// CPU profiling
	profileFile *os.File
}

// New creates a new UCI protocol handler reading commands from in. Protocol
// output goes to out, diagnostics ("info string ...") to errOut.
func New(eng *engine.Engine, in io.Reader, out, errOut io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		in:       in,
		out:      out,
		errOut:   errOut,
	}
}

// SetDepth fixes the depth used by "go" commands without a depth.
// 0 searches at the engine's difficulty depth.
func (u *UCI) SetDepth(depth int) {
	u.depth = depth
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Run reads commands until "quit" or end of input. Searches run to
// completion before the next command is read.
func (u *UCI) Run() error {
	defer u.stopProfile()

	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches are synchronous; nothing is running.
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			fmt.Fprintln(u.out, u.position.String())
		case "fen":
			fmt.Fprintln(u.out, u.position.ToFEN())
		case "moves":
			u.handleMoves()
		case "eval":
			fmt.Fprintf(u.out, "Material: %s\n", engine.ScoreToString(u.engine.Evaluate(u.position)))
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Fprintf(u.errOut, "info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name ChessBrute")
	fmt.Fprintln(u.out, "id author ChessBrute Team")
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "option name Difficulty type combo default medium var easy var medium var hard")
	fmt.Fprintln(u.out, "option name Depth type spin default 0 min 0 max 8")
	fmt.Fprintln(u.out, "option name CPUProfile type string default <empty>")
	fmt.Fprintln(u.out, "uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewPosition()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := slices.Index(args, "moves")
	if movesAt < 0 {
		movesAt = len(args)
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			fmt.Fprintf(u.errOut, "info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			move, err := parseMove(pos, moveStr)
			if err != nil {
				fmt.Fprintf(u.errOut, "info string Invalid move: %v\n", err)
				return
			}
			pos.Apply(move)
		}
	}

	u.position = pos
}

// parseMove converts a move string to a move that is generated in pos.
func parseMove(pos *board.Position, moveStr string) (board.Move, error) {
	move, err := board.ParseMove(moveStr)
	if err != nil {
		return board.NoMove, err
	}
	if !slices.Contains(pos.GenerateMoves(), move) {
		return board.NoMove, fmt.Errorf("%s is not playable in %s", moveStr, pos.ToFEN())
	}
	return move, nil
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int
}

// parseGoOptions parses "go" command arguments. Time controls are accepted
// and ignored: the search always runs to a fixed depth.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes":
			i++
		}
	}

	return opts
}

// handleGo runs a search and prints the best move.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	depth := opts.Depth
	if depth <= 0 {
		depth = u.depth
	}

	u.engine.OnInfo = u.sendInfo

	// The game position is never searched in place.
	pos := u.position.Copy()
	var move board.Move
	if depth > 0 {
		move, _ = u.engine.SearchDepth(pos, depth)
	} else {
		move, _ = u.engine.Search(pos)
	}

	fmt.Fprintf(u.out, "bestmove %s\n", move)
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// UCI scores are from the side to move's point of view.
	parts = append(parts, fmt.Sprintf("score cp %d", 100*info.Score*u.position.SideToMove().Sign()))

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.String())
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
	if info.Cached {
		fmt.Fprintln(u.errOut, "info string Result loaded from store")
	}
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "difficulty":
		d, ok := engine.ParseDifficulty(strings.ToLower(value))
		if !ok {
			fmt.Fprintf(u.errOut, "info string Unknown difficulty: %s\n", value)
			return
		}
		u.engine.SetDifficulty(d)
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 0 {
			fmt.Fprintf(u.errOut, "info string Invalid depth: %s\n", value)
			return
		}
		u.depth = depth
	case "cpuprofile":
		u.stopProfile()
		// Start new profile if path provided
		if value != "" && value != "stop" {
			f, err := os.Create(value)
			if err != nil {
				fmt.Fprintf(u.errOut, "info string Failed to create profile: %v\n", err)
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				fmt.Fprintf(u.errOut, "info string Failed to start profile: %v\n", err)
				return
			}
			u.profileFile = f
			fmt.Fprintf(u.errOut, "info string CPU profiling to %s\n", value)
		}
	default:
		fmt.Fprintf(u.errOut, "info string Unknown option: %s\n", name)
	}
}

func (u *UCI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	fmt.Fprintf(u.errOut, "info string CPU profile saved\n")
}

// handleMoves lists the moves available to the side to move.
func (u *UCI) handleMoves() {
	moves := u.position.GenerateMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	fmt.Fprintf(u.out, "Moves (%d): %s\n", len(moves), strings.Join(strs, " "))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			fmt.Fprintf(u.errOut, "info string Invalid perft depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}
