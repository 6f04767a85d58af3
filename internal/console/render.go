// Package console renders positions as text and runs a human-vs-engine game
// on a terminal.
package console

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/hailam/chessbrute/internal/board"
)

// Render draws pos as a text diagram followed by its FEN. Positions the
// notnil/chess decoder rejects fall back to the board's debug layout.
func Render(pos *board.Position) string {
	fen := pos.ToFEN()

	opt, err := chess.FEN(fen)
	if err != nil {
		return pos.String()
	}
	game := chess.NewGame(opt)

	var sb strings.Builder
	sb.WriteString(game.Position().Board().Draw())
	fmt.Fprintf(&sb, "%s to move | %s\n", pos.SideToMove(), fen)
	return sb.String()
}
