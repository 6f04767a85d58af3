package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// Position is the mutable game state. Cells are only written through
// place/take, which keep the key in step with the board; everything
// outside the package mutates a Position via Apply and Unapply.
type Position struct {
	squares [8][8]Piece // [rank][file]

	sideToMove     Color
	castling       CastlingRights
	enPassant      Square // NoSquare if none
	halfMoveClock  int
	fullMoveNumber int

	key uint64
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// emptyPosition returns a board with no pieces and White to move.
func emptyPosition() *Position {
	p := &Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for r := range p.squares {
		for f := range p.squares[r] {
			p.squares[r][f] = NoPiece
		}
	}
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.squares[sq.Rank()][sq.File()]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// SideToMove returns the side whose turn it is.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfMoveClock returns the number of half-moves since the last pawn move or capture.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full move counter, starting at 1.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Key returns the incrementally maintained Zobrist key.
func (p *Position) Key() uint64 { return p.key }

// place puts a piece on an empty square and XORs its key in.
func (p *Position) place(pc Piece, sq Square) {
	if pc == NoPiece {
		return
	}
	p.squares[sq.Rank()][sq.File()] = pc
	p.key ^= zobristPiece[sq][pc]
}

// take clears a square, XORs its occupant's key out and returns the occupant.
func (p *Position) take(sq Square) Piece {
	pc := p.squares[sq.Rank()][sq.File()]
	if pc == NoPiece {
		return NoPiece
	}
	p.squares[sq.Rank()][sq.File()] = NoPiece
	p.key ^= zobristPiece[sq][pc]
	return pc
}

// flipSide passes the turn and toggles the side-to-move key.
func (p *Position) flipSide() {
	p.sideToMove = p.sideToMove.Other()
	p.key ^= zobristSideToMove
}

// KingSquare returns the square of the given side's king, or NoSquare if it
// has been captured.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if p.PieceAt(sq) == king {
			return sq
		}
	}
	return NoSquare
}

// Material returns the material balance (positive favors white).
func (p *Position) Material() int {
	score := 0
	for r := range p.squares {
		for _, pc := range p.squares[r] {
			score += pc.Value()
		}
	}
	return score
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.squares[rank][file]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMoveNumber)
	fmt.Fprintf(&sb, "Key: %016x\n", p.key)
	return sb.String()
}
