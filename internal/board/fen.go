package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses the six-field position text and returns a Position.
// Any failure is reported as a *ParseError.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, &ParseError{Field: "fields", Input: fen, Err: ErrFieldCount}
	}

	pos := emptyPosition()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, &ParseError{Field: "side", Input: parts[1], Err: ErrSide}
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, &ParseError{Field: "en passant", Input: parts[3], Err: ErrSquare}
		}
		pos.enPassant = sq
	}

	hmc, err := parseCounter("halfmove", parts[4])
	if err != nil {
		return nil, err
	}
	pos.halfMoveClock = hmc

	fmn, err := parseCounter("fullmove", parts[5])
	if err != nil {
		return nil, err
	}
	pos.fullMoveNumber = fmn

	pos.key = pos.ComputeKey()

	return pos, nil
}

func parseCounter(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &ParseError{Field: field, Input: s, Err: ErrNumber}
	}
	return n, nil
}

// parsePiecePlacement fills the grid from the placement field. Keys are
// computed afterwards, so cells are written directly.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &ParseError{Field: "placement", Input: placement, Err: ErrRank}
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return &ParseError{Field: "placement", Input: rankStr, Err: ErrRank}
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return &ParseError{Field: "placement", Input: string(c), Err: ErrPieceChar}
			}
			pos.squares[rank][file] = piece
			file++
		}

		if file != 8 {
			return &ParseError{Field: "placement", Input: rankStr, Err: ErrRank}
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.castling = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.castling |= WhiteKingSideCastle
		case 'Q':
			pos.castling |= WhiteQueenSideCastle
		case 'k':
			pos.castling |= BlackKingSideCastle
		case 'q':
			pos.castling |= BlackQueenSideCastle
		default:
			return &ParseError{Field: "castling", Input: castling, Err: ErrCastling}
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.squares[rank][file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
