package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSAN reports algebraic notation that matches no generated move.
var ErrSAN = errors.New("no matching move")

const sanPieceLetters = "PNBRQK"

// ToSAN converts a move to Standard Algebraic Notation. Check and mate
// markers are never added because positions do not track check.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == NoPiece {
		return m.String() // Fallback to coordinates
	}

	pt := piece.Type()
	if pt == King {
		if _, ok := castlingFor(piece.Color(), m.From, m.To); ok {
			if m.To > m.From {
				return "O-O"
			}
			return "O-O-O"
		}
	}

	var sb strings.Builder

	if pt != Pawn {
		sb.WriteByte(sanPieceLetters[pt])
		sb.WriteString(disambiguation(pos, m, piece))
	}

	if !pos.IsEmpty(m.To) {
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(sanPieceLetters[m.Promotion.Type()])
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from moves of same-kind pieces to the same destination.
func disambiguation(pos *Position, m Move, piece Piece) string {
	var candidates []Square
	for _, other := range pos.GenerateMoves() {
		if other.To == m.To && other.From != m.From && pos.PieceAt(other.From) == piece {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN finds the generated move that s describes in pos. Check and mate
// markers are accepted and ignored.
func ParseSAN(s string, pos *Position) (Move, error) {
	input := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")

	us := pos.SideToMove()
	switch s {
	case "O-O", "0-0":
		return matchSAN(pos, input, func(m Move) bool {
			cs := castlingTable[us][0]
			return m.From == cs.kingFrom && m.To == cs.kingTo && pos.PieceAt(m.From).Type() == King
		})
	case "O-O-O", "0-0-0":
		return matchSAN(pos, input, func(m Move) bool {
			cs := castlingTable[us][1]
			return m.From == cs.kingFrom && m.To == cs.kingTo && pos.PieceAt(m.From).Type() == King
		})
	}

	promo := NoPromotion
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("%q: %w", input, ErrPromotion)
		}
		switch s[idx+1] {
		case 'Q':
			promo = PromoteQueen
		case 'R':
			promo = PromoteRook
		case 'B':
			promo = PromoteBishop
		case 'N':
			promo = PromoteKnight
		default:
			return NoMove, fmt.Errorf("%q: %w", input, ErrPromotion)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		idx := strings.IndexByte(sanPieceLetters, s[0])
		if idx <= 0 {
			return NoMove, fmt.Errorf("%q: %w", input, ErrPieceChar)
		}
		pt = PieceType(idx)
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%q: %w", input, ErrSquare)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%q: %w", input, ErrSquare)
	}
	s = s[:len(s)-2]

	fromFile, fromRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			fromFile = int(c - 'a')
		case c >= '1' && c <= '8':
			fromRank = int(c - '1')
		}
	}

	return matchSAN(pos, input, func(m Move) bool {
		return m.To == dest &&
			pos.PieceAt(m.From).Type() == pt &&
			(fromFile < 0 || m.From.File() == fromFile) &&
			(fromRank < 0 || m.From.Rank() == fromRank) &&
			(!isCapture || !pos.IsEmpty(m.To)) &&
			m.Promotion == promo
	})
}

// matchSAN returns the first generated move accepted by match.
func matchSAN(pos *Position, input string, match func(Move) bool) (Move, error) {
	for _, m := range pos.GenerateMoves() {
		if match(m) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%q: %w", input, ErrSAN)
}

// MovesToSAN converts a sequence of moves played from pos to SAN. pos is
// left unchanged.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.Apply(m)
	}

	return result
}
