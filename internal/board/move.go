package board

// Promotion tags the piece a pawn turns into. The zero value means no promotion.
type Promotion uint8

const (
	NoPromotion Promotion = iota
	PromoteQueen
	PromoteRook
	PromoteBishop
	PromoteKnight
)

// Promotions lists the promotion choices in generation order.
var Promotions = [4]Promotion{PromoteQueen, PromoteRook, PromoteBishop, PromoteKnight}

// Type returns the piece type a promotion produces.
func (pr Promotion) Type() PieceType {
	switch pr {
	case PromoteQueen:
		return Queen
	case PromoteRook:
		return Rook
	case PromoteBishop:
		return Bishop
	case PromoteKnight:
		return Knight
	default:
		return NoPieceType
	}
}

// Char returns the move-text suffix for the promotion.
func (pr Promotion) Char() byte {
	switch pr {
	case PromoteQueen:
		return 'q'
	case PromoteRook:
		return 'r'
	case PromoteBishop:
		return 'b'
	case PromoteKnight:
		return 'n'
	default:
		return 0
	}
}

// promotionFromChar accepts 'k' for knight as well, the spelling older
// move lists use.
func promotionFromChar(c byte) (Promotion, bool) {
	switch c {
	case 'q':
		return PromoteQueen, true
	case 'r':
		return PromoteRook, true
	case 'b':
		return PromoteBishop, true
	case 'n', 'k':
		return PromoteKnight, true
	}
	return NoPromotion, false
}

// Move is a from/to pair plus an optional promotion. Captures, castling and
// en passant are not encoded; Apply derives them from the board.
type Move struct {
	From      Square
	To        Square
	Promotion Promotion
}

// NoMove represents an absent move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, pr Promotion) Move {
	return Move{From: from, To: to, Promotion: pr}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPromotion
}

// String returns the move text (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses move text of the form <file><rank><file><rank>[promotion].
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, &FormatError{Input: s, Err: ErrMoveLength}
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, &FormatError{Input: s, Err: ErrCoordinate}
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, &FormatError{Input: s, Err: ErrCoordinate}
	}

	if len(s) == 5 {
		pr, ok := promotionFromChar(s[4])
		if !ok {
			return NoMove, &FormatError{Input: s, Err: ErrPromotion}
		}
		return NewPromotion(from, to, pr), nil
	}

	return NewMove(from, to), nil
}

// Undo stores what Unapply needs to restore the position.
type Undo struct {
	Captured      Piece // piece that stood on the destination, or NoPiece
	Moved         Piece // piece that stood on the origin
	Castling      CastlingRights
	EnPassant     Square
	HalfMoveClock int
	Valid         bool // false when the origin square was empty and nothing changed
}
