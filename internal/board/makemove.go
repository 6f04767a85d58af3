package board

// cornerRights maps each rook corner to the castling right it carries.
var cornerRights = map[Square]CastlingRights{
	H1: WhiteKingSideCastle,
	A1: WhiteQueenSideCastle,
	H8: BlackKingSideCastle,
	A8: BlackQueenSideCastle,
}

// Apply makes a move and returns the information Unapply needs.
// Undo.Captured holds whatever stood on the destination square.
//
// A king moving from its home square to a castling destination also moves
// the matching rook. Castling rights are lost when the king moves and when
// a move leaves or lands on a rook corner.
func (p *Position) Apply(m Move) Undo {
	undo := Undo{
		Captured:      NoPiece,
		Castling:      p.castling,
		EnPassant:     p.enPassant,
		HalfMoveClock: p.halfMoveClock,
	}

	mover := p.PieceAt(m.From)
	if mover == NoPiece || !m.To.IsValid() || m.From == m.To {
		return undo
	}
	undo.Valid = true
	undo.Moved = mover
	us := mover.Color()

	undo.Captured = p.take(m.To)
	p.take(m.From)

	placed := mover
	if m.IsPromotion() {
		placed = NewPiece(m.Promotion.Type(), us)
	}
	p.place(placed, m.To)

	if mover.Type() == King {
		if cs, ok := castlingFor(us, m.From, m.To); ok {
			p.place(p.take(cs.rookFrom), cs.rookTo)
		}
		p.castling &^= castleRight(us, true) | castleRight(us, false)
	}
	p.castling &^= cornerRights[m.From] | cornerRights[m.To]

	p.enPassant = NoSquare
	if mover.Type() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.enPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if mover.Type() == Pawn || undo.Captured != NoPiece {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}
	if p.sideToMove == Black {
		p.fullMoveNumber++
	}

	p.flipSide()

	return undo
}

// Unapply reverses Apply. Board, key, side to move, castling rights, en
// passant target and counters are restored exactly.
func (p *Position) Unapply(m Move, undo Undo) {
	if !undo.Valid {
		return
	}

	p.flipSide()
	if p.sideToMove == Black {
		p.fullMoveNumber--
	}

	us := undo.Moved.Color()
	if undo.Moved.Type() == King {
		if cs, ok := castlingFor(us, m.From, m.To); ok {
			p.place(p.take(cs.rookTo), cs.rookFrom)
		}
	}

	p.take(m.To)
	p.place(undo.Moved, m.From)
	p.place(undo.Captured, m.To)

	p.castling = undo.Castling
	p.enPassant = undo.EnPassant
	p.halfMoveClock = undo.HalfMoveClock
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
