package board

// offset is a (rank, file) step.
type offset struct {
	dr, df int
}

var knightOffsets = [8]offset{
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1},
}

var kingOffsets = [8]offset{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, {-1, 0}, {0, -1}, {1, 0}, {0, 1},
}

var (
	bishopDirections = kingOffsets[:4]
	rookDirections   = kingOffsets[4:]
	queenDirections  = kingOffsets[:]
)

// GenerateMoves returns the pseudo-legal moves of every piece of the side to
// move, scanning squares rank by rank from A1, files ascending.
//
// Pseudo-legal here means: pawns only push (no captures, no en passant),
// and nothing checks whether a king is left or passes through attack.
func (p *Position) GenerateMoves() []Move {
	moves := make([]Move, 0, 48)
	us := p.sideToMove

	for sq := A1; sq <= H8; sq++ {
		if pc := p.PieceAt(sq); pc != NoPiece && pc.Color() == us {
			moves = p.appendMovesFrom(moves, sq, pc)
		}
	}

	return moves
}

// GenerateMovesFrom returns the pseudo-legal moves of the piece on sq,
// whichever side owns it. An empty square yields no moves.
func (p *Position) GenerateMovesFrom(sq Square) []Move {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return nil
	}
	return p.appendMovesFrom(nil, sq, pc)
}

func (p *Position) appendMovesFrom(moves []Move, from Square, pc Piece) []Move {
	switch pc.Type() {
	case Pawn:
		return p.appendPawnMoves(moves, from, pc.Color())
	case Knight:
		return p.appendStepMoves(moves, from, pc.Color(), knightOffsets[:])
	case Bishop:
		return p.appendSlidingMoves(moves, from, pc.Color(), bishopDirections)
	case Rook:
		return p.appendSlidingMoves(moves, from, pc.Color(), rookDirections)
	case Queen:
		return p.appendSlidingMoves(moves, from, pc.Color(), queenDirections)
	case King:
		moves = p.appendStepMoves(moves, from, pc.Color(), kingOffsets[:])
		return p.appendCastlingMoves(moves, from, pc.Color())
	}
	return moves
}

// appendPawnMoves generates forward pushes only.
func (p *Position) appendPawnMoves(moves []Move, from Square, us Color) []Move {
	dir := 1
	if us == Black {
		dir = -1
	}

	rank, file := from.Rank()+dir, from.File()
	if !onBoard(rank, file) {
		return moves
	}
	to := NewSquare(file, rank)
	if !p.IsEmpty(to) {
		return moves
	}

	if to.RelativeRank(us) == 7 {
		for _, pr := range Promotions {
			moves = append(moves, NewPromotion(from, to, pr))
		}
		return moves
	}
	moves = append(moves, NewMove(from, to))

	if from.RelativeRank(us) == 1 {
		double := NewSquare(file, rank+dir)
		if p.IsEmpty(double) {
			moves = append(moves, NewMove(from, double))
		}
	}

	return moves
}

// appendStepMoves handles knights and non-castling king moves: a single step
// per offset onto an empty or enemy square.
func (p *Position) appendStepMoves(moves []Move, from Square, us Color, offsets []offset) []Move {
	for _, o := range offsets {
		rank, file := from.Rank()+o.dr, from.File()+o.df
		if !onBoard(rank, file) {
			continue
		}
		to := NewSquare(file, rank)
		if target := p.PieceAt(to); target == NoPiece || target.IsEnemyOf(us) {
			moves = append(moves, NewMove(from, to))
		}
	}
	return moves
}

// appendSlidingMoves casts a ray per direction. A ray continues over empty
// squares and ends at the first occupied one, which is included only when
// it holds an enemy piece.
func (p *Position) appendSlidingMoves(moves []Move, from Square, us Color, directions []offset) []Move {
	for _, d := range directions {
		rank, file := from.Rank()+d.dr, from.File()+d.df
		for onBoard(rank, file) {
			to := NewSquare(file, rank)
			target := p.PieceAt(to)
			if target == NoPiece {
				moves = append(moves, NewMove(from, to))
				rank += d.dr
				file += d.df
				continue
			}
			if target.IsEnemyOf(us) {
				moves = append(moves, NewMove(from, to))
			}
			break
		}
	}
	return moves
}

// castlingSquares describes one castling option for one side.
type castlingSquares struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          []Square
}

// castlingTable is indexed by [Color][0=kingside, 1=queenside].
var castlingTable = [2][2]castlingSquares{
	White: {
		{kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1, between: []Square{F1, G1}},
		{kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1, between: []Square{D1, C1, B1}},
	},
	Black: {
		{kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8, between: []Square{F8, G8}},
		{kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8, between: []Square{D8, C8, B8}},
	},
}

// castlingFor returns the castling option a king move from->to matches.
func castlingFor(us Color, from, to Square) (castlingSquares, bool) {
	if us >= NoColor {
		return castlingSquares{}, false
	}
	for _, cs := range castlingTable[us] {
		if cs.kingFrom == from && cs.kingTo == to {
			return cs, true
		}
	}
	return castlingSquares{}, false
}

// appendCastlingMoves offers castling when the right is held, the rook is on
// its corner and the squares between king and rook are empty. Attacks on the
// king's path are not examined.
func (p *Position) appendCastlingMoves(moves []Move, from Square, us Color) []Move {
	rook := NewPiece(Rook, us)
	for i, cs := range castlingTable[us] {
		if from != cs.kingFrom || !p.castling.CanCastle(us, i == 0) {
			continue
		}
		if p.PieceAt(cs.rookFrom) != rook {
			continue
		}
		empty := true
		for _, sq := range cs.between {
			if !p.IsEmpty(sq) {
				empty = false
				break
			}
		}
		if empty {
			moves = append(moves, NewMove(cs.kingFrom, cs.kingTo))
		}
	}
	return moves
}
