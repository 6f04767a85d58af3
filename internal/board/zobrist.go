package board

// Zobrist keys for position hashing. The table is built once per process
// from a fixed seed and shared read-only by every Position, so keys are
// comparable across positions, searches and runs.
var (
	zobristPiece      [64][12]uint64 // [Square][Piece]
	zobristSideToMove uint64         // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x6A09E667F3BCC909)

	for sq := A1; sq <= H8; sq++ {
		for pc := WhitePawn; pc < NoPiece; pc++ {
			zobristPiece[sq][pc] = rng.next()
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(pc Piece, sq Square) uint64 {
	return zobristPiece[sq][pc]
}

// ZobristSideToMove returns the Zobrist key XORed in when Black is to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// ComputeKey recomputes the position key from scratch. Apply and Unapply
// maintain the key incrementally; this is for construction and verification.
func (p *Position) ComputeKey() uint64 {
	var key uint64

	for sq := A1; sq <= H8; sq++ {
		if pc := p.PieceAt(sq); pc != NoPiece {
			key ^= zobristPiece[sq][pc]
		}
	}

	if p.sideToMove == Black {
		key ^= zobristSideToMove
	}

	return key
}
