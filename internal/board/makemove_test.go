package board

import "testing"

// checkRoundTrip applies every move to the given depth and verifies that
// Unapply restores the position and that the incremental key never drifts.
func checkRoundTrip(t *testing.T, pos *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	for _, m := range pos.GenerateMoves() {
		before := *pos
		undo := pos.Apply(m)
		if !undo.Valid {
			t.Fatalf("generated move %v was rejected", m)
		}
		if pos.Key() != pos.ComputeKey() {
			t.Fatalf("after %v: key %016x, recomputed %016x", m, pos.Key(), pos.ComputeKey())
		}
		checkRoundTrip(t, pos, depth-1)
		pos.Unapply(m, undo)
		if *pos != before {
			t.Fatalf("unapply %v did not restore position:%s\nwant:%s", m, pos, &before)
		}
	}
}

func TestApplyUnapplyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", StartFEN, 3},
		{"castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 2},
		{"promotions", "n3k3/PP6/8/8/8/8/6pp/4K2N b - - 3 20", 2},
		{"middlegame", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			checkRoundTrip(t, pos, tc.depth)
			if got := pos.ToFEN(); got != tc.fen {
				t.Errorf("final FEN = %q, want %q", got, tc.fen)
			}
		})
	}
}

func TestApplyDoublePushSetsEnPassant(t *testing.T) {
	pos := NewPosition()

	pos.Apply(NewMove(E2, E4))
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := pos.ToFEN(); got != want {
		t.Fatalf("after e2e4 FEN = %q, want %q", got, want)
	}

	pos.Apply(NewMove(G8, F6))
	if pos.EnPassant() != NoSquare {
		t.Errorf("en passant = %v after a knight move, want none", pos.EnPassant())
	}
	if pos.HalfMoveClock() != 1 {
		t.Errorf("halfmove clock = %d, want 1", pos.HalfMoveClock())
	}
	if pos.FullMoveNumber() != 2 {
		t.Errorf("fullmove number = %d, want 2", pos.FullMoveNumber())
	}
	if pos.SideToMove() != White {
		t.Errorf("side to move = %v, want White", pos.SideToMove())
	}
}

func TestApplyCastling(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     Move
		wantFEN  string
		rookFrom Square
		rookTo   Square
	}{
		{
			"white kingside",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			NewMove(E1, G1),
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
			H1, F1,
		},
		{
			"white queenside",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			NewMove(E1, C1),
			"r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1",
			A1, D1,
		},
		{
			"black kingside",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			NewMove(E8, G8),
			"r4rk1/8/8/8/8/8/8/R3K2R w KQ - 1 2",
			H8, F8,
		},
		{
			"black queenside",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			NewMove(E8, C8),
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
			A8, D8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			before := *pos

			undo := pos.Apply(tc.move)
			if got := pos.ToFEN(); got != tc.wantFEN {
				t.Errorf("FEN = %q, want %q", got, tc.wantFEN)
			}
			if !pos.IsEmpty(tc.rookFrom) || pos.PieceAt(tc.rookTo).Type() != Rook {
				t.Errorf("rook not moved from %v to %v:%s", tc.rookFrom, tc.rookTo, pos)
			}
			if pos.Key() != pos.ComputeKey() {
				t.Errorf("key drifted after castling")
			}

			pos.Unapply(tc.move, undo)
			if *pos != before {
				t.Errorf("unapply did not restore:%s", pos)
			}
		})
	}
}

func TestApplyCornerMovesClearCastling(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     Move
		rights   string
		captured Piece
	}{
		{"rook leaves a1", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(A1, B1), "Kkq", NoPiece},
		{"rook leaves h8", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", NewMove(H8, H7), "KQq", NoPiece},
		{"rook captures on a8", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(A1, A8), "Kk", BlackRook},
		{"king step", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(E1, E2), "kq", NoPiece},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			undo := pos.Apply(tc.move)
			if got := pos.CastlingRights().String(); got != tc.rights {
				t.Errorf("castling = %q, want %q", got, tc.rights)
			}
			if undo.Captured != tc.captured {
				t.Errorf("captured = %v, want %v", undo.Captured, tc.captured)
			}
		})
	}
}

func TestApplyPromotion(t *testing.T) {
	pos := mustParse(t, "4k3/P7/8/8/8/8/8/4K3 w - - 5 30")
	m := NewPromotion(A7, A8, PromoteKnight)

	undo := pos.Apply(m)
	if pos.PieceAt(A8) != WhiteKnight {
		t.Errorf("a8 = %v, want white knight", pos.PieceAt(A8))
	}
	if !pos.IsEmpty(A7) {
		t.Errorf("a7 not vacated")
	}
	if pos.HalfMoveClock() != 0 {
		t.Errorf("halfmove clock = %d, want 0 after a pawn move", pos.HalfMoveClock())
	}

	pos.Unapply(m, undo)
	if pos.PieceAt(A7) != WhitePawn || !pos.IsEmpty(A8) {
		t.Errorf("promotion not undone:%s", pos)
	}
	if got := pos.ToFEN(); got != "4k3/P7/8/8/8/8/8/4K3 w - - 5 30" {
		t.Errorf("FEN after unapply = %q", got)
	}
}

func TestApplyRejectsEmptySource(t *testing.T) {
	pos := NewPosition()
	before := *pos

	undo := pos.Apply(NewMove(E4, E5))
	if undo.Valid {
		t.Fatalf("move from an empty square reported valid")
	}
	if *pos != before {
		t.Errorf("position changed after a rejected move")
	}

	pos.Unapply(NewMove(E4, E5), undo)
	if *pos != before {
		t.Errorf("position changed after unapplying a rejected move")
	}
}
