package board

import "testing"

// Perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// Depth 5 takes longer, enable for thorough testing:
		// {5, 4865609},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete tests the famous Kiwipete position with many edge cases.
// FEN: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		// {4, 4085603}, // Takes ~1s, enable for thorough testing
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 tests en passant edge cases.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		// {5, 674624}, // Enable for thorough testing
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin tests the specific en passant horizontal pin edge case.
// FEN: 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1
// Black pawn on e4 can capture en passant d3, but this would expose the black king
// on a4 to the white rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	// The en passant capture should be illegal
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.IsEnPassant() {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Verify perft
	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	// Depth 2: After e4e3 (14), after king moves (16 each x5) = 14 + 80 = 94
	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftShredderIdentity verifies that expressing the orthodox starting
// position's castling rights in Shredder notation (HAha, naming the actual
// rook files rather than the classic KQkq letters) produces byte-identical
// search trees to the KQkq form, since the rooks start on the board's
// corners either way.
func TestPerftShredderIdentity(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w HAha - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestFRCCastlingNonCornerRooks exercises castling when the rooks do not
// start on the classic corner files: White king on d1, rooks on b1 and g1,
// lone Black king on e8. The kingside rook destination (f1) differs from
// its file-6 king destination, while the kingside king destination (g1)
// coincides with the rook's own starting square, and the queenside king
// destination (c1) is adjacent to the queenside rook's landing square (d1,
// the king's own starting square) -- both exercise the remove-both-then-
// place-both ordering in makeCastle/unmakeCastle.
func TestFRCCastlingNonCornerRooks(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/1R1K2R1 w KQ - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	if got, want := moves.Len(), 26; got != want {
		t.Errorf("perft(1) = %d, want %d", got, want)
	}

	bSquare := NewSquare(1, 0) // b1
	gSquare := NewSquare(6, 0) // g1

	var kingside, queenside Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !m.IsCastling() {
			continue
		}
		switch m.To() {
		case gSquare:
			kingside = m
		case bSquare:
			queenside = m
		}
	}

	if kingside == NoMove {
		t.Fatal("kingside castle (KxR on g1) not found among legal moves")
	}
	if queenside == NoMove {
		t.Fatal("queenside castle (KxR on b1) not found among legal moves")
	}

	if got, want := kingside.String(), "d1g1"; got != want {
		t.Errorf("kingside castle internal notation = %s, want %s", got, want)
	}
	if got, want := kingside.UCI(false), "d1g1"; got != want {
		t.Errorf("kingside castle UCI(false) = %s, want %s", got, want)
	}
	if got, want := kingside.UCI(true), "d1g1"; got != want {
		t.Errorf("kingside castle UCI(true) = %s, want %s", got, want)
	}

	if got, want := queenside.String(), "d1b1"; got != want {
		t.Errorf("queenside castle internal notation = %s, want %s", got, want)
	}
	if got, want := queenside.UCI(false), "d1c1"; got != want {
		t.Errorf("queenside castle UCI(false) = %s, want %s", got, want)
	}
	if got, want := queenside.UCI(true), "d1b1"; got != want {
		t.Errorf("queenside castle UCI(true) = %s, want %s", got, want)
	}

	// Round-trip the position through make/unmake for both castles and
	// confirm the castling rights and Shredder-FEN string come back intact.
	for _, m := range []Move{kingside, queenside} {
		before := pos.ToFEN(true)
		undo := pos.MakeMove(m)
		if !undo.Valid {
			t.Fatalf("castle %s reported invalid", m)
		}
		pos.UnmakeMove(m, undo)
		after := pos.ToFEN(true)
		if before != after {
			t.Errorf("make/unmake round trip changed FEN: %s -> %s", before, after)
		}
	}

	if got, want := pos.CastlingRights.String(), "GB"; got != want {
		t.Errorf("Shredder castling string = %s, want %s", got, want)
	}
}
