package chess

import "testing"

func TestNewPositionStartFEN(t *testing.T) {
	p := NewPosition()
	if got := p.FEN(FENOptions{}); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}
}

func TestPositionLoadRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/8/4K2k w - - 0 1",
	}
	for _, fen := range fens {
		p := NewPosition()
		if err := p.Load(fen, LoadOptions{}); err != nil {
			t.Fatalf("Load(%q) error: %v", fen, err)
		}
		if got := p.FEN(FENOptions{ForceEnpassantSquare: true}); got != fen {
			t.Errorf("round trip: Load(%q).FEN() = %q", fen, got)
		}
	}
}

func TestPositionLoadRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 1", // 7 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR z KQkq - 0 1", // bad turn
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
	}
	for _, fen := range bad {
		p := NewPosition()
		if err := p.Load(fen, LoadOptions{}); err == nil {
			t.Errorf("Load(%q) succeeded, want error", fen)
		}
	}
}

func TestStartPositionMoveCount(t *testing.T) {
	p := NewPosition()
	if got := len(p.LegalMoves()); got != 20 {
		t.Errorf("len(LegalMoves()) = %d, want 20", got)
	}
}

func TestPerftStartPosition(t *testing.T) {
	// Well-known perft node counts for the standard starting position.
	cases := []struct {
		depth int
		want  int
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tc := range cases {
		p := NewPosition()
		if got := p.Perft(tc.depth); got != tc.want {
			t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestIsCheckAndCheckmate(t *testing.T) {
	p := NewPosition()
	// Fool's mate final position: white to move, checkmated.
	if err := p.Load("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", LoadOptions{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !p.IsCheck() {
		t.Error("IsCheck() = false, want true")
	}
	if !p.IsCheckmate() {
		t.Error("IsCheckmate() = false, want true")
	}
	if !p.IsGameOver() {
		t.Error("IsGameOver() = false, want true")
	}
}

func TestIsStalemate(t *testing.T) {
	p := NewPosition()
	if err := p.Load("k7/8/1Q6/8/8/8/8/7K b - - 0 1", LoadOptions{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !p.IsStalemate() {
		t.Error("IsStalemate() = false, want true")
	}
	if p.IsCheckmate() {
		t.Error("IsCheckmate() = true, want false")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want bool
	}{
		{"K vs K", "8/8/8/8/8/8/8/4K2k w - - 0 1", true},
		{"K+N vs K", "8/8/8/8/8/8/8/4KNk1 w - - 0 1", true},
		{"K+R vs K", "8/8/8/8/8/8/8/R3K2k w - - 0 1", false},
		{"K+B vs K+B same color", "8/8/8/8/8/2B5/8/b3K1k1 w - - 0 1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPosition()
			if err := p.Load(tc.fen, LoadOptions{}); err != nil {
				t.Fatalf("Load(%q) error: %v", tc.fen, err)
			}
			if got := p.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	p := NewPosition()
	before := p.Hash()
	moves := p.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("no legal moves from start position")
	}
	for _, m := range moves {
		snap := p.makeMove(m)
		p.unmakeMove(m, snap)
		if got := p.Hash(); got != before {
			t.Fatalf("hash not restored after make/unmake of %+v: got %d, want %d", m, got, before)
		}
	}
}

func TestClonesAreIndependent(t *testing.T) {
	p := NewPosition()
	cp := p.clone()
	moves := p.LegalMoves()
	p.makeMove(moves[0])
	if p.Hash() == cp.Hash() {
		t.Error("mutating original mutated the clone too")
	}
}

func TestNewLoadOptionsWithSkipValidation(t *testing.T) {
	p := NewPosition()
	// A FEN with no kings at all fails structural validation unless
	// SkipValidation is set.
	bare := "8/8/8/8/8/8/8/8 w - - 0 1"
	if err := p.Load(bare, LoadOptions{}); err == nil {
		t.Fatal("Load() with no kings succeeded, want validation error")
	}
	if err := p.Load(bare, NewLoadOptions(WithSkipValidation())); err != nil {
		t.Fatalf("Load() with WithSkipValidation() error: %v", err)
	}
}
