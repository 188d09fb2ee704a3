package chess

import "testing"

func TestGameMoveAppendsHistory(t *testing.T) {
	g := NewGame()
	moves := []string{"e4", "e5", "Nf3", "Nc6"}
	for _, san := range moves {
		if _, err := g.Move(san, MoveOptions{}); err != nil {
			t.Fatalf("Move(%q) error: %v", san, err)
		}
	}
	got := g.HistorySAN()
	if len(got) != len(moves) {
		t.Fatalf("HistorySAN() has %d entries, want %d", len(got), len(moves))
	}
	for i, san := range moves {
		if got[i] != san {
			t.Errorf("HistorySAN()[%d] = %q, want %q", i, got[i], san)
		}
	}
}

func TestGameMoveRejectsIllegalSAN(t *testing.T) {
	g := NewGame()
	if _, err := g.Move("e5", MoveOptions{}); err == nil {
		t.Error("Move(e5) from start position succeeded, want error")
	}
}

func TestGameUndoRestoresPosition(t *testing.T) {
	g := NewGame()
	before := g.FEN(FENOptions{})
	if _, err := g.Move("e4", MoveOptions{}); err != nil {
		t.Fatalf("Move error: %v", err)
	}
	move, ok := g.Undo()
	if !ok {
		t.Fatal("Undo() returned ok=false")
	}
	if move.SAN != "e4" {
		t.Errorf("Undo() move SAN = %q, want e4", move.SAN)
	}
	if got := g.FEN(FENOptions{}); got != before {
		t.Errorf("after Undo, FEN = %q, want %q", got, before)
	}
}

func TestGameUndoOnEmptyHistory(t *testing.T) {
	g := NewGame()
	if _, ok := g.Undo(); ok {
		t.Error("Undo() on fresh game returned ok=true")
	}
}

func TestGameHeadersDefaults(t *testing.T) {
	g := NewGame()
	headers := g.GetHeaders()
	want := map[string]string{
		"Event": "?", "Site": "?", "Date": "????.??.??", "Round": "?",
		"White": "?", "Black": "?", "Result": "*",
	}
	got := map[string]string{}
	for _, h := range headers {
		got[h.Name] = h.Value
	}
	for name, val := range want {
		if got[name] != val {
			t.Errorf("header %s = %q, want %q", name, got[name], val)
		}
	}
}

func TestGameSetHeaderOverridesRoster(t *testing.T) {
	g := NewGame()
	g.SetHeader("White", "Carlsen")
	g.SetHeader("Site", "Oslo")
	headers := g.GetHeaders()
	found := map[string]string{}
	for _, h := range headers {
		found[h.Name] = h.Value
	}
	if found["White"] != "Carlsen" {
		t.Errorf("White = %q, want Carlsen", found["White"])
	}
	if found["Site"] != "Oslo" {
		t.Errorf("Site = %q, want Oslo", found["Site"])
	}
}

func TestGameLoadStampsSetUpAndFEN(t *testing.T) {
	g := NewGame()
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	if err := g.Load(fen, LoadOptions{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	headers := map[string]string{}
	for _, h := range g.GetHeaders() {
		headers[h.Name] = h.Value
	}
	if headers["SetUp"] != "1" {
		t.Errorf("SetUp header = %q, want 1", headers["SetUp"])
	}
	if headers["FEN"] != fen {
		t.Errorf("FEN header = %q, want %q", headers["FEN"], fen)
	}
}

func TestGameResetClearsSetUpAndFEN(t *testing.T) {
	g := NewGame()
	if err := g.Load("4k3/8/8/8/8/8/8/4K2R w K - 0 1", LoadOptions{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	g.Reset(true)
	for _, h := range g.GetHeaders() {
		if h.Name == "SetUp" || h.Name == "FEN" {
			t.Errorf("header %s still present after Reset", h.Name)
		}
	}
	if got := g.FEN(FENOptions{}); got != StartFEN {
		t.Errorf("FEN after Reset = %q, want %q", got, StartFEN)
	}
}

func TestGameCommentsAndSuffixes(t *testing.T) {
	g := NewGame()
	if _, err := g.Move("e4", MoveOptions{}); err != nil {
		t.Fatalf("Move error: %v", err)
	}
	fen := g.FEN(FENOptions{})
	g.SetComment(fen, "best by test")
	if got, ok := g.GetComment(fen); !ok || got != "best by test" {
		t.Errorf("GetComment() = (%q, %v), want (%q, true)", got, ok, "best by test")
	}
	if err := g.SetSuffixAnnotation(fen, "!"); err != nil {
		t.Fatalf("SetSuffixAnnotation error: %v", err)
	}
	if got, ok := g.GetSuffixAnnotation(fen); !ok || got != "!" {
		t.Errorf("GetSuffixAnnotation() = (%q, %v), want (%q, true)", got, ok, "!")
	}
	if err := g.SetSuffixAnnotation(fen, "not-a-nag"); err == nil {
		t.Error("SetSuffixAnnotation with invalid glyph succeeded, want error")
	}
}

func TestLegalSANsFromStart(t *testing.T) {
	g := NewGame()
	sans := g.LegalSANs(MovesFilter{})
	if len(sans) != 20 {
		t.Errorf("len(LegalSANs()) = %d, want 20", len(sans))
	}
}

func TestFoolsMateIsGameOver(t *testing.T) {
	g := NewGame()
	for _, san := range []string{"f3", "e5", "g4", "Qh4"} {
		if _, err := g.Move(san, MoveOptions{}); err != nil {
			t.Fatalf("Move(%q) error: %v", san, err)
		}
	}
	if !g.IsCheckmate() {
		t.Error("IsCheckmate() = false, want true after fool's mate")
	}
	if !g.IsGameOver() {
		t.Error("IsGameOver() = false, want true after fool's mate")
	}
}
