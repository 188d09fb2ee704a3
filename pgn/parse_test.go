package pgn

import "testing"

func TestParseGameSliceCleanGame(t *testing.T) {
	slice := `[Event "Test"]
[Site "?"]
[Date "????.??.??"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "*"]

1. e4 e5 *`

	g, primaryErr, fallbackErr := ParseGameSlice(slice, map[string]string{"Event": "Test"}, true)
	if primaryErr != nil {
		t.Fatalf("primaryErr = %v", primaryErr)
	}
	if fallbackErr != nil {
		t.Fatalf("fallbackErr = %v, want nil (no fallback needed)", fallbackErr)
	}
	if g == nil {
		t.Fatal("ParseGameSlice returned nil game for a clean slice")
	}
}

func TestBuildFallbackTextExtractsMovetext(t *testing.T) {
	slice := "[Event \"broken \\\"header\"]\n[White \"A\"]\n\n1. e4 e5 *"
	out, ok := buildFallbackText(slice)
	if !ok {
		t.Fatal("buildFallbackText() ok = false")
	}
	if got := "[Event \"_\"]\n\n1. e4 e5 *"; out != got {
		t.Errorf("buildFallbackText() = %q, want %q", out, got)
	}
}

func TestBuildFallbackTextNoBlankLine(t *testing.T) {
	if _, ok := buildFallbackText("no blank line here at all"); ok {
		t.Error("buildFallbackText() ok = true for input with no header/movetext boundary")
	}
}

func TestParseGameSliceRecoversViaFallback(t *testing.T) {
	// The unescaped inner quote in the Event value breaks the header
	// grammar on the primary strict parse; buildFallbackText should strip
	// the header block down to a synthetic "[Event \"_\"]" line and
	// re-parse just the movetext, and the caller's headers map (not the
	// synthetic placeholder) should end up on the resulting game.
	slice := "[Event \"broken \"header\"]\n[White \"A\"]\n\n1. e4 e5 *"
	headers := map[string]string{"Event": "broken header", "White": "A"}

	g, primaryErr, fallbackErr := ParseGameSlice(slice, headers, true)
	if primaryErr == nil {
		t.Fatal("primaryErr = nil, want the strict grammar to reject the malformed header")
	}
	if fallbackErr != nil {
		t.Fatalf("fallbackErr = %v, want nil (fallback should succeed)", fallbackErr)
	}
	if g == nil {
		t.Fatal("ParseGameSlice returned nil game after a successful fallback")
	}

	want := []string{"e4", "e5"}
	got := g.HistorySAN()
	if len(got) != len(want) {
		t.Fatalf("HistorySAN() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
	}

	gotHeaders := map[string]string{}
	for _, h := range g.GetHeaders() {
		gotHeaders[h.Name] = h.Value
	}
	if gotHeaders["Event"] != "broken header" {
		t.Errorf("Event header = %q, want %q (caller-supplied, not the fallback placeholder)", gotHeaders["Event"], "broken header")
	}
	if gotHeaders["White"] != "A" {
		t.Errorf("White header = %q, want %q", gotHeaders["White"], "A")
	}
}
