package pgn

import (
	"strings"

	"github.com/lucidchess/corepgn/chess"
)

// ParseGameSlice implements the per-game parse flow shared by the Cursor's
// in-process path and the worker pool's independent slices (spec §4.8
// step 3-4, §4.9). It always attempts the full grammar first; on a
// header-quoting-shaped failure it retries with the defensive fallback
// parse, returning both errors (fallback error nil on success) so the
// caller can record them for observability.
func ParseGameSlice(slice string, headers map[string]string, strict bool) (*chess.Game, error, error) {
	g := chess.NewGame()
	primaryErr := g.LoadPgn(slice, chess.LoadPgnOptions{Strict: strict})
	if primaryErr == nil {
		return g, nil, nil
	}

	if !looksLikeHeaderQuotingFailure(primaryErr) {
		return nil, primaryErr, nil
	}

	fallbackText, ok := buildFallbackText(slice)
	if !ok {
		return nil, primaryErr, nil
	}

	g2 := chess.NewGame()
	fallbackErr := g2.LoadPgn(fallbackText, chess.LoadPgnOptions{Strict: strict})
	if fallbackErr != nil {
		return nil, primaryErr, fallbackErr
	}

	// The fallback game's headers come from the synthetic "[Event \"_\"]"
	// stand-in; the real headers are the ones the Indexer already
	// pre-scanned for this game.
	for name, value := range headers {
		g2.SetHeader(name, value)
	}
	return g2, primaryErr, nil
}

// looksLikeHeaderQuotingFailure classifies an error as the shape spec
// §4.8 step 4 describes: the grammar tripped over a literal "[" inside
// what should have been movetext, almost always because a header value's
// escaped quote confused the boundary between header and movetext.
func looksLikeHeaderQuotingFailure(err error) bool {
	return strings.Contains(err.Error(), "[") || strings.Contains(err.Error(), "'[' found")
}

// buildFallbackText finds the first blank-line boundary in slice, keeps
// only the movetext after it, and prepends a synthetic Event header so
// the grammar has a well-formed header block to parse.
func buildFallbackText(slice string) (string, bool) {
	idx := strings.Index(slice, "\n\n")
	if idx < 0 {
		return "", false
	}
	movetext := slice[idx+2:]
	return "[Event \"_\"]\n\n" + movetext, true
}
