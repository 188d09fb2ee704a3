package chess

import (
	_ "embed"
	"strings"
	"sync"
)

// ECO classification (spec's SPEC_FULL domain-stack supplement). Grounded
// on the teacher's internal/eco.ECOClassifier: a table keyed by position
// hash after N half-moves, matched by replaying the game's own history.
// The teacher loads its table from an external PGN file at runtime; here
// the (small, illustrative) table is embedded via go:embed as a tab-
// separated data file and built once at first use by replaying each
// line's SAN sequence through a throwaway Position.

//go:embed eco_data.tsv
var ecoData string

type ecoEntry struct {
	code      string
	opening   string
	variation string
	hash      uint64
	halfMoves int
}

var (
	ecoTable     []ecoEntry
	ecoTableOnce sync.Once
)

// ecoLine is one row of eco_data.tsv: code, opening, variation (may be
// empty), and a space-separated SAN move sequence.
type ecoLine struct {
	code, opening, variation string
	moves                    []string
}

// parseECOData splits the embedded tab-separated table into ecoLine rows.
// This is deliberately a small, illustrative table, not a vendored copy
// of the multi-thousand-line ECO reference the teacher loads from disk.
func parseECOData(data string) []ecoLine {
	var lines []ecoLine
	for _, row := range strings.Split(data, "\n") {
		row = strings.TrimRight(row, "\r")
		if row == "" {
			continue
		}
		fields := strings.Split(row, "\t")
		if len(fields) != 4 {
			continue
		}
		lines = append(lines, ecoLine{
			code:      fields[0],
			opening:   fields[1],
			variation: fields[2],
			moves:     strings.Fields(fields[3]),
		})
	}
	return lines
}

// buildECOTable lazily replays the embedded table into ecoTable. Deferred
// to first use (rather than an init func) so it runs after the package's
// own piece/Zobrist table init has definitely completed, regardless of
// file compilation order.
func buildECOTable() {
	for _, line := range parseECOData(ecoData) {
		g := NewGame()
		ok := true
		for _, san := range line.moves {
			if _, err := g.Move(san, MoveOptions{}); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		ecoTable = append(ecoTable, ecoEntry{
			code:      line.code,
			opening:   line.opening,
			variation: line.variation,
			hash:      g.Hash(),
			halfMoves: len(line.moves),
		})
	}
}

// classifyGame replays g's own recorded history from its starting FEN and
// returns the deepest ECO entry whose hash matches along the way.
func classifyGame(g *Game) (string, bool) {
	ecoTableOnce.Do(buildECOTable)
	if len(ecoTable) == 0 || len(g.history) == 0 {
		return "", false
	}
	replay := g.snapshotStartPosition()
	var best string
	found := false
	for i, e := range g.history {
		replay.makeMove(e.internal)
		h := replay.Hash()
		for _, entry := range ecoTable {
			if entry.hash == h && entry.halfMoves == i+1 {
				best = entry.code
				found = true
			}
		}
	}
	return best, found
}
