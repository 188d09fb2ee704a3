package chess

// Game wraps a Position with PGN-level state: history, headers, comments,
// and NAG suffix annotations. Grounded on the teacher's internal/chess.Game
// (Tags/Moves/Comments fields), generalized from the teacher's linked-list
// move representation to the make/unmake history spec §3 requires and to
// FEN-keyed comments/suffixes rather than move-indexed ones.
//
// Game embeds *Position so board queries, state predicates (IsCheck,
// IsCheckmate, ...), and FEN load/emit are promoted directly; Game itself
// only adds the PGN-specific layer on top.
type Game struct {
	*Position

	history []historyEntry

	headers     map[string]*string
	headerOrder []string // insertion order of headers outside the fixed roster/supplemental lists

	comments map[string]string // FEN -> comment text
	suffixes map[string]string // FEN -> NAG glyph
}

type historyEntry struct {
	internal   internalMove
	snap       positionSnapshot
	public     Move
	moveNumber int   // full-move number in effect before this move was made
	turn       Color // side that made this move
}

// sevenTagRoster is the fixed, always-present, always-first header block.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

var sevenTagDefaults = map[string]string{
	"Event": "?", "Site": "?", "Date": "????.??.??", "Round": "?",
	"White": "?", "Black": "?", "Result": "*",
}

// supplementalOrder is the canonical order for well-known optional tags;
// anything else falls back to insertion order after these.
var supplementalOrder = []string{
	"WhiteElo", "BlackElo", "ECO", "Opening", "Variation", "SubVariation",
	"TimeControl", "Termination", "SetUp", "FEN", "Annotator", "Mode", "PlyCount",
}

var validSuffixAnnotations = map[string]bool{
	"!": true, "?": true, "!!": true, "!?": true, "?!": true, "??": true,
}

// NewGame returns a Game at the standard starting position with default
// Seven Tag Roster headers.
func NewGame() *Game {
	g := &Game{Position: NewPosition()}
	g.resetHeaders()
	g.comments = map[string]string{}
	g.suffixes = map[string]string{}
	return g
}

func (g *Game) resetHeaders() {
	headers := make(map[string]*string, len(sevenTagDefaults))
	for k, v := range sevenTagDefaults {
		val := v
		headers[k] = &val
	}
	g.headers = headers
	g.headerOrder = nil
}

// Load parses fen and resets the Game to it: history, comments, and NAG
// suffixes are cleared. Per spec §9's open-question resolution, load
// unconditionally sets the SetUp/FEN header pair (a load from FEN always
// records where the game started), regardless of PreserveHeaders; other
// headers are reset to defaults unless opts.PreserveHeaders is set. This
// shadows the promoted Position.Load.
func (g *Game) Load(fen string, opts LoadOptions) error {
	if err := g.Position.Load(fen, opts); err != nil {
		return err
	}
	g.history = nil
	g.comments = map[string]string{}
	g.suffixes = map[string]string{}
	if !opts.PreserveHeaders {
		g.resetHeaders()
	}
	g.SetHeader("SetUp", "1")
	g.SetHeader("FEN", fen)
	return nil
}

// Reset returns the Game to the standard starting position. Per spec §9,
// reset always clears any SetUp/FEN header pair, independent of
// preserveHeaders, since after reset the game once again starts from the
// standard array. This shadows the promoted Position.Reset.
func (g *Game) Reset(preserveHeaders bool) {
	g.Position.Reset()
	g.history = nil
	g.comments = map[string]string{}
	g.suffixes = map[string]string{}
	if !preserveHeaders {
		g.resetHeaders()
		return
	}
	g.RemoveHeader("SetUp")
	g.RemoveHeader("FEN")
}

// Clear empties the board (no pieces, White to move, no castling rights).
// This shadows the promoted Position.Clear.
func (g *Game) Clear(preserveHeaders bool) {
	g.Position.Clear()
	g.history = nil
	g.comments = map[string]string{}
	g.suffixes = map[string]string{}
	if !preserveHeaders {
		g.resetHeaders()
	}
}

// --- Headers ---

// SetHeader stores a string value for name. Seven Tag Roster values can
// never be nulled through this API; the zero value simply overwrites the
// default.
func (g *Game) SetHeader(name, value string) {
	if _, isSeven := sevenTagDefaults[name]; isSeven {
		v := value
		g.headers[name] = &v
		return
	}
	if _, exists := g.headers[name]; !exists {
		g.headerOrder = append(g.headerOrder, name)
	}
	v := value
	g.headers[name] = &v
}

// RemoveHeader restores the Seven Tag Roster default for a roster key, or
// deletes a supplemental key outright. Returns whether the key was
// previously present.
func (g *Game) RemoveHeader(name string) bool {
	if def, isSeven := sevenTagDefaults[name]; isSeven {
		_, existed := g.headers[name]
		d := def
		g.headers[name] = &d
		return existed
	}
	if _, existed := g.headers[name]; existed {
		delete(g.headers, name)
		for i, n := range g.headerOrder {
			if n == name {
				g.headerOrder = append(g.headerOrder[:i], g.headerOrder[i+1:]...)
				break
			}
		}
		return true
	}
	return false
}

// GetHeaders returns the non-null headers in canonical emission order:
// Seven Tag Roster, then well-known supplemental tags, then any others in
// insertion order.
func (g *Game) GetHeaders() []HeaderPair {
	var out []HeaderPair
	seen := map[string]bool{}
	emit := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if v, ok := g.headers[name]; ok && v != nil {
			out = append(out, HeaderPair{Name: name, Value: *v})
		}
	}
	for _, name := range sevenTagRoster {
		emit(name)
	}
	for _, name := range supplementalOrder {
		emit(name)
	}
	for _, name := range g.headerOrder {
		emit(name)
	}
	return out
}

func (g *Game) header(name string) (string, bool) {
	v, ok := g.headers[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// --- Comments ---

func (g *Game) GetComment(fen string) (string, bool) {
	v, ok := g.comments[fen]
	return v, ok
}

func (g *Game) SetComment(fen, text string) {
	g.comments[fen] = text
}

func (g *Game) RemoveComment(fen string) bool {
	_, ok := g.comments[fen]
	delete(g.comments, fen)
	return ok
}

func (g *Game) GetComments() map[string]string {
	out := make(map[string]string, len(g.comments))
	for k, v := range g.comments {
		out[k] = v
	}
	return out
}

func (g *Game) RemoveComments() {
	g.comments = map[string]string{}
}

// PruneComments walks the current history from the start, keeping only
// comments and suffixes whose keyed FEN is reachable from the game as
// currently played; orphaned entries (left behind by Undo on a
// branching history) are dropped. See spec §4.4.
func (g *Game) PruneComments() {
	replay := g.snapshotStartPosition()
	reachable := map[string]bool{replay.FEN(FENOptions{}): true}
	for _, e := range g.history {
		replay.makeMove(e.internal)
		reachable[replay.FEN(FENOptions{})] = true
	}
	for fen := range g.comments {
		if !reachable[fen] {
			delete(g.comments, fen)
		}
	}
	for fen := range g.suffixes {
		if !reachable[fen] {
			delete(g.suffixes, fen)
		}
	}
}

// snapshotStartPosition reconstructs the position the game began from, by
// unwinding a clone of the current Position through the full history.
func (g *Game) snapshotStartPosition() *Position {
	replay := g.Position.clone()
	for i := len(g.history) - 1; i >= 0; i-- {
		e := g.history[i]
		replay.unmakeMove(e.internal, e.snap)
	}
	return replay
}

// --- Suffix annotations (NAGs) ---

func (g *Game) GetSuffixAnnotation(fen string) (string, bool) {
	v, ok := g.suffixes[fen]
	return v, ok
}

func (g *Game) SetSuffixAnnotation(fen, nag string) error {
	if !validSuffixAnnotations[nag] {
		return &MoveError{Err: ErrInvalidSuffix, Text: nag, FEN: fen}
	}
	g.suffixes[fen] = nag
	return nil
}

func (g *Game) RemoveSuffixAnnotation(fen string) bool {
	_, ok := g.suffixes[fen]
	delete(g.suffixes, fen)
	return ok
}

// --- ECO ---

// ECO classifies the game's opening against the embedded ECO table,
// returning ("", false) when the game strays from every known line before
// any match is recorded.
func (g *Game) ECO() (string, bool) {
	return classifyGame(g)
}
