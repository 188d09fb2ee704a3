package chess

// MoveOptions configures Game.Move and friends.
type MoveOptions struct {
	// Strict disables the permissive SAN fallback pass.
	Strict bool
}

// MovesFilter narrows the candidate list returned by LegalSANs and
// LegalMoveObjects. The zero value matches every legal move.
type MovesFilter struct {
	Square *Square
	Piece  PieceKind
}

// Move applies a SAN string to the game, pushing a HistoryEntry and
// returning the resulting public Move. See spec §4.3/§6.
func (g *Game) Move(san string, opts MoveOptions) (Move, error) {
	before := g.FEN(FENOptions{})
	m, err := moveFromSAN(g.Position, san, opts.Strict)
	if err != nil {
		return Move{}, err
	}
	return g.apply(m, before)
}

// MoveFromTo applies the unique legal move between from and to (with the
// given promotion, NoKind if none), the object-form move input from spec
// §6's move({from,to,promotion?}) overload.
func (g *Game) MoveFromTo(from, to Square, promotion PieceKind) (Move, error) {
	before := g.FEN(FENOptions{})
	for _, cand := range g.LegalMoves() {
		if cand.from != from || cand.to != to {
			continue
		}
		if cand.isPromotion() && cand.promotion != promotion {
			continue
		}
		if !cand.isPromotion() && promotion != NoKind {
			continue
		}
		return g.apply(cand, before)
	}
	return Move{}, &MoveError{Err: ErrInvalidMove, Text: from.String() + to.String(), FEN: before}
}

// NullMove applies the null move ("--" in SAN), failing with
// ErrIllegalNullMove when the side to move is in check.
func (g *Game) NullMove() (Move, error) {
	before := g.FEN(FENOptions{})
	if g.IsCheck() {
		return Move{}, &MoveError{Err: ErrIllegalNullMove, Text: "--", FEN: before}
	}
	m := internalMove{piece: Piece{Kind: NoKind, Color: g.Turn()}, flags: FlagNullMove}
	return g.apply(m, before)
}

// apply commits m to the position, computing SAN against the legal-move
// set as it stood before the move, and pushes the resulting HistoryEntry.
func (g *Game) apply(m internalMove, before string) (Move, error) {
	legal := g.LegalMoves()
	sanStr := moveToSAN(g.Position, m, legal)
	moveNumber := g.Position.MoveNumber()
	turn := g.Position.Turn()
	snap := g.Position.makeMove(m)
	after := g.FEN(FENOptions{})
	pub := newPublicMove(before, m, sanStr, after)
	g.history = append(g.history, historyEntry{
		internal: m, snap: snap, public: pub, moveNumber: moveNumber, turn: turn,
	})
	return pub, nil
}

// Undo reverses the most recent move, returning it and true; returns the
// zero Move and false when there is no history to undo.
func (g *Game) Undo() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.Position.unmakeMove(last.internal, last.snap)
	return last.public, true
}

// HistorySAN returns the SAN of every applied move, in order.
func (g *Game) HistorySAN() []string {
	out := make([]string, len(g.history))
	for i, e := range g.history {
		out[i] = e.public.SAN
	}
	return out
}

// HistoryVerbose returns the full public Move for every applied move, in
// order. Per spec §9's open question, Before/After are rendered in
// non-forced EP mode (the FEN captured at apply time), matching the FEN a
// caller would get from calling FEN() at that point in the game.
func (g *Game) HistoryVerbose() []Move {
	out := make([]Move, len(g.history))
	for i, e := range g.history {
		out[i] = e.public
	}
	return out
}

func (g *Game) candidateMoves(filter MovesFilter) []internalMove {
	legal := g.LegalMoves()
	if filter.Square == nil && filter.Piece == NoKind {
		return legal
	}
	out := make([]internalMove, 0, len(legal))
	for _, m := range legal {
		if filter.Square != nil && m.from != *filter.Square {
			continue
		}
		if filter.Piece != NoKind && m.piece.Kind != filter.Piece {
			continue
		}
		out = append(out, m)
	}
	return out
}

// LegalSANs returns the SAN of every legal move matching filter, without
// applying any of them.
func (g *Game) LegalSANs(filter MovesFilter) []string {
	legalAll := g.LegalMoves()
	cands := g.candidateMoves(filter)
	out := make([]string, len(cands))
	for i, m := range cands {
		out[i] = moveToSAN(g.Position, m, legalAll)
	}
	return out
}

// LegalMoveObjects returns the full public Move for every legal move
// matching filter, without applying any of them (each is made and
// unmade to compute its resulting FEN and check/mate suffix).
func (g *Game) LegalMoveObjects(filter MovesFilter) []Move {
	legalAll := g.LegalMoves()
	cands := g.candidateMoves(filter)
	before := g.FEN(FENOptions{})
	out := make([]Move, len(cands))
	for i, m := range cands {
		san := moveToSAN(g.Position, m, legalAll)
		snap := g.Position.makeMove(m)
		after := g.FEN(FENOptions{})
		out[i] = newPublicMove(before, m, san, after)
		g.Position.unmakeMove(m, snap)
	}
	return out
}
