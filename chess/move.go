package chess

// Move is the public, immutable move record returned from Game.Move and
// Game.History: spec §6's Move object shape, {color, from, to, piece,
// captured?, promotion?, san, lan, before, after, flags} plus predicates.
// Grounded on the teacher's internal/chess.Move, split from internalMove
// so the engine-internal representation can stay compact while the public
// one carries the FEN snapshots callers expect.
type Move struct {
	Color     Color
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece // NoPiece if not a capture
	Promotion PieceKind
	SAN       string
	LAN       string
	Before    string // FEN before the move
	After     string // FEN after the move
	Flags     MoveFlag
}

func (m Move) IsCapture() bool        { return m.Flags&(FlagCapture|FlagEPCapture) != 0 }
func (m Move) IsPromotion() bool      { return m.Flags&FlagPromotion != 0 }
func (m Move) IsEnPassant() bool      { return m.Flags&FlagEPCapture != 0 }
func (m Move) IsKingsideCastle() bool { return m.Flags&FlagKSideCastle != 0 }
func (m Move) IsQueensideCastle() bool { return m.Flags&FlagQSideCastle != 0 }
func (m Move) IsBigPawn() bool        { return m.Flags&FlagBigPawn != 0 }
func (m Move) IsNullMove() bool       { return m.Flags&FlagNullMove != 0 }

func newPublicMove(before string, m internalMove, san, after string) Move {
	return Move{
		Color:     m.piece.Color,
		From:      m.from,
		To:        m.to,
		Piece:     m.piece,
		Captured:  m.captured,
		Promotion: m.promotion,
		SAN:       san,
		LAN:       lan(m),
		Before:    before,
		After:     after,
		Flags:     m.flags,
	}
}
