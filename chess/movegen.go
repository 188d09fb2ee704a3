package chess

// internalMove is the engine's compact move representation, matching spec
// §3's InternalMove: {from, to, piece, captured?, promotion?, flags}.
// Grounded on the teacher's internal/chess.Move, stripped of the PGN/tree
// fields (comments, NAGs, variations) that belong to Game/pgn instead.
type internalMove struct {
	from, to  Square
	piece     Piece
	captured  Piece // NoPiece if not a capture
	promotion PieceKind
	flags     MoveFlag
}

func (m internalMove) isCapture() bool  { return m.flags&(FlagCapture|FlagEPCapture) != 0 }
func (m internalMove) isPromotion() bool { return m.flags&FlagPromotion != 0 }
func (m internalMove) isEnPassant() bool { return m.flags&FlagEPCapture != 0 }
func (m internalMove) isKSideCastle() bool { return m.flags&FlagKSideCastle != 0 }
func (m internalMove) isQSideCastle() bool { return m.flags&FlagQSideCastle != 0 }
func (m internalMove) isBigPawn() bool   { return m.flags&FlagBigPawn != 0 }
func (m internalMove) isNull() bool      { return m.flags&FlagNullMove != 0 }

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// generatePseudoLegal walks every occupied square of the side to move and
// emits pseudo-legal moves (no check-safety filtering). See spec §4.3.
func generatePseudoLegal(p *Position) []internalMove {
	var moves []internalMove
	color := p.turn
	for sq := 0; sq < 128; sq++ {
		from := Square(sq)
		if from.OffBoard() {
			continue
		}
		piece := p.board.get(from)
		if piece == NoPiece || piece.Color != color {
			continue
		}
		switch piece.Kind {
		case Pawn:
			generatePawnMoves(p, from, color, &moves)
		default:
			generatePieceMoves(p, from, piece, &moves)
		}
	}
	generateCastlingMoves(p, color, &moves)
	return moves
}

func generatePawnMoves(p *Position, from Square, color Color, moves *[]internalMove) {
	off := pawnOffsetsByColor[color]
	piece := Piece{Kind: Pawn, Color: color}
	lastRank := 7
	startRank := 1
	if color == Black {
		lastRank = 0
		startRank = 6
	}

	push := from + Square(off.push)
	if !push.OffBoard() && p.board.get(push) == NoPiece {
		emitPawnMove(from, push, piece, NoPiece, 0, lastRank, moves)
		if from.Rank() == startRank {
			dbl := from + Square(off.doublePush)
			if p.board.get(dbl) == NoPiece {
				*moves = append(*moves, internalMove{from: from, to: dbl, piece: piece, flags: FlagBigPawn})
			}
		}
	}

	for _, capOff := range [2]int{off.capA, off.capB} {
		to := from + Square(capOff)
		if to.OffBoard() {
			continue
		}
		target := p.board.get(to)
		if target != NoPiece && target.Color != color {
			emitPawnMove(from, to, piece, target, FlagCapture, lastRank, moves)
		} else if to == p.epSquare {
			*moves = append(*moves, internalMove{
				from: from, to: to, piece: piece,
				captured: Piece{Kind: Pawn, Color: color.Opposite()},
				flags:    FlagEPCapture,
			})
		}
	}
}

func emitPawnMove(from, to Square, piece, captured Piece, extraFlags MoveFlag, lastRank int, moves *[]internalMove) {
	flags := FlagNormal | extraFlags
	if captured != NoPiece {
		flags |= FlagCapture
	}
	if to.Rank() == lastRank {
		for _, promo := range promotionKinds {
			*moves = append(*moves, internalMove{
				from: from, to: to, piece: piece, captured: captured,
				promotion: promo, flags: flags | FlagPromotion,
			})
		}
		return
	}
	*moves = append(*moves, internalMove{from: from, to: to, piece: piece, captured: captured, flags: flags})
}

func generatePieceMoves(p *Position, from Square, piece Piece, moves *[]internalMove) {
	dirs, sliding := pieceStepDirs(piece.Kind)
	for _, dir := range dirs {
		to := from + Square(dir)
		for !to.OffBoard() {
			target := p.board.get(to)
			if target == NoPiece {
				*moves = append(*moves, internalMove{from: from, to: to, piece: piece, flags: FlagNormal})
			} else {
				if target.Color != piece.Color {
					*moves = append(*moves, internalMove{from: from, to: to, piece: piece, captured: target, flags: FlagCapture})
				}
				break
			}
			if !sliding {
				break
			}
			to += Square(dir)
		}
	}
}

// castling home squares for standard (non-Chess960) chess.
const (
	whiteKingHome  = Square(4)
	whiteRookKSide = Square(7)
	whiteRookQSide = Square(0)
	blackKingHome  = Square(116) // rank 7, file 4
	blackRookKSide = Square(119)
	blackRookQSide = Square(112)
)

func generateCastlingMoves(p *Position, color Color, moves *[]internalMove) {
	kingHome, kSideTransit, kSideLand := whiteKingHome, Square(5), Square(6)
	qSideTransit, qSideMid, qSideLand := Square(3), Square(1), Square(2)
	if color == Black {
		kingHome, kSideTransit, kSideLand = blackKingHome, Square(117), Square(118)
		qSideTransit, qSideMid, qSideLand = Square(115), Square(113), Square(114)
	}
	if p.kingSq[color] != kingHome {
		return
	}
	opp := color.Opposite()
	if isSquareAttacked(p, kingHome, opp) {
		return
	}
	if p.castling[color]&CastleKingside != 0 {
		if p.board.get(kSideTransit) == NoPiece && p.board.get(kSideLand) == NoPiece {
			if !isSquareAttacked(p, kSideTransit, opp) && !isSquareAttacked(p, kSideLand, opp) {
				*moves = append(*moves, internalMove{
					from: kingHome, to: kSideLand, piece: Piece{Kind: King, Color: color},
					flags: FlagKSideCastle,
				})
			}
		}
	}
	if p.castling[color]&CastleQueenside != 0 {
		if p.board.get(qSideTransit) == NoPiece && p.board.get(qSideMid) == NoPiece && p.board.get(qSideLand) == NoPiece {
			if !isSquareAttacked(p, qSideTransit, opp) && !isSquareAttacked(p, qSideLand, opp) {
				*moves = append(*moves, internalMove{
					from: kingHome, to: qSideLand, piece: Piece{Kind: King, Color: color},
					flags: FlagQSideCastle,
				})
			}
		}
	}
}

// isSquareAttacked reports whether any piece of byColor attacks sq.
func isSquareAttacked(p *Position, sq Square, byColor Color) bool {
	for s := 0; s < 128; s++ {
		from := Square(s)
		if from.OffBoard() {
			continue
		}
		piece := p.board.get(from)
		if piece == NoPiece || piece.Color != byColor {
			continue
		}
		if attacksSquare(p.board, from, sq, piece) {
			return true
		}
	}
	return false
}

// Attackers returns every square holding a piece of the given color that
// attacks sq. If color is unspecified, callers should call it twice.
func (p *Position) Attackers(sq Square, byColor Color) []Square {
	var out []Square
	for s := 0; s < 128; s++ {
		from := Square(s)
		if from.OffBoard() {
			continue
		}
		piece := p.board.get(from)
		if piece == NoPiece || piece.Color != byColor {
			continue
		}
		if attacksSquare(p.board, from, sq, piece) {
			out = append(out, from)
		}
	}
	return out
}

// IsAttacked reports whether sq is attacked by any piece of the given
// color.
func (p *Position) IsAttacked(sq Square, byColor Color) bool {
	return isSquareAttacked(p, sq, byColor)
}

// IsCheck reports whether the side to move is currently in check.
func (p *Position) IsCheck() bool {
	king := p.kingSq[p.turn]
	if king == EmptySquare {
		return false
	}
	return isSquareAttacked(p, king, p.turn.Opposite())
}

// LegalMoves returns every legal move for the side to move. When the side
// to move has no king recorded (partial positions used in tests), legality
// filtering is skipped per spec §4.3.
func (p *Position) LegalMoves() []internalMove {
	pseudo := generatePseudoLegal(p)
	if p.kingSq[p.turn] == EmptySquare {
		return pseudo
	}
	legal := make([]internalMove, 0, len(pseudo))
	for _, m := range pseudo {
		snap := p.makeMove(m)
		king := p.kingSq[m.piece.Color]
		inCheck := king != EmptySquare && isSquareAttacked(p, king, m.piece.Color.Opposite())
		p.unmakeMove(m, snap)
		if !inCheck {
			legal = append(legal, m)
		}
	}
	return legal
}
