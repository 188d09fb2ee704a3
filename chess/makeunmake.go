package chess

// makeMove and unmakeMove implement spec §4.3's make/unmake invariants:
// board edits, castling-rights maintenance, EP square creation/clearing,
// incremental Zobrist maintenance, halfmove/move-number bookkeeping, and
// position-count tracking. Grounded on the teacher's internal/engine/
// apply.go (ApplyMove) and castling.go, adapted from board-copy-per-branch
// to true incremental make/unmake as spec §9 requires.

func (p *Position) toggleEP() {
	if p.epSquare != EmptySquare {
		p.hash ^= epKeys[p.epSquare.File()]
	}
}

func (p *Position) toggleCastling() {
	p.hash ^= castlingKeys[combinedCastling(p.castling[White], p.castling[Black])]
}

func castleRookSquares(color Color, kingside bool) (from, to Square) {
	if color == White {
		if kingside {
			return whiteRookKSide, Square(5)
		}
		return whiteRookQSide, Square(3)
	}
	if kingside {
		return blackRookKSide, Square(117)
	}
	return blackRookQSide, Square(115)
}

// makeMove applies m to p, mutating it in place, and returns the scalar
// snapshot needed to reverse it with unmakeMove. The caller (Game) is
// responsible for pushing {m, snapshot} onto its history.
func (p *Position) makeMove(m internalMove) positionSnapshot {
	snap := p.snapshot()
	color := m.piece.Color

	if m.isNull() {
		p.toggleEP()
		p.fenEpSquare = EmptySquare
		p.epSquare = EmptySquare
		p.toggleEP()
		p.halfMoves++
		if color == Black {
			p.moveNumber++
		}
		p.turn = color.Opposite()
		p.hash ^= sideKey
		if p.positionCount != nil {
			p.positionCount[p.hash]++
		}
		return snap
	}

	// Toggle off the EP/castling contributions keyed by the pre-move
	// state; they are toggled back on (with whatever new value applies)
	// once all mutations below have settled.
	p.toggleEP()
	p.toggleCastling()

	p.hash ^= pieceKey(m.piece, m.from)
	p.board.remove(m.from)

	if m.captured != NoPiece {
		capSq := m.to
		if m.isEnPassant() {
			capSq = NewSquare(m.to.File(), m.from.Rank())
		}
		p.hash ^= pieceKey(m.captured, capSq)
		p.board.remove(capSq)
	}

	placed := m.piece
	if m.isPromotion() {
		placed = Piece{Kind: m.promotion, Color: color}
	}
	p.board.put(placed, m.to)
	p.hash ^= pieceKey(placed, m.to)

	if placed.Kind == King {
		p.kingSq[color] = m.to
	}

	if m.isKSideCastle() || m.isQSideCastle() {
		rookFrom, rookTo := castleRookSquares(color, m.isKSideCastle())
		rook := Piece{Kind: Rook, Color: color}
		p.hash ^= pieceKey(rook, rookFrom)
		p.board.remove(rookFrom)
		p.board.put(rook, rookTo)
		p.hash ^= pieceKey(rook, rookTo)
	}

	p.updateCastlingRights()

	p.fenEpSquare = EmptySquare
	if m.isBigPawn() {
		p.fenEpSquare = Square((int(m.from) + int(m.to)) / 2)
	}
	p.updateEnPassantSquare()

	if m.piece.Kind == Pawn || m.isCapture() {
		p.halfMoves = 0
	} else {
		p.halfMoves++
	}
	if color == Black {
		p.moveNumber++
	}

	p.turn = color.Opposite()

	// updateEnPassantSquare treats p.turn as the capturing side. This call,
	// made once the turn has passed to the opponent, recomputes epSquare
	// from scratch and so overrides what the call above left in place.
	p.updateEnPassantSquare()

	p.toggleEP()
	p.toggleCastling()
	p.hash ^= sideKey

	if p.positionCount != nil {
		p.positionCount[p.hash]++
	}

	return snap
}

// unmakeMove reverses m, restoring p to the state it had before makeMove
// was called with the same m. snap must be the value returned by that
// makeMove call.
func (p *Position) unmakeMove(m internalMove, snap positionSnapshot) {
	if p.positionCount != nil {
		if p.positionCount[p.hash] > 0 {
			p.positionCount[p.hash]--
			if p.positionCount[p.hash] == 0 {
				delete(p.positionCount, p.hash)
			}
		}
	}

	color := m.piece.Color

	if m.isNull() {
		p.toggleEP()
		p.hash ^= sideKey
		p.kingSq = snap.kings
		p.turn = snap.turn
		p.castling = snap.castling
		p.epSquare = snap.epSquare
		p.fenEpSquare = snap.fenEpSquare
		p.halfMoves = snap.halfMoves
		p.moveNumber = snap.moveNumber
		p.toggleEP()
		return
	}

	p.hash ^= sideKey
	p.toggleCastling()
	p.toggleEP()

	placed := m.piece
	if m.isPromotion() {
		placed = Piece{Kind: m.promotion, Color: color}
	}
	p.hash ^= pieceKey(placed, m.to)
	p.board.remove(m.to)

	if m.isKSideCastle() || m.isQSideCastle() {
		rookFrom, rookTo := castleRookSquares(color, m.isKSideCastle())
		rook := Piece{Kind: Rook, Color: color}
		p.hash ^= pieceKey(rook, rookTo)
		p.board.remove(rookTo)
		p.board.put(rook, rookFrom)
		p.hash ^= pieceKey(rook, rookFrom)
	}

	if m.captured != NoPiece {
		capSq := m.to
		if m.isEnPassant() {
			capSq = NewSquare(m.to.File(), m.from.Rank())
		}
		p.board.put(m.captured, capSq)
		p.hash ^= pieceKey(m.captured, capSq)
	}

	p.board.put(m.piece, m.from)
	p.hash ^= pieceKey(m.piece, m.from)

	p.kingSq = snap.kings
	p.turn = snap.turn
	p.castling = snap.castling
	p.epSquare = snap.epSquare
	p.fenEpSquare = snap.fenEpSquare
	p.halfMoves = snap.halfMoves
	p.moveNumber = snap.moveNumber

	p.toggleEP()
	p.toggleCastling()
}
