package chess

// Game-termination predicates, grounded on the teacher's
// internal/engine/rules.go (HasInsufficientMaterial, same-color-bishop
// check via a walk-index parity test) and check_detection.go, adapted to
// the 0x88 board and Position type. See spec §4.3.

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && len(p.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move is not in check but has no
// legal moves.
func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && len(p.LegalMoves()) == 0
}

// IsInsufficientMaterial reports true for K vs K, K+minor vs K, and K+B vs
// K+B when both bishops sit on same-colored squares. The same-color test
// uses the parity of file+rank (the board-walk index), not a named square
// color, per spec §4.3.
func (p *Position) IsInsufficientMaterial() bool {
	var whitePieces, blackPieces []PieceKind
	var whiteBishopLight, blackBishopLight bool

	for sq := 0; sq < 128; sq++ {
		s := Square(sq)
		if s.OffBoard() {
			continue
		}
		piece := p.board.get(s)
		if piece == NoPiece || piece.Kind == King {
			continue
		}
		if piece.Kind == Pawn || piece.Kind == Rook || piece.Kind == Queen {
			return false
		}
		light := (s.File()+s.Rank())%2 == 1
		if piece.Color == White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == Bishop {
				whiteBishopLight = light
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == Bishop {
				blackBishopLight = light
			}
		}
	}

	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}
	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == Bishop || blackPieces[0] == Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == Bishop || whitePieces[0] == Knight
	}
	if len(whitePieces) == 1 && len(blackPieces) == 1 &&
		whitePieces[0] == Bishop && blackPieces[0] == Bishop {
		return whiteBishopLight == blackBishopLight
	}
	return false
}

// IsDraw reports whether the position is drawn by any rule: fifty-move,
// stalemate, insufficient material, or threefold repetition.
func (p *Position) IsDraw() bool {
	return p.IsDrawByFiftyMoves() || p.IsStalemate() || p.IsInsufficientMaterial() || p.IsThreefoldRepetition()
}

// IsGameOver reports checkmate or any draw condition.
func (p *Position) IsGameOver() bool {
	return p.IsCheckmate() || p.IsDraw()
}

// Perft counts the leaf nodes of the legal-move tree to the given depth,
// used to validate move-generation correctness (standard perft(1..4) from
// the starting position are 20, 400, 8902, 197281). Grounded on the
// make/unmake primitives C3 already requires; the teacher has no perft of
// its own.
func (p *Position) Perft(depth int) int {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		snap := p.makeMove(m)
		nodes += p.Perft(depth - 1)
		p.unmakeMove(m, snap)
	}
	return nodes
}
