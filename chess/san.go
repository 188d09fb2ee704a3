package chess

import (
	"regexp"
	"strings"
)

// moveToSAN renders m in Standard Algebraic Notation, given the full set
// of legal moves in the position m was drawn from (needed to compute the
// minimal disambiguator) and the position before the move. See spec
// §4.3's moveToSan algorithm.
func moveToSAN(p *Position, m internalMove, legal []internalMove) string {
	if m.isNull() {
		return "--"
	}
	var sb strings.Builder
	if m.isKSideCastle() {
		sb.WriteString("O-O")
	} else if m.isQSideCastle() {
		sb.WriteString("O-O-O")
	} else {
		if m.piece.Kind != Pawn {
			sb.WriteByte(m.piece.Kind.Letter())
			sb.WriteString(disambiguator(m, legal))
		} else if m.isCapture() {
			sb.WriteByte(byte('a' + m.from.File()))
		}
		if m.isCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.to.String())
		if m.isPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.promotion.Letter())
		}
	}

	snap := p.makeMove(m)
	inCheck := p.kingSq[p.turn] != EmptySquare && isSquareAttacked(p, p.kingSq[p.turn], p.turn.Opposite())
	mate := inCheck && len(p.LegalMoves()) == 0
	p.unmakeMove(m, snap)

	if mate {
		sb.WriteByte('#')
	} else if inCheck {
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguator computes the minimal SAN disambiguation prefix: file if
// that alone distinguishes among same-kind moves to the same target,
// otherwise rank, otherwise the full source square.
func disambiguator(m internalMove, legal []internalMove) string {
	var sameFile, sameRank, ambiguous bool
	for _, other := range legal {
		if other.from == m.from || other.piece.Kind != m.piece.Kind || other.to != m.to {
			continue
		}
		ambiguous = true
		if other.from.File() == m.from.File() {
			sameFile = true
		}
		if other.from.Rank() == m.from.Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	if !sameFile {
		return string(byte('a' + m.from.File()))
	}
	if !sameRank {
		return string(byte('1' + m.from.Rank()))
	}
	return m.from.String()
}

// permissiveSAN matches forms like Pe2-e4, Rc1c4, Qf3xf7, f7f8q, b1c3.
var permissiveSAN = regexp.MustCompile(`^([PNBRQK])?([a-h][1-8]|[a-h]|[1-8])?x?-?([a-h][1-8])([qrbnQRBN])?$`)

// moveFromSAN resolves a SAN string against the legal moves of p. Strict
// mode disables the permissive fallback pass. See spec §4.3.
func moveFromSAN(p *Position, san string, strict bool) (internalMove, error) {
	if stripDecorators(san) == "--" {
		if p.IsCheck() {
			return internalMove{}, &MoveError{Err: ErrIllegalNullMove, Text: san, FEN: p.FEN(FENOptions{})}
		}
		return internalMove{piece: Piece{Kind: NoKind, Color: p.turn}, flags: FlagNullMove}, nil
	}

	legal := p.LegalMoves()

	// The strict pass itself normalizes numeric castling ("0-0"/"0-0-0")
	// to the real SAN glyphs ("O-O"/"O-O-O") before matching against
	// legal moves; only the second, regex-based fallback pass is gated
	// on strict==false.
	normalized := stripDecorators(san)
	if normalized == "0-0" {
		normalized = "O-O"
	} else if normalized == "0-0-0" {
		normalized = "O-O-O"
	}

	for _, m := range legal {
		if stripDecorators(moveToSAN(p, m, legal)) == normalized {
			return m, nil
		}
	}

	if strict {
		return internalMove{}, &MoveError{Err: ErrInvalidMove, Text: san, FEN: p.FEN(FENOptions{})}
	}

	if m, ok := permissiveResolve(p, normalized, legal); ok {
		return m, nil
	}

	return internalMove{}, &MoveError{Err: ErrInvalidMove, Text: san, FEN: p.FEN(FENOptions{})}
}

func stripDecorators(san string) string {
	san = strings.TrimRight(san, "?!")
	san = strings.TrimRight(san, "+#")
	return san
}

// permissiveResolve implements the second-pass permissive SAN matcher: it
// infers the piece kind from the leading letter (default pawn), extracts
// the target square, and accepts overly-disambiguated or under-punctuated
// forms. When several legal moves match, the first encountered is
// returned (documented non-determinism, spec §9 open question).
func permissiveResolve(p *Position, san string, legal []internalMove) (internalMove, bool) {
	if san == "O-O" {
		for _, m := range legal {
			if m.isKSideCastle() {
				return m, true
			}
		}
		return internalMove{}, false
	}
	if san == "O-O-O" {
		for _, m := range legal {
			if m.isQSideCastle() {
				return m, true
			}
		}
		return internalMove{}, false
	}

	match := permissiveSAN.FindStringSubmatch(san)
	if match == nil {
		return internalMove{}, false
	}
	pieceLetter, source, target, promoLetter := match[1], match[2], match[3], match[4]

	kind := Pawn
	if pieceLetter != "" {
		kind = KindFromLetter(pieceLetter[0])
	} else if len(source) == 2 {
		// A full source square with no piece letter (e.g. "b1c3") names
		// whatever piece actually stands there; only default to Pawn
		// when the source is absent or itself ambiguous (bare file/rank).
		if sq, ok := ParseSquare(source); ok {
			if piece := p.Get(sq); piece != NoPiece {
				kind = piece.Kind
			}
		}
	}
	toSq, ok := ParseSquare(target)
	if !ok {
		return internalMove{}, false
	}
	var promo PieceKind
	if promoLetter != "" {
		promo = KindFromLetter(strings.ToUpper(promoLetter)[0])
	}

	for _, m := range legal {
		if m.piece.Kind != kind || m.to != toSq {
			continue
		}
		if promo != NoKind && m.promotion != promo {
			continue
		}
		if promo == NoKind && m.isPromotion() {
			continue
		}
		if source != "" {
			if !sourceMatches(source, m.from) {
				continue
			}
		}
		return m, true
	}
	return internalMove{}, false
}

func sourceMatches(source string, from Square) bool {
	switch len(source) {
	case 2:
		sq, ok := ParseSquare(source)
		return ok && sq == from
	case 1:
		c := source[0]
		if c >= 'a' && c <= 'h' {
			return int(c-'a') == from.File()
		}
		if c >= '1' && c <= '8' {
			return int(c-'1') == from.Rank()
		}
	}
	return false
}

// LAN renders m in long algebraic notation, e.g. "e2e4", "g1f3".
func lan(m internalMove) string {
	s := m.from.String() + m.to.String()
	if m.isPromotion() {
		s += strings.ToLower(string(m.promotion.Letter()))
	}
	return s
}
