package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position holds mutable board state: piece placement, turn, castling
// rights, en-passant target, clocks, and the incrementally maintained
// Zobrist hash. Grounded on the teacher's internal/chess.Board plus
// internal/engine's FEN load/emit logic (internal/engine/fen.go),
// generalized to the 0x88 layout and the epSquare/fenEpSquare split spec
// §3 requires.
type Position struct {
	board *board

	turn Color

	kingSq [2]Square

	castling [2]CastleRights

	// epSquare is set iff an enemy pawn actually sits adjacent to the
	// pushed pawn, i.e. an en-passant capture is pseudo-legal right now
	// (it may still be illegal if it exposes the capturer's king).
	epSquare Square

	// fenEpSquare is the square the FEN spec dictates be recorded after a
	// two-square pawn push, regardless of whether a capture is possible.
	fenEpSquare Square

	halfMoves  int
	moveNumber int

	hash uint64

	// positionCount maps hash -> occurrence count, for threefold
	// repetition detection.
	positionCount map[uint64]int
}

// LoadOptions configures Position.Load.
type LoadOptions struct {
	// SkipValidation bypasses the structural FEN checks in ValidateFEN.
	SkipValidation bool

	// PreserveHeaders is consulted only by Game.Load; Position.Load
	// ignores it. Kept on the shared options struct so both layers take
	// one options value, per spec §6's load(fen, {skipValidation?,
	// preserveHeaders?}).
	PreserveHeaders bool
}

// LoadOption configures a LoadOptions value. Grounded on the teacher's
// internal/worker.PoolOption pattern (WithWorkers, WithBufferSize),
// applied here to Position/Game loading so callers can compose flags
// without naming every field.
type LoadOption func(*LoadOptions)

// WithSkipValidation sets LoadOptions.SkipValidation.
func WithSkipValidation() LoadOption {
	return func(o *LoadOptions) { o.SkipValidation = true }
}

// WithPreserveHeaders sets LoadOptions.PreserveHeaders.
func WithPreserveHeaders() LoadOption {
	return func(o *LoadOptions) { o.PreserveHeaders = true }
}

// NewLoadOptions builds a LoadOptions from a list of LoadOption funcs.
func NewLoadOptions(opts ...LoadOption) LoadOptions {
	var o LoadOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// NewPosition returns a Position set to the standard starting array.
func NewPosition() *Position {
	p := &Position{}
	if err := p.Load(StartFEN, LoadOptions{}); err != nil {
		panic("chess: starting FEN failed to load: " + err.Error())
	}
	return p
}

// Load parses a FEN string (accepting 2-6 fields, autofilling trailing
// defaults: halfmove->0, movenumber->1, EP/castling->"-", turn->"w") and
// resets the Position to the resulting array. See spec §4.2.
func (p *Position) Load(fen string, opts LoadOptions) error {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return &FENError{Err: fmt.Errorf("expected 2-6 fields, got %d", len(fields)), FEN: fen}
	}
	// Autofill trailing defaults for 2..5 supplied fields.
	defaults := []string{"w", "-", "-", "0", "1"}
	for len(fields) < 6 {
		fields = append(fields, defaults[len(fields)-1])
	}
	full := strings.Join(fields, " ")

	if !opts.SkipValidation {
		if err := ValidateFEN(full); err != nil {
			return err
		}
	}

	placement, turnStr, castlingStr, epStr, halfStr, fullStr := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	b := newBoard()
	kingSq := [2]Square{EmptySquare, EmptySquare}

	ranks := strings.Split(placement, "/")
	for ri, rankStr := range ranks {
		rank := 7 - ri
		file := 0
		for _, r := range rankStr {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			kind := KindFromLetter(byte(strings.ToUpper(string(r))[0]))
			color := White
			if r >= 'a' && r <= 'z' {
				color = Black
			}
			sq := NewSquare(file, rank)
			b.put(Piece{Kind: kind, Color: color}, sq)
			if kind == King {
				kingSq[color] = sq
			}
			file++
		}
	}

	turn := White
	if turnStr == "b" {
		turn = Black
	}

	var castling [2]CastleRights
	if castlingStr != "-" {
		for _, r := range castlingStr {
			switch r {
			case 'K':
				castling[White] |= CastleKingside
			case 'Q':
				castling[White] |= CastleQueenside
			case 'k':
				castling[Black] |= CastleKingside
			case 'q':
				castling[Black] |= CastleQueenside
			}
		}
	}

	fenEP := EmptySquare
	if epStr != "-" {
		if sq, ok := ParseSquare(epStr); ok {
			fenEP = sq
		}
	}

	halfMoves, _ := strconv.Atoi(halfStr)
	moveNumber, _ := strconv.Atoi(fullStr)
	if moveNumber < 1 {
		moveNumber = 1
	}

	p.board = b
	p.turn = turn
	p.kingSq = kingSq
	p.castling = castling
	p.fenEpSquare = fenEP
	p.halfMoves = halfMoves
	p.moveNumber = moveNumber
	p.positionCount = make(map[uint64]int)

	p.updateCastlingRights()
	p.updateEnPassantSquare()
	p.hash = p.computeHash()
	p.positionCount[p.hash]++

	return nil
}

// Reset sets the Position to the standard starting array.
func (p *Position) Reset() {
	_ = p.Load(StartFEN, LoadOptions{})
}

// Clear empties the board: no pieces, White to move, no castling rights.
func (p *Position) Clear() {
	_ = p.Load("8/8/8/8/8/8/8/8 w - - 0 1", LoadOptions{SkipValidation: true})
}

// FENOptions configures Position.FEN.
type FENOptions struct {
	// ForceEnpassantSquare, when true, always emits fenEpSquare in the EP
	// field. When false (default), the EP field is emitted only if at
	// least one enemy pawn can legally capture there right now.
	ForceEnpassantSquare bool
}

// FEN renders the canonical six-field FEN string for the current position.
func (p *Position) FEN(opts FENOptions) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board.get(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.turn.String())

	sb.WriteByte(' ')
	castleStr := ""
	if p.castling[White]&CastleKingside != 0 {
		castleStr += "K"
	}
	if p.castling[White]&CastleQueenside != 0 {
		castleStr += "Q"
	}
	if p.castling[Black]&CastleKingside != 0 {
		castleStr += "k"
	}
	if p.castling[Black]&CastleQueenside != 0 {
		castleStr += "q"
	}
	if castleStr == "" {
		castleStr = "-"
	}
	sb.WriteString(castleStr)

	sb.WriteByte(' ')
	if opts.ForceEnpassantSquare {
		sb.WriteString(p.fenEpSquare.String())
	} else {
		ep := "-"
		if p.epSquare != EmptySquare {
			for _, m := range p.LegalMoves() {
				if m.isEnPassant() {
					ep = p.epSquare.String()
					break
				}
			}
		}
		sb.WriteString(ep)
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.moveNumber))

	return sb.String()
}

// Get returns the piece at sq, or NoPiece if empty/off-board.
func (p *Position) Get(sq Square) Piece { return p.board.get(sq) }

// Put places a piece at sq, updating king tracking if it is a king.
func (p *Position) Put(piece Piece, sq Square) {
	p.board.put(piece, sq)
	if piece.Kind == King {
		p.kingSq[piece.Color] = sq
	}
	p.updateCastlingRights()
}

// Remove clears sq.
func (p *Position) Remove(sq Square) {
	piece := p.board.get(sq)
	p.board.remove(sq)
	if piece.Kind == King && p.kingSq[piece.Color] == sq {
		p.kingSq[piece.Color] = EmptySquare
	}
	p.updateCastlingRights()
}

// Turn returns the side to move.
func (p *Position) Turn() Color { return p.turn }

// SetTurn forcibly sets the side to move, e.g. for constructing test
// fixtures or exploring a position from the "other" side. Returns false if
// the King for the given side is missing.
func (p *Position) SetTurn(c Color) bool {
	if p.kingSq[c] == EmptySquare {
		return false
	}
	if p.turn != c {
		p.hash ^= sideKey
	}
	p.turn = c
	return true
}

// MoveNumber returns the full-move counter.
func (p *Position) MoveNumber() int { return p.moveNumber }

// Hash returns the current Zobrist fingerprint.
func (p *Position) Hash() uint64 { return p.hash }

// updateCastlingRights re-asserts the invariant that a castling flag
// requires both the king and the corresponding rook to sit on their home
// squares, clearing (and un-hashing) any flag that no longer holds. See
// spec §4.2.
func (p *Position) updateCastlingRights() {
	homeRank := map[Color]int{White: 0, Black: 7}
	for _, c := range [2]Color{White, Black} {
		rank := homeRank[c]
		kingHome := p.board.get(NewSquare(4, rank)) == Piece{Kind: King, Color: c}
		if p.castling[c]&CastleKingside != 0 {
			rookHome := p.board.get(NewSquare(7, rank)) == (Piece{Kind: Rook, Color: c})
			if !kingHome || !rookHome {
				p.castling[c] &^= CastleKingside
			}
		}
		if p.castling[c]&CastleQueenside != 0 {
			rookHome := p.board.get(NewSquare(0, rank)) == (Piece{Kind: Rook, Color: c})
			if !kingHome || !rookHome {
				p.castling[c] &^= CastleQueenside
			}
		}
	}
}

// updateEnPassantSquare re-derives epSquare from fenEpSquare: the capture
// is only "live" if an enemy pawn actually sits adjacent to the pushed
// pawn. See spec §3.
func (p *Position) updateEnPassantSquare() {
	p.epSquare = EmptySquare
	if p.fenEpSquare == EmptySquare {
		return
	}
	// The pawn that just moved sits one rank behind the EP square from
	// the mover's perspective; the capturing pawn is the opponent's.
	capturer := p.turn
	pushedRank := p.fenEpSquare.Rank() - 1
	if capturer == Black {
		pushedRank = p.fenEpSquare.Rank() + 1
	}
	file := p.fenEpSquare.File()
	for _, df := range [2]int{-1, 1} {
		adjFile := file + df
		if adjFile < 0 || adjFile > 7 {
			continue
		}
		sq := NewSquare(adjFile, pushedRank)
		if piece := p.board.get(sq); piece == (Piece{Kind: Pawn, Color: capturer}) {
			p.epSquare = p.fenEpSquare
			return
		}
	}
}

// computeHash recomputes the Zobrist hash from scratch: XOR of all
// piece-square keys, the EP file key (if any), the castling-rights key,
// and SIDE_KEY iff Black to move. See spec §3.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := 0; sq < 128; sq++ {
		if Square(sq).OffBoard() {
			continue
		}
		if piece := p.board.get(Square(sq)); piece != NoPiece {
			h ^= pieceKey(piece, Square(sq))
		}
	}
	if p.epSquare != EmptySquare {
		h ^= epKeys[p.epSquare.File()]
	}
	h ^= castlingKeys[combinedCastling(p.castling[White], p.castling[Black])]
	if p.turn == Black {
		h ^= sideKey
	}
	return h
}

// positionSnapshot captures the scalar state needed to reverse a move,
// per spec §3's HistoryEntry.snapshot. Board and hash are deliberately not
// stored here: they are restored by inverse XOR/edit application in
// Position.unmakeMove, not by copying, per spec §3 and §9.
type positionSnapshot struct {
	kings       [2]Square
	turn        Color
	castling    [2]CastleRights
	epSquare    Square
	fenEpSquare Square
	halfMoves   int
	moveNumber  int
}

func (p *Position) snapshot() positionSnapshot {
	return positionSnapshot{
		kings:       p.kingSq,
		turn:        p.turn,
		castling:    p.castling,
		epSquare:    p.epSquare,
		fenEpSquare: p.fenEpSquare,
		halfMoves:   p.halfMoves,
		moveNumber:  p.moveNumber,
	}
}

// clone returns a deep copy of p: an independent board array and an
// independent positionCount map, so the copy can be mutated (e.g. by a
// history replay) without affecting p.
func (p *Position) clone() *Position {
	cp := *p
	b := *p.board
	cp.board = &b
	cp.positionCount = make(map[uint64]int, len(p.positionCount))
	for k, v := range p.positionCount {
		cp.positionCount[k] = v
	}
	return &cp
}

// IsThreefoldRepetition reports whether the current position has been
// reached three or more times.
func (p *Position) IsThreefoldRepetition() bool {
	return p.positionCount[p.hash] >= 3
}

// IsDrawByFiftyMoves reports whether the halfmove clock has reached 100
// (fifty full moves without a pawn move or capture).
func (p *Position) IsDrawByFiftyMoves() bool {
	return p.halfMoves >= 100
}

// SquareColorName names the light/dark color of a square, or "" if off-board.
func SquareColorName(sq Square) string {
	return sq.Color().String()
}
