package chess

// Static, read-only tables derived once at package initialization: attack
// membership and ray-step tables for the 0x88 board, plus the Zobrist key
// tables used for incremental position hashing. Grounded on the same
// "precompute geometry once" shape as the teacher's PIECE_OFFSETS /
// PAWN_OFFSETS in internal/engine/piece.go and internal/engine/pawn.go,
// adapted from the teacher's hedge-rank/file board to the 0x88 scheme this
// specification mandates.

type attackBit uint8

const (
	atkPawn attackBit = 1 << iota
	atkKnight
	atkBishop
	atkRook
	atkQueen
	atkKing
)

func pieceMaskBit(k PieceKind) attackBit {
	switch k {
	case Pawn:
		return atkPawn
	case Knight:
		return atkKnight
	case Bishop:
		return atkBishop
	case Rook:
		return atkRook
	case Queen:
		return atkQueen
	case King:
		return atkKing
	default:
		return 0
	}
}

// tableSize covers diff = from - to + 119 for from,to in [0,119].
const tableSize = 239

var (
	attacks [tableSize]attackBit
	rays    [tableSize]int
)

// Sliding and leaping step vectors in 0x88 index space (rank*16 + file).
var (
	rookDirs   = [4]int{-16, 16, -1, 1}
	bishopDirs = [4]int{-17, -15, 15, 17}
	knightDirs = [8]int{-33, -31, -18, -14, 14, 18, 31, 33}
	kingDirs   = [8]int{-17, -16, -15, -1, 1, 15, 16, 17}
)

func onBoard(s int) bool { return s&0x88 == 0 }

func init() {
	// Sliding pieces: walk every direction from every square, marking every
	// reachable square along the ray (any distance) and recording the
	// step increment needed to walk back from the target toward the
	// source, for the "nothing strictly between" occupancy check.
	buildSlider := func(dirs [4]int, bit attackBit) {
		for from := 0; from < 128; from++ {
			if !onBoard(from) {
				continue
			}
			for _, dir := range dirs {
				to := from + dir
				for onBoard(to) {
					diff := from - to + 119
					attacks[diff] |= bit | atkQueen
					rays[diff] = -dir
					to += dir
				}
			}
		}
	}
	buildSlider(rookDirs, atkRook)
	buildSlider(bishopDirs, atkBishop)

	// Leapers: knight and king only reach the immediate target square.
	buildLeaper := func(dirs [8]int, bit attackBit) {
		for from := 0; from < 128; from++ {
			if !onBoard(from) {
				continue
			}
			for _, dir := range dirs {
				to := from + dir
				if onBoard(to) {
					diff := from - to + 119
					attacks[diff] |= bit
				}
			}
		}
	}
	buildLeaper(knightDirs, atkKnight)
	buildLeaper(kingDirs, atkKing)

	// Pawns: mark both diagonal one-step offsets; the sign of (from-to)
	// disambiguates attacking color at test time (see attacksSquare).
	for from := 0; from < 128; from++ {
		if !onBoard(from) {
			continue
		}
		for _, dir := range [2]int{15, 17} {
			for _, d := range [2]int{dir, -dir} {
				to := from + d
				if onBoard(to) {
					diff := from - to + 119
					attacks[diff] |= atkPawn
				}
			}
		}
	}
}

// attacksSquare reports whether a piece of the given kind/color sitting on
// `from` attacks `to`, accounting for blockers on the current board for
// sliding pieces. See spec §4.1.
func attacksSquare(b *board, from, to Square, piece Piece) bool {
	diff := int(from) - int(to) + 119
	if diff < 0 || diff >= tableSize {
		return false
	}
	bit := pieceMaskBit(piece.Kind)
	if attacks[diff]&bit == 0 {
		return false
	}
	if piece.Kind == Pawn {
		if piece.Color == White {
			return from-to < 0
		}
		return from-to > 0
	}
	if piece.Kind == Bishop || piece.Kind == Rook || piece.Kind == Queen {
		dir := rays[diff]
		if dir != 0 {
			s := int(to) + dir
			for s != int(from) {
				if b.get(Square(s)) != NoPiece {
					return false
				}
				s += dir
			}
		}
	}
	return true
}

// PAWN_OFFSETS: single push, double push, two capture diagonals, per color.
type pawnOffsets struct {
	push, doublePush, capA, capB int
}

var pawnOffsetsByColor = [2]pawnOffsets{
	White: {push: 16, doublePush: 32, capA: 15, capB: 17},
	Black: {push: -16, doublePush: -32, capA: -15, capB: -17},
}

// pieceOffsets: leaper/slider step sets for non-pawn kinds, used by move
// generation.
func pieceStepDirs(k PieceKind) ([]int, bool) {
	switch k {
	case Knight:
		return knightDirs[:], false
	case King:
		return kingDirs[:], false
	case Bishop:
		return bishopDirs[:], true
	case Rook:
		return rookDirs[:], true
	case Queen:
		return kingDirs[:], true
	default:
		return nil, false
	}
}
