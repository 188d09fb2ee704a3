// Package chess provides a 0x88 move generator and position engine for
// standard chess, plus Game-level state (headers, history, comments, NAGs)
// and PGN/FEN text emission.
package chess

import "fmt"

// Color represents the side to move or the owner of a piece.
type Color int

const (
	White Color = iota
	Black
)

// String returns "w" or "b", matching the FEN turn field.
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind is a chess piece type, independent of color.
type PieceKind int

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{NoKind: 0, Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

// Letter returns the uppercase SAN/FEN letter for the kind ('N' for knight).
func (k PieceKind) Letter() byte {
	if int(k) < len(kindLetters) {
		return kindLetters[k]
	}
	return '?'
}

func (k PieceKind) String() string {
	names := [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindFromLetter maps an uppercase piece letter to a PieceKind, or NoKind
// if the letter is not one of PNBRQK.
func KindFromLetter(b byte) PieceKind {
	switch b {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoKind
	}
}

// Piece is a (kind, color) pair. The zero Piece is not a valid on-board
// piece; use NoPiece for "empty square" and check Kind != NoKind.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece represents an empty square.
var NoPiece = Piece{Kind: NoKind}

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Color == Black {
		return l - 'A' + 'a'
	}
	return l
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Kind)
}

// Square is a 0x88 board index: rank*16 + file, file and rank in 0..7.
// (s & 0x88) != 0 iff the index is off-board.
type Square int

// EmptySquare is the sentinel for "no square" (e.g. no en-passant target,
// no king recorded on the board).
const EmptySquare Square = -1

// NewSquare builds a Square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*16 + file)
}

// File returns the 0-based file (0=a .. 7=h).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the 0-based rank (0=rank1 .. 7=rank8).
func (s Square) Rank() int { return int(s) >> 4 }

// OffBoard reports whether s falls outside the 8x8 board under the 0x88
// scheme.
func (s Square) OffBoard() bool { return int(s)&0x88 != 0 }

// String renders the square in algebraic form, e.g. "e4". Off-board or
// EmptySquare values render as "-".
func (s Square) String() string {
	if s == EmptySquare || s.OffBoard() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare parses algebraic notation like "e4" into a Square.
// Returns EmptySquare and false on malformed input.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return EmptySquare, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return EmptySquare, false
	}
	return NewSquare(file, rank), true
}

// SquareColor names the light/dark color of a square.
type SquareColor int

const (
	NoSquareColor SquareColor = iota
	LightSquare
	DarkSquare
)

func (s Square) Color() SquareColor {
	if s.OffBoard() {
		return NoSquareColor
	}
	if (s.File()+s.Rank())%2 == 1 {
		return LightSquare
	}
	return DarkSquare
}

func (c SquareColor) String() string {
	switch c {
	case LightSquare:
		return "light"
	case DarkSquare:
		return "dark"
	default:
		return ""
	}
}

// MoveFlag is a bitset describing the nature of an applied move.
type MoveFlag uint16

const (
	FlagNormal MoveFlag = 1 << iota
	FlagCapture
	FlagBigPawn
	FlagEPCapture
	FlagPromotion
	FlagKSideCastle
	FlagQSideCastle
	FlagNullMove
)

// CastleRights is a per-color bitmask over {kingside, queenside}.
type CastleRights uint8

const (
	CastleKingside CastleRights = 1 << iota
	CastleQueenside
)

// combinedCastling returns the 4-bit combined castling-rights index used to key
// CASTLING_KEYS: bit0=white kingside, bit1=white queenside, bit2=black
// kingside, bit3=black queenside.
func combinedCastling(white, black CastleRights) int {
	idx := 0
	if white&CastleKingside != 0 {
		idx |= 1
	}
	if white&CastleQueenside != 0 {
		idx |= 2
	}
	if black&CastleKingside != 0 {
		idx |= 4
	}
	if black&CastleQueenside != 0 {
		idx |= 8
	}
	return idx
}
