package chess

import "strings"

// SquareColor names the light/dark color of sq ("" if off-board), the
// method-form of the public squareColor(square) operation (spec §6).
func (p *Position) SquareColor(sq Square) string {
	return sq.Color().String()
}

// FindPiece returns every square holding an exact (kind, color) match.
func (p *Position) FindPiece(piece Piece) []Square {
	var out []Square
	for sq := 0; sq < 128; sq++ {
		s := Square(sq)
		if s.OffBoard() {
			continue
		}
		if p.board.get(s) == piece {
			out = append(out, s)
		}
	}
	return out
}

// Grid renders the board as an 8x8 array indexed [rank][file], rank 0 =
// rank 1 (White's back rank), consistent with Square.Rank()/File().
func (p *Position) Grid() [8][8]Piece {
	var g [8][8]Piece
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			g[rank][file] = p.board.get(NewSquare(file, rank))
		}
	}
	return g
}

// ASCII renders the board as an 8-line text diagram, rank 8 first, files
// a-h left to right, empty squares as '.'.
func (p *Position) ASCII() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			piece := p.board.get(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(piece.Letter())
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
