package board

import (
	"fmt"
	"strings"
)

// Grid is the 8x8 board, indexed [row][col]. It is a value type:
// assigning or returning a Grid copies every cell.
type Grid [8][8]Piece

// At returns the piece on the square, or NoPiece if empty or off the board.
func (g *Grid) At(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return g[sq.Row][sq.Col]
}

func (g *Grid) set(sq Square, p Piece) {
	g[sq.Row][sq.Col] = p
}

// Count returns the number of occupied squares.
func (g *Grid) Count() int {
	n := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if !g[row][col].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// backRank is the piece order on both home rows, a-file to h-file.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingGrid returns the standard opening arrangement.
func StartingGrid() Grid {
	var g Grid
	for _, c := range []Color{White, Black} {
		for col, pt := range backRank {
			g[c.homeRow()][col] = NewPiece(pt, c)
			g[c.pawnRow()][col] = NewPiece(Pawn, c)
		}
	}
	return g
}

// Position is the mutable board state: the grid, the side to move and the
// en passant target left by the previous move.
type Position struct {
	grid       Grid
	sideToMove Color
	enPassant  Square

	// lenientCastling skips the attacked-transit-square test when
	// generating castling moves.
	lenientCastling bool
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	return &Position{
		grid:       StartingGrid(),
		sideToMove: White,
		enPassant:  NoSquare,
	}
}

// Grid returns a copy of the grid.
func (p *Position) Grid() Grid {
	return p.grid
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.grid.At(sq)
}

// IsEmpty returns true if the square is on the board and empty.
func (p *Position) IsEmpty(sq Square) bool {
	return sq.OnBoard() && p.grid.At(sq).IsEmpty()
}

// SideToMove returns the color whose turn it is.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// EnPassant returns the en passant target, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			piece := p.grid[row][col]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	return sb.String()
}
