// Package board implements the chess rules engine on an 8x8 grid.
package board

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Square is a (row, col) coordinate on the grid.
// Row 0 is Black's back rank and row 7 is White's; col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NoSquare marks the absence of a square (e.g. no en passant target).
var NoSquare = Square{Row: -1, Col: -1}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard returns true if both coordinates are within [0,7].
func (sq Square) OnBoard() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square shifted by the given row and column deltas.
// The result may be off the board.
func (sq Square) Offset(dRow, dCol int) Square {
	return Square{Row: sq.Row + dRow, Col: sq.Col + dCol}
}

// String returns the algebraic name of the square (e.g. "e1" for {7,4}).
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses an algebraic square name (e.g. "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0] - 'a')
	row := int('8' - s[1])

	sq := Square{Row: row, Col: col}
	if !sq.OnBoard() {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	return sq, nil
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
