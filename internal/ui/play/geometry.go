// Package play holds the board-view interaction logic of the desktop client:
// square/pixel mapping, move animation timing, drop resolution and the
// classification of rejected moves. It does not depend on the graphics
// library so it can be tested headless.
package play

import "github.com/hailam/chessgrid/internal/board"

// Geometry maps board squares to pixel positions in logical (unscaled)
// coordinates. The board's top-left corner is at (0, 0).
type Geometry struct {
	SquareSize int
	// Flipped puts Black's home row at the bottom.
	Flipped bool
}

// BoardSize returns the side length of the board in pixels.
func (g Geometry) BoardSize() int {
	return g.SquareSize * 8
}

// SquareToScreen returns the top-left pixel of sq.
func (g Geometry) SquareToScreen(sq board.Square) (int, int) {
	row, col := sq.Row, sq.Col
	if g.Flipped {
		row, col = 7-row, 7-col
	}
	return col * g.SquareSize, row * g.SquareSize
}

// ScreenToSquare returns the square under pixel (x, y), or board.NoSquare
// when the point is outside the board.
func (g Geometry) ScreenToSquare(x, y int) board.Square {
	size := g.BoardSize()
	if g.SquareSize <= 0 || x < 0 || x >= size || y < 0 || y >= size {
		return board.NoSquare
	}
	row, col := y/g.SquareSize, x/g.SquareSize
	if g.Flipped {
		row, col = 7-row, 7-col
	}
	return board.Sq(row, col)
}

// FileLabel returns the file letter drawn under screen column i (0 = left).
func (g Geometry) FileLabel(i int) string {
	if g.Flipped {
		i = 7 - i
	}
	return string(rune('a' + i))
}

// RankLabel returns the rank digit drawn beside screen row i (0 = top).
func (g Geometry) RankLabel(i int) string {
	if g.Flipped {
		i = 7 - i
	}
	return string(rune('8' - i))
}
