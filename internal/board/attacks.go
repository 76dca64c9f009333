package board

// KingSquare finds the king of the given color.
// It returns false if that color has no king on the grid.
func (p *Position) KingSquare(c Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.grid[row][col]
			if piece.Type == King && piece.Color == c {
				return Sq(row, col), true
			}
		}
	}
	return NoSquare, false
}

// InCheck returns true if the king of the given color is attacked.
// A color without a king is never in check.
func (p *Position) InCheck(c Color) bool {
	ksq, ok := p.KingSquare(c)
	if !ok {
		return false
	}
	return p.isAttacked(ksq, c.Other())
}

// isAttacked returns true if any piece of color by can reach sq. Pawn
// pushes are included, so sq is expected to be occupied.
func (p *Position) isAttacked(sq Square, by Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.grid[row][col]
			if piece.IsEmpty() || piece.Color != by {
				continue
			}
			for _, to := range p.pseudoLegalMoves(Sq(row, col), genAttacks) {
				if to == sq {
					return true
				}
			}
		}
	}
	return false
}
