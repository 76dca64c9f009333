package board

// genMode selects how much the move generator produces.
type genMode uint8

const (
	// genFull produces every pseudo-legal destination, castling included.
	genFull genMode = iota
	// genAttacks is used by check detection. It never produces castling
	// moves, since castling eligibility itself asks whether the king is
	// attacked.
	genAttacks
)

// Direction and offset tables as (row, col) deltas.
var (
	rookDirections   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirections = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirections  = append(append([][2]int{}, rookDirections...), bishopDirections...)
	kingOffsets      = queenDirections
	knightOffsets    = [][2]int{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// PseudoLegalMoves returns the destinations of the piece on from according
// to its movement pattern, ignoring whether the mover's king is left in check.
func (p *Position) PseudoLegalMoves(from Square) []Square {
	return p.pseudoLegalMoves(from, genFull)
}

// pseudoLegalMoves generates destinations for the piece on from.
func (p *Position) pseudoLegalMoves(from Square, mode genMode) []Square {
	piece := p.grid.At(from)
	if piece.IsEmpty() {
		return nil
	}

	var dst []Square
	switch piece.Type {
	case Pawn:
		dst = p.pawnMoves(dst, from, piece.Color)
	case Knight:
		dst = p.stepMoves(dst, from, piece.Color, knightOffsets)
	case Bishop:
		dst = p.slideMoves(dst, from, piece.Color, bishopDirections)
	case Rook:
		dst = p.slideMoves(dst, from, piece.Color, rookDirections)
	case Queen:
		dst = p.slideMoves(dst, from, piece.Color, queenDirections)
	case King:
		dst = p.stepMoves(dst, from, piece.Color, kingOffsets)
		if mode == genFull {
			dst = p.castlingMoves(dst, from, piece)
		}
	}
	return dst
}

// pawnMoves generates pushes first, then captures (left before right).
func (p *Position) pawnMoves(dst []Square, from Square, us Color) []Square {
	dir := us.forward()

	one := from.Offset(dir, 0)
	if p.IsEmpty(one) {
		dst = append(dst, one)
		two := one.Offset(dir, 0)
		if from.Row == us.pawnRow() && p.IsEmpty(two) {
			dst = append(dst, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.OnBoard() {
			continue
		}
		target := p.grid.At(to)
		if !target.IsEmpty() && target.Color != us {
			dst = append(dst, to)
		} else if to == p.enPassant && us == p.sideToMove {
			dst = append(dst, to)
		}
	}
	return dst
}

// stepMoves handles knights and kings: one hop per offset.
func (p *Position) stepMoves(dst []Square, from Square, us Color, offsets [][2]int) []Square {
	for _, d := range offsets {
		to := from.Offset(d[0], d[1])
		if !to.OnBoard() {
			continue
		}
		if target := p.grid.At(to); target.IsEmpty() || target.Color != us {
			dst = append(dst, to)
		}
	}
	return dst
}

// slideMoves casts a ray per direction, stopping at the first occupied square.
func (p *Position) slideMoves(dst []Square, from Square, us Color, dirs [][2]int) []Square {
	for _, d := range dirs {
		to := from
		for step := 0; step < 7; step++ {
			to = to.Offset(d[0], d[1])
			if !to.OnBoard() {
				break
			}
			target := p.grid.At(to)
			if target.IsEmpty() {
				dst = append(dst, to)
				continue
			}
			if target.Color != us {
				dst = append(dst, to)
			}
			break
		}
	}
	return dst
}

// castlingMoves adds the two-column king moves, kingside first.
func (p *Position) castlingMoves(dst []Square, from Square, king Piece) []Square {
	if king.HasMoved || from != Sq(king.Color.homeRow(), 4) || p.InCheck(king.Color) {
		return dst
	}

	for _, side := range [2]struct{ rookCol, kingCol, step int }{
		{rookCol: 7, kingCol: 6, step: 1},
		{rookCol: 0, kingCol: 2, step: -1},
	} {
		rook := p.grid.At(Sq(from.Row, side.rookCol))
		if rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		if !p.rowClearBetween(from.Row, from.Col, side.rookCol) {
			continue
		}
		// The king may not pass over an attacked square. The landing
		// square is covered later by the legality filter.
		if !p.lenientCastling && p.leavesInCheck(from, from.Offset(0, side.step), king.Color) {
			continue
		}
		dst = append(dst, Sq(from.Row, side.kingCol))
	}
	return dst
}

// rowClearBetween returns true if every square strictly between the two
// columns on the row is empty.
func (p *Position) rowClearBetween(row, colA, colB int) bool {
	lo, hi := min(colA, colB), max(colA, colB)
	for col := lo + 1; col < hi; col++ {
		if !p.grid[row][col].IsEmpty() {
			return false
		}
	}
	return true
}
