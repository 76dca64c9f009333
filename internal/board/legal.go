package board

// LegalMoves returns the destinations of the piece on from that do not
// leave its own king in check, in generation order.
func (p *Position) LegalMoves(from Square) []Square {
	piece := p.grid.At(from)
	if piece.IsEmpty() {
		return nil
	}

	candidates := p.pseudoLegalMoves(from, genFull)
	legal := candidates[:0]
	for _, to := range candidates {
		if !p.leavesInCheck(from, to, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// IsLegal returns true if from->to is among the legal moves of the piece on from.
func (p *Position) IsLegal(from, to Square) bool {
	for _, sq := range p.LegalMoves(from) {
		if sq == to {
			return true
		}
	}
	return false
}

// HasLegalMove returns true if any piece of color c has a legal destination.
func (p *Position) HasLegalMove(c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.grid[row][col]
			if piece.IsEmpty() || piece.Color != c {
				continue
			}
			if len(p.LegalMoves(Sq(row, col))) > 0 {
				return true
			}
		}
	}
	return false
}

// leavesInCheck plays from->to on the grid, tests whether color c is in
// check, and puts the grid back.
func (p *Position) leavesInCheck(from, to Square, c Color) bool {
	restore := p.simulate(from, to)
	defer restore()
	return p.InCheck(c)
}

// simulate moves the piece on from to to without any bookkeeping and
// returns a closure that undoes it. An en passant capture also lifts the
// captured pawn.
func (p *Position) simulate(from, to Square) (restore func()) {
	mover := p.grid.At(from)
	displaced := p.grid.At(to)

	epSquare := NoSquare
	var epPawn Piece
	if p.isEnPassantCapture(mover, from, to) {
		epSquare = Sq(from.Row, to.Col)
		epPawn = p.grid.At(epSquare)
		p.grid.set(epSquare, NoPiece)
	}

	p.grid.set(to, mover)
	p.grid.set(from, NoPiece)

	return func() {
		p.grid.set(from, mover)
		p.grid.set(to, displaced)
		if epSquare.OnBoard() {
			p.grid.set(epSquare, epPawn)
		}
	}
}

// isEnPassantCapture reports whether mover going from->to takes en passant.
func (p *Position) isEnPassantCapture(mover Piece, from, to Square) bool {
	return mover.Type == Pawn &&
		to == p.enPassant &&
		from.Col != to.Col &&
		p.grid.At(to).IsEmpty()
}
