package board

// isPromotion reports whether from->to moves a pawn onto its far rank.
func (p *Position) isPromotion(from, to Square) bool {
	mover := p.grid.At(from)
	return mover.Type == Pawn && to.Row == mover.Color.promotionRow()
}

// apply executes from->to, which the caller has already checked is legal,
// and returns the history record. A promotion with promo == NoPieceType
// becomes a queen.
func (p *Position) apply(from, to Square, promo PieceType) Move {
	mover := p.grid.At(from)
	m := Move{
		From:     from,
		To:       to,
		Piece:    mover,
		Captured: p.grid.At(to),
	}

	placed := mover
	placed.HasMoved = true

	// Side effects are worked out before the mover leaves from.
	switch mover.Type {
	case Pawn:
		if p.isEnPassantCapture(mover, from, to) {
			victim := Sq(from.Row, to.Col)
			m.Captured = p.grid.At(victim)
			m.IsEnPassant = true
			p.grid.set(victim, NoPiece)
		}
		if to.Row == mover.Color.promotionRow() {
			if promo == NoPieceType {
				promo = Queen
			}
			placed.Type = promo
			m.Promotion = promo
		}

	case King:
		if abs(to.Col-from.Col) == 2 {
			rookFrom, rookTo := castlingRook(from, to)
			rook := p.grid.At(rookFrom)
			rook.HasMoved = true
			p.grid.set(rookTo, rook)
			p.grid.set(rookFrom, NoPiece)
			m.IsCastling = true
		}
	}

	p.grid.set(to, placed)
	p.grid.set(from, NoPiece)

	p.enPassant = NoSquare
	if mover.Type == Pawn && abs(to.Row-from.Row) == 2 {
		p.enPassant = Sq((from.Row+to.Row)/2, from.Col)
	}

	p.sideToMove = p.sideToMove.Other()
	return m
}
