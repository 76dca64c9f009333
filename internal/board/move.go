package board

// Move is the history record of an executed move.
type Move struct {
	From Square
	To   Square

	// Piece is the mover as it was before the move.
	Piece Piece

	// Captured is the removed enemy piece, or NoPiece. For en passant it is
	// the pawn taken from beside the destination.
	Captured Piece

	IsEnPassant bool
	IsCastling  bool

	// Promotion is the type the pawn became, or NoPieceType.
	Promotion PieceType
}

// IsCapture returns true if the move removed an enemy piece.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// String returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Char())
	}
	return s
}

// castlingRook returns where the rook starts and lands for a king move
// from->to that spans two columns.
func castlingRook(from, to Square) (rookFrom, rookTo Square) {
	if to.Col > from.Col {
		return Sq(from.Row, 7), Sq(from.Row, 5)
	}
	return Sq(from.Row, 0), Sq(from.Row, 3)
}
