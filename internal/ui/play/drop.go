package play

import (
	"errors"
	"slices"

	"github.com/hailam/chessgrid/internal/board"
)

// ResolveDrop turns a pointer gesture from->to into the destination the
// engine expects. Dropping the king on its own rook is read as castling
// toward that rook. legal holds the legal destinations of the piece on from.
func ResolveDrop(pos *board.Position, from, to board.Square, legal []board.Square) (board.Square, bool) {
	if slices.Contains(legal, to) {
		return to, true
	}
	if !isKingOnOwnRook(pos, from, to) {
		return board.NoSquare, false
	}

	dest := board.Sq(from.Row, from.Col+2)
	if to.Col < from.Col {
		dest = board.Sq(from.Row, from.Col-2)
	}
	if slices.Contains(legal, dest) {
		return dest, true
	}
	return board.NoSquare, false
}

func isKingOnOwnRook(pos *board.Position, from, to board.Square) bool {
	king, rook := pos.PieceAt(from), pos.PieceAt(to)
	return king.Type == board.King && rook.Type == board.Rook &&
		rook.Color == king.Color && from.Row == to.Row
}

// Reason describes why a move attempt was rejected.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonNotYourTurn
	ReasonGameOver
	ReasonBlockedByOwnPiece
	ReasonWouldLeaveKingInCheck
	ReasonCastlingNotAllowed
	ReasonInvalidPieceMovement
)

// Message returns the text shown to the player.
func (r Reason) Message() string {
	switch r {
	case ReasonNotYourTurn:
		return "Not your turn"
	case ReasonGameOver:
		return "The game is over"
	case ReasonBlockedByOwnPiece:
		return "Square occupied by your piece"
	case ReasonWouldLeaveKingInCheck:
		return "Illegal move - King would be in check"
	case ReasonCastlingNotAllowed:
		return "Castling not allowed here"
	case ReasonInvalidPieceMovement:
		return "Invalid move for this piece"
	default:
		return "Invalid move"
	}
}

// Classify maps the engine's rejection of from->to to a Reason. pos is the
// position the move was tried in.
func Classify(pos *board.Position, from, to board.Square, err error) Reason {
	switch {
	case errors.Is(err, board.ErrGameOver):
		return ReasonGameOver
	case errors.Is(err, board.ErrNotYourTurn):
		return ReasonNotYourTurn
	case errors.Is(err, board.ErrNoPiece):
		return ReasonUnknown
	}

	piece := pos.PieceAt(from)
	if piece.IsEmpty() {
		return ReasonUnknown
	}
	if isKingOnOwnRook(pos, from, to) ||
		(piece.Type == board.King && from.Row == to.Row && (to.Col-from.Col == 2 || from.Col-to.Col == 2)) {
		return ReasonCastlingNotAllowed
	}
	if target := pos.PieceAt(to); !target.IsEmpty() && target.Color == piece.Color {
		return ReasonBlockedByOwnPiece
	}

	// Generated but filtered out by the legality check.
	if slices.Contains(pos.PseudoLegalMoves(from), to) {
		return ReasonWouldLeaveKingInCheck
	}
	return ReasonInvalidPieceMovement
}
