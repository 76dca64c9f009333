package board

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"
)

// Game is a chess game session: the position, the move history and the
// result. It is not safe for concurrent use.
type Game struct {
	pos     *Position
	history []Move
	outcome Outcome
	method  Method

	lenientCastling bool
	log             logr.Logger
}

// WithLogger sets the logger used for move and game-end events.
func WithLogger(log logr.Logger) func(*Game) {
	return func(g *Game) {
		g.log = log
	}
}

// CastleThroughAttackedSquares lets the king castle across an attacked
// square. Only the king's current square and its landing square are
// required to be safe.
func CastleThroughAttackedSquares() func(*Game) {
	return func(g *Game) {
		g.lenientCastling = true
	}
}

// NewGame returns a game in the starting position.
func NewGame(options ...func(*Game)) *Game {
	g := &Game{log: logr.Discard()}
	for _, opt := range options {
		opt(g)
	}
	g.Reset()
	return g
}

// Reset starts a new game from the opening position. Options passed to
// NewGame stay in effect.
func (g *Game) Reset() {
	g.pos = NewPosition()
	g.pos.lenientCastling = g.lenientCastling
	g.history = nil
	g.outcome = NoOutcome
	g.method = NoMethod
	g.log.V(1).Info("[GAME] new game")
}

// Board returns a copy of the grid.
func (g *Game) Board() Grid {
	return g.pos.grid
}

// Position returns a copy of the current position.
func (g *Game) Position() *Position {
	pos := *g.pos
	return &pos
}

// Turn returns the color to move.
func (g *Game) Turn() Color {
	return g.pos.sideToMove
}

// PieceAt returns the piece on sq. The boolean is false for an empty or
// off-board square.
func (g *Game) PieceAt(sq Square) (Piece, bool) {
	p := g.pos.PieceAt(sq)
	return p, !p.IsEmpty()
}

// LegalMoves returns the legal destinations of the piece on sq. It is empty
// for an empty square or a piece of the side not to move.
func (g *Game) LegalMoves(sq Square) []Square {
	p := g.pos.PieceAt(sq)
	if p.IsEmpty() || p.Color != g.pos.sideToMove || g.Finished() {
		return nil
	}
	return g.pos.LegalMoves(sq)
}

// InCheck returns true if the king of color c is attacked.
func (g *Game) InCheck(c Color) bool {
	return g.pos.InCheck(c)
}

// KingSquare returns the square of the king of color c.
func (g *Game) KingSquare(c Color) (Square, bool) {
	return g.pos.KingSquare(c)
}

// History returns a copy of the moves played, oldest first.
func (g *Game) History() []Move {
	return slices.Clone(g.history)
}

// LastMove returns the most recent move.
func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Finished returns true once the game has an outcome.
func (g *Game) Finished() bool {
	return g.outcome != NoOutcome
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns how the outcome came about.
func (g *Game) Method() Method {
	return g.method
}

// AttemptMove plays from->to and reports whether it was accepted.
// An optional piece type picks the promotion; the default is a queen.
func (g *Game) AttemptMove(from, to Square, promo ...PieceType) bool {
	pt := NoPieceType
	if len(promo) > 0 {
		pt = promo[0]
	}
	return g.Move(from, to, pt) == nil
}

// Move plays from->to. promo is only read when a pawn reaches the far
// rank; NoPieceType means a queen. On error the game is unchanged.
func (g *Game) Move(from, to Square, promo PieceType) error {
	if err := g.validateMove(from, to, promo); err != nil {
		g.log.V(1).Info("[MOVE] rejected", "from", from.String(), "to", to.String(), "reason", err.Error())
		return err
	}

	m := g.pos.apply(from, to, promo)
	g.history = append(g.history, m)
	g.log.V(1).Info("[MOVE]", "ply", len(g.history), "move", m.String(), "piece", m.Piece.Type.String(),
		"capture", m.IsCapture(), "castling", m.IsCastling, "enPassant", m.IsEnPassant)

	g.evaluatePositionStatus()
	return nil
}

func (g *Game) validateMove(from, to Square, promo PieceType) error {
	if g.Finished() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.outcome)
	}

	p := g.pos.PieceAt(from)
	if p.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Color != g.pos.sideToMove {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.pos.sideToMove)
	}
	if !g.pos.IsLegal(from, to) {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	if promo != NoPieceType && g.pos.isPromotion(from, to) && !promo.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, promo)
	}
	return nil
}

// evaluatePositionStatus sets the outcome once the side to move is out of moves.
func (g *Game) evaluatePositionStatus() {
	switch g.pos.Status() {
	case Checkmate:
		g.method = Checkmate
		g.outcome = WhiteWon
		if g.pos.sideToMove == White {
			g.outcome = BlackWon
		}
	case Stalemate:
		g.method = Stalemate
		g.outcome = Draw
	default:
		return
	}
	g.log.Info("[GAME] finished", "outcome", g.outcome, "method", g.method, "plies", len(g.history))
}
