package board

import "errors"

var (
	ErrGameOver         = errors.New("game is over")
	ErrNoPiece          = errors.New("no piece on square")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("unknown promotion piece type")
)
