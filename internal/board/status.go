package board

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that the game is still in progress.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that White checkmated Black.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that Black checkmated White.
	BlackWon Outcome = "0-1"
	// Draw indicates a stalemate.
	Draw Outcome = "1/2-1/2"
)

func (o Outcome) String() string {
	return string(o)
}

// Winner returns the winning color, or NoColor for a draw or a game in progress.
func (o Outcome) Winner() Color {
	switch o {
	case WhiteWon:
		return White
	case BlackWon:
		return Black
	default:
		return NoColor
	}
}

// A Method is the way the outcome came about.
type Method uint8

const (
	// NoMethod indicates that the game has not ended.
	NoMethod Method = iota
	// Checkmate indicates the side to move is in check with no legal move.
	Checkmate
	// Stalemate indicates the side to move is not in check but has no legal move.
	Stalemate
)

func (m Method) String() string {
	switch m {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "NoMethod"
	}
}

// Status returns Checkmate or Stalemate if the side to move has no legal
// move, and NoMethod otherwise.
func (p *Position) Status() Method {
	if p.HasLegalMove(p.sideToMove) {
		return NoMethod
	}
	if p.InCheck(p.sideToMove) {
		return Checkmate
	}
	return Stalemate
}
