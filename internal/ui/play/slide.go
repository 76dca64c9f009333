package play

import (
	"time"

	"github.com/hailam/chessgrid/internal/board"
)

// EaseOutCubic maps linear progress t in [0,1] to a decelerating curve.
// Values outside the range are clamped.
func EaseOutCubic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// Slide moves a piece sprite from one square to another over Duration.
type Slide struct {
	Piece    board.Piece
	From     board.Square
	To       board.Square
	Start    time.Time
	Duration time.Duration
}

// Progress returns the eased progress of the slide at now.
func (s Slide) Progress(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return EaseOutCubic(float64(now.Sub(s.Start)) / float64(s.Duration))
}

// Done returns true once the slide has reached its destination.
func (s Slide) Done(now time.Time) bool {
	return now.Sub(s.Start) >= s.Duration
}

// Point returns the sprite's top-left pixel at now.
func (s Slide) Point(g Geometry, now time.Time) (float64, float64) {
	fx, fy := g.SquareToScreen(s.From)
	tx, ty := g.SquareToScreen(s.To)
	p := s.Progress(now)
	return float64(fx) + float64(tx-fx)*p, float64(fy) + float64(ty-fy)*p
}

// SlidesFor returns the slides that animate m: the mover and, for castling,
// the rook.
func SlidesFor(m board.Move, start time.Time, d time.Duration) []Slide {
	piece := m.Piece
	if m.Promotion != board.NoPieceType {
		piece.Type = m.Promotion
	}
	slides := []Slide{{Piece: piece, From: m.From, To: m.To, Start: start, Duration: d}}

	if m.IsCastling {
		rookFrom, rookTo := board.Sq(m.From.Row, 7), board.Sq(m.From.Row, 5)
		if m.To.Col < m.From.Col {
			rookFrom, rookTo = board.Sq(m.From.Row, 0), board.Sq(m.From.Row, 3)
		}
		rook := board.NewPiece(board.Rook, m.Piece.Color)
		slides = append(slides, Slide{Piece: rook, From: rookFrom, To: rookTo, Start: start, Duration: d})
	}
	return slides
}
