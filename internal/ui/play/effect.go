package play

import (
	"math"
	"time"
)

// Timer is the lifetime of a short visual effect.
type Timer struct {
	Start    time.Time
	Duration time.Duration
}

// Progress returns the linear progress in [0,1] at now.
func (t Timer) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, float64(now.Sub(t.Start))/float64(t.Duration)))
}

// Live returns true until the timer runs out.
func (t Timer) Live(now time.Time) bool {
	return now.Sub(t.Start) < t.Duration
}

// Fade is the opacity of an effect that fades in over edge, holds, and fades
// out over the final edge of its lifetime.
func (t Timer) Fade(now time.Time, edge time.Duration) float64 {
	if edge <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	alpha := 1.0
	switch {
	case elapsed < edge:
		alpha = float64(elapsed) / float64(edge)
	case elapsed > t.Duration-edge:
		alpha = float64(t.Duration-elapsed) / float64(edge)
	}
	return math.Max(0, math.Min(1, alpha))
}

// Shake is the horizontal offset of a damped oscillation of the given
// amplitude, at linear progress p. It settles to zero at p >= 1.
func Shake(p, amplitude float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return amplitude * math.Exp(-5*p) * math.Sin(40*p)
}
