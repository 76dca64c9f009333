package ui

import (
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/ui/play"
)

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// toastPalette holds background and text colors at full opacity.
var toastPalette = map[ToastType][2]color.RGBA{
	ToastInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	ToastWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	ToastError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	ToastSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

const (
	maxToasts      = 3
	toastFade      = 200 * time.Millisecond
	shakeDuration  = 300 * time.Millisecond
	shakeAmplitude = 8.0
	flashDuration  = 400 * time.Millisecond
)

var invalidFlash = color.RGBA{255, 80, 80, 150}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}

// Toast is a short message shown over the board.
type Toast struct {
	Message string
	Type    ToastType
	play.Timer
}

// ToastManager keeps the newest few toasts.
type ToastManager struct {
	toasts []Toast
}

// Show queues a message, dropping the oldest beyond maxToasts.
func (tm *ToastManager) Show(message string, kind ToastType, d time.Duration) {
	tm.toasts = append(tm.toasts, Toast{
		Message: message,
		Type:    kind,
		Timer:   play.Timer{Start: time.Now(), Duration: d},
	})
	if extra := len(tm.toasts) - maxToasts; extra > 0 {
		tm.toasts = tm.toasts[extra:]
	}
}

func (tm *ToastManager) prune(now time.Time) {
	tm.toasts = slices.DeleteFunc(tm.toasts, func(t Toast) bool { return !t.Live(now) })
}

// Draw stacks the toasts down from the top of the board.
func (tm *ToastManager) Draw(screen *ebiten.Image, scale float64, now time.Time) {
	face := GetFaceWithSize(defaultFontSize * scale)
	if face == nil {
		return
	}

	pad := 12 * scale
	y := 50 * scale
	for _, t := range tm.toasts {
		alpha := t.Fade(now, toastFade)
		colors := toastPalette[t.Type]

		w, h := MeasureText(t.Message, face)
		boxW, boxH := w+2*pad, h+2*pad
		x := float64(BoardSize)*scale/2 - boxW/2
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), withAlpha(colors[0], alpha), false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+pad, y+pad)
		op.ColorScale.ScaleWithColor(withAlpha(colors[1], alpha))
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*scale
	}
}

// squareEffect is a shake or flash pinned to one square.
type squareEffect struct {
	sq    board.Square
	timer play.Timer
	tint  color.RGBA
}

func pruneEffects(effects []squareEffect, now time.Time) []squareEffect {
	return slices.DeleteFunc(effects, func(e squareEffect) bool { return !e.timer.Live(now) })
}

// AnimationManager runs piece shakes, square flashes and move slides.
type AnimationManager struct {
	shakes  []squareEffect
	flashes []squareEffect
	slides  []play.Slide
}

// StartShake wobbles the piece on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, squareEffect{
		sq:    sq,
		timer: play.Timer{Start: time.Now(), Duration: shakeDuration},
	})
}

// StartFlash tints sq and fades it out.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, squareEffect{
		sq:    sq,
		timer: play.Timer{Start: time.Now(), Duration: flashDuration},
		tint:  c,
	})
}

// StartSlides replaces any running slides.
func (am *AnimationManager) StartSlides(slides []play.Slide) {
	am.slides = slides
}

// ClearSlides stops all slides.
func (am *AnimationManager) ClearSlides() {
	am.slides = nil
}

// Slides returns the slides still in flight.
func (am *AnimationManager) Slides() []play.Slide {
	return am.slides
}

// SlidingTo returns the destination squares of running slides. Pieces on
// them are drawn by the slide instead of in place.
func (am *AnimationManager) SlidingTo() map[board.Square]bool {
	if len(am.slides) == 0 {
		return nil
	}
	hidden := make(map[board.Square]bool, len(am.slides))
	for _, s := range am.slides {
		hidden[s.To] = true
	}
	return hidden
}

// Update drops finished animations.
func (am *AnimationManager) Update(now time.Time) {
	am.shakes = pruneEffects(am.shakes, now)
	am.flashes = pruneEffects(am.flashes, now)
	// Slides of one move share a timer.
	if len(am.slides) > 0 && am.slides[0].Done(now) {
		am.slides = nil
	}
}

// ShakeOffset returns the horizontal offset of the piece on sq.
func (am *AnimationManager) ShakeOffset(sq board.Square, now time.Time) float64 {
	for _, s := range am.shakes {
		if s.sq == sq {
			return play.Shake(s.timer.Progress(now), shakeAmplitude)
		}
	}
	return 0
}

// DrawFlashes paints the fading square tints.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer, now time.Time) {
	size := r.SquareSize()
	for _, f := range am.flashes {
		x, y := r.SquareToScreen(f.sq)
		c := withAlpha(f.tint, 1-f.timer.Progress(now))
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(size), r.s(size), c, false)
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

func NewFeedbackManager(soundEnabled bool) *FeedbackManager {
	fm := &FeedbackManager{
		toasts:     &ToastManager{},
		animations: &AnimationManager{},
		audio:      NewAudioManager(),
	}
	fm.audio.SetEnabled(soundEnabled)
	return fm
}

func (fm *FeedbackManager) Update() {
	now := time.Now()
	fm.toasts.prune(now)
	fm.animations.Update(now)
}

// Draw paints flashes under the toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	now := time.Now()
	fm.animations.DrawFlashes(screen, r, now)
	fm.toasts.Draw(screen, r.scale, now)
}

func (fm *FeedbackManager) Animations() *AnimationManager { return fm.animations }
func (fm *FeedbackManager) Toasts() *ToastManager         { return fm.toasts }
func (fm *FeedbackManager) Audio() *AudioManager          { return fm.audio }

// OnInvalidMove shakes the piece, flashes the target and says why.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, reason play.Reason) {
	fm.toasts.Show(reason.Message(), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, invalidFlash)
	fm.audio.Play(SoundInvalid)
}

func (fm *FeedbackManager) OnCheck() {
	fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
	fm.audio.Play(SoundCheck)
}

// OnGameEnd announces the result.
func (fm *FeedbackManager) OnGameEnd(outcome board.Outcome, method board.Method) {
	msg, kind := "Game over: "+outcome.String(), ToastInfo
	switch method {
	case board.Checkmate:
		msg, kind = "Checkmate! "+outcome.Winner().String()+" wins!", ToastSuccess
	case board.Stalemate:
		msg = "Stalemate - Draw"
	}
	fm.toasts.Show(msg, kind, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// OnMoveMade plays the sound for a successful move.
func (fm *FeedbackManager) OnMoveMade(m board.Move) {
	sound := SoundMove
	switch {
	case m.IsCastling:
		sound = SoundCastle
	case m.IsCapture():
		sound = SoundCapture
	}
	fm.audio.Play(sound)
}
