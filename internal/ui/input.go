package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// buttonState is one frame's view of a mouse button.
type buttonState struct {
	down, pressed, released bool
}

func sampleButton(b ebiten.MouseButton) buttonState {
	return buttonState{
		down:     ebiten.IsMouseButtonPressed(b),
		pressed:  inpututil.IsMouseButtonJustPressed(b),
		released: inpututil.IsMouseButtonJustReleased(b),
	}
}

// InputHandler is a per-frame snapshot of the mouse and keyboard. The cursor
// is kept in logical (unscaled) pixels.
type InputHandler struct {
	cursor image.Point
	wheel  float64
	left   buttonState
	keys   []ebiten.Key
}

func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the devices. Call it once at the top of every frame.
func (ih *InputHandler) Update(scale float64) {
	scale = max(scale, 1)
	x, y := ebiten.CursorPosition()
	ih.cursor = image.Pt(int(float64(x)/scale), int(float64(y)/scale))
	_, ih.wheel = ebiten.Wheel()
	ih.left = sampleButton(ebiten.MouseButtonLeft)
	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])
}

func (ih *InputHandler) MousePosition() (int, int) { return ih.cursor.X, ih.cursor.Y }
func (ih *InputHandler) WheelY() float64           { return ih.wheel }
func (ih *InputHandler) IsLeftJustPressed() bool   { return ih.left.pressed }
func (ih *InputHandler) IsLeftJustReleased() bool  { return ih.left.released }
func (ih *InputHandler) IsLeftPressed() bool       { return ih.left.down }

// KeysJustPressed returns the keys that went down this frame. The slice is
// reused by the next Update.
func (ih *InputHandler) KeysJustPressed() []ebiten.Key {
	return ih.keys
}
