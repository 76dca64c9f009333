package ui

import (
	"image/color"
	"time"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/ui/play"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
	}
}

// Renderer handles all board drawing. Coordinates handed to it are logical
// and scaled here for HiDPI.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	geo     play.Geometry
	scale   float64
}

// NewRenderer creates a new renderer.
func NewRenderer(squareSize int, log logr.Logger) *Renderer {
	return &Renderer{
		sprites: NewSpriteManager(squareSize, log),
		theme:   DefaultTheme(),
		geo:     play.Geometry{SquareSize: squareSize},
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped puts Black at the bottom of the board when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.geo.Flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.geo.Flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the squares and the coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := r.geo.SquareSize
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			vector.DrawFilledRect(screen, r.s(col*size), r.s(row*size), r.s(size), r.s(size), c, false)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates puts file letters along the bottom edge and rank digits
// along the left edge, in the contrasting square color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(11 * r.scale)
	if face == nil {
		return
	}
	size := r.geo.SquareSize
	for i := 0; i < 8; i++ {
		// Bottom row squares are light on odd columns.
		fileColor := r.theme.LightSquare
		if i%2 == 1 {
			fileColor = r.theme.DarkSquare
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s((i+1)*size-10)), float64(r.s(8*size-16)))
		op.ColorScale.ScaleWithColor(fileColor)
		text.Draw(screen, r.geo.FileLabel(i), face, op)

		rankColor := r.theme.DarkSquare
		if i%2 == 1 {
			rankColor = r.theme.LightSquare
		}
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(3)), float64(r.s(i*size+2)))
		op.ColorScale.ScaleWithColor(rankColor)
		text.Draw(screen, r.geo.RankLabel(i), face, op)
	}
}

// DrawHighlights draws the last move, the selection and, when hints are on,
// the legal destinations.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, legal []board.Square, last board.Move, hasLast bool) {
	if hasLast {
		r.highlightSquare(screen, last.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To, r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, sq := range legal {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king's square.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.OnBoard() {
		return
	}
	x, y := r.geo.SquareToScreen(sq)
	size := r.geo.SquareSize
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(size), r.s(size), c, false)
}

// drawLegalMoveIndicator draws a dot centered on sq.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.geo.SquareToScreen(sq)
	size := r.s(r.geo.SquareSize)
	cx := r.s(x) + size/2
	cy := r.s(y) + size/2
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece on grid except those on hidden squares.
// Shaking pieces are offset by the animation manager.
func (r *Renderer) DrawPieces(screen *ebiten.Image, grid board.Grid, hidden map[board.Square]bool, anims *AnimationManager) {
	now := time.Now()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.Sq(row, col)
			piece := grid.At(sq)
			if piece.IsEmpty() || hidden[sq] {
				continue
			}

			x, y := r.geo.SquareToScreen(sq)
			fx := float64(x)
			if anims != nil {
				fx += anims.ShakeOffset(sq, now)
			}
			r.sprites.DrawPieceAt(screen, piece, fx*r.scale, float64(y)*r.scale)
		}
	}
}

// DrawSlides draws the pieces that are still travelling.
func (r *Renderer) DrawSlides(screen *ebiten.Image, slides []play.Slide, now time.Time) {
	for _, s := range slides {
		x, y := s.Point(r.geo, now)
		r.sprites.DrawPieceAt(screen, s.Piece, x*r.scale, y*r.scale)
	}
}

// DrawDraggedPiece draws the piece being dragged centered on the cursor.
// mouseX, mouseY are in logical coordinates.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	half := float64(r.geo.SquareSize) / 2
	x := (float64(mouseX) - half) * r.scale
	y := (float64(mouseY) - half) * r.scale
	r.sprites.DrawPieceAt(screen, piece, x, y)
}

// SquareToScreen converts a board square to logical screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return r.geo.SquareToScreen(sq)
}

// ScreenToSquare converts logical screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	return r.geo.ScreenToSquare(x, y)
}

// Geometry returns the square/pixel mapping in use.
func (r *Renderer) Geometry() play.Geometry {
	return r.geo
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.geo.SquareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
