// Package ui implements the chess game UI using Ebitengine.
package ui

import (
	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/ui/glyph"
)

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
	scale       float64 // HiDPI scale factor
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int, log logr.Logger) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	sm.loadPieces(log)
	return sm
}

// GetPiece returns the sprite for a piece. The moved flag is ignored.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[board.NewPiece(p.Type, p.Color)]
}

// loadPieces rasterizes every piece at render resolution.
func (sm *SpriteManager) loadPieces(log logr.Logger) {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.King; pt <= board.Pawn; pt++ {
			piece := board.NewPiece(pt, c)
			rgba, err := glyph.Rasterize(piece, renderSize)
			if err != nil {
				log.Error(err, "[SPRITES] failed to render piece", "piece", piece.String())
				continue
			}
			sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
		}
	}
	log.V(1).Info("[SPRITES] pieces loaded", "count", len(sm.pieces), "px", renderSize)
}

// DrawPieceAt draws a piece with its top-left corner at the given
// (already scaled) pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	if p.IsEmpty() {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := sm.scale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// SetScale sets the HiDPI scale factor.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
