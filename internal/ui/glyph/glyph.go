// Package glyph draws the chess piece artwork. Pieces are generated as SVG
// and rasterized in memory, so the client ships without image assets.
package glyph

import (
	"bytes"
	"fmt"
	"image"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessgrid/internal/board"
)

// ViewSize is the side of the square SVG canvas every piece is drawn on.
const ViewSize = 90

// styles returns the body and detail styles for a color.
func styles(c board.Color) (body, detail string) {
	const outline = "stroke:#1a1a1a;stroke-width:3;stroke-linejoin:round"
	if c == board.White {
		return "fill:#f8f8f8;" + outline, "fill:#1a1a1a;stroke:#1a1a1a;stroke-width:2"
	}
	return "fill:#303030;" + outline, "fill:#e8e8e8;stroke:#e8e8e8;stroke-width:2"
}

// SVG returns the SVG document for p.
func SVG(p board.Piece) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(ViewSize, ViewSize, 0, 0, ViewSize, ViewSize)

	body, detail := styles(p.Color)
	switch p.Type {
	case board.Pawn:
		canvas.Polygon([]int{33, 38, 52, 57}, []int{68, 42, 42, 68}, body)
		canvas.Circle(45, 30, 11, body)
	case board.Knight:
		canvas.Path("M 28 68 L 30 50 C 20 46 18 36 28 28 L 32 14 L 40 22 C 58 22 68 38 64 68 Z", body)
		canvas.Circle(36, 32, 3, detail)
	case board.Bishop:
		canvas.Ellipse(45, 48, 14, 20, body)
		canvas.Circle(45, 20, 6, body)
		canvas.Line(40, 40, 50, 50, detail)
	case board.Rook:
		canvas.Polygon(
			[]int{22, 30, 30, 40, 40, 50, 50, 60, 60, 68, 68, 22},
			[]int{16, 16, 22, 22, 16, 16, 22, 22, 16, 16, 30, 30},
			body)
		canvas.Rect(28, 30, 34, 38, body)
	case board.Queen:
		canvas.Polygon(
			[]int{20, 28, 32, 39, 45, 51, 58, 62, 70, 64, 26},
			[]int{28, 48, 22, 46, 18, 46, 22, 48, 28, 68, 68},
			body)
		for _, tip := range [][2]int{{20, 28}, {32, 22}, {45, 18}, {58, 22}, {70, 28}} {
			canvas.Circle(tip[0], tip[1], 4, body)
		}
	case board.King:
		canvas.Polygon([]int{26, 22, 45, 68, 64}, []int{68, 44, 34, 44, 68}, body)
		canvas.Rect(42, 8, 6, 24, body)
		canvas.Rect(35, 14, 20, 6, body)
	}
	// Pedestal shared by every piece.
	canvas.Roundrect(18, 68, 54, 12, 3, 3, body)

	canvas.End()
	return buf.Bytes()
}

// Rasterize renders p into a size x size RGBA image with anti-aliasing.
func Rasterize(p board.Piece, size int) (*image.RGBA, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("rasterize: empty piece")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(p)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.Type, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}
