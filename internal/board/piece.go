package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the row delta of a pawn advance for the color.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// homeRow is the back rank of the color.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnRow is the rank pawns of the color start on.
func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// promotionRow is the far rank for the color's pawns.
func (c Color) promotionRow() int {
	return c.Other().homeRow()
}

// PieceType represents the type of a chess piece.
// The zero value is NoPieceType so that an empty grid cell is the zero Piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the lowercase letter for the piece type.
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'k', 'q', 'r', 'b', 'n', 'p'}
	if pt > Pawn {
		return ' '
	}
	return chars[pt]
}

// PieceTypeFromChar converts a letter (either case) to a PieceType.
func PieceTypeFromChar(c byte) PieceType {
	switch c | 0x20 {
	case 'k':
		return King
	case 'q':
		return Queen
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 'n':
		return Knight
	case 'p':
		return Pawn
	default:
		return NoPieceType
	}
}

// valid reports whether pt names one of the six piece types.
func (pt PieceType) valid() bool {
	return pt >= King && pt <= Pawn
}

// Piece is a chess piece on the grid. The zero value, NoPiece, is an empty cell.
type Piece struct {
	Type     PieceType
	Color    Color
	HasMoved bool
}

// NoPiece represents an empty square.
var NoPiece = Piece{}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece{Type: pt, Color: c}
}

// IsEmpty returns true if the piece is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// String returns the letter for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	ch := p.Type.Char()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}
