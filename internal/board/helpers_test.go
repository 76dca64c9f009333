package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fromDiagram builds a position from eight ranks, rank 8 first. Letters are
// pieces (uppercase White) and '.' is an empty square. Every piece starts
// unmoved except those on the squares named in moved.
func fromDiagram(t testing.TB, ranks [8]string, turn Color, moved ...string) *Position {
	t.Helper()

	pos := &Position{sideToMove: turn, enPassant: NoSquare}
	for row, line := range ranks {
		require.Len(t, line, 8, "rank %d", 8-row)
		for col := 0; col < 8; col++ {
			ch := line[col]
			if ch == '.' {
				continue
			}
			pt := PieceTypeFromChar(ch)
			require.NotEqual(t, NoPieceType, pt, "unknown piece %q", ch)
			c := Black
			if ch >= 'A' && ch <= 'Z' {
				c = White
			}
			pos.grid[row][col] = NewPiece(pt, c)
		}
	}
	for _, name := range moved {
		sq := mustSquare(t, name)
		require.False(t, pos.grid.At(sq).IsEmpty(), "no piece on %s", name)
		pos.grid[sq.Row][sq.Col].HasMoved = true
	}
	return pos
}

// gameFrom wraps pos in a Game built with the given options.
func gameFrom(pos *Position, options ...func(*Game)) *Game {
	g := NewGame(options...)
	pos.lenientCastling = g.lenientCastling
	g.pos = pos
	g.evaluatePositionStatus()
	return g
}

func mustSquare(t testing.TB, name string) Square {
	t.Helper()
	sq, err := ParseSquare(name)
	require.NoError(t, err)
	return sq
}

func squares(t testing.TB, names ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(names))
	for _, name := range names {
		out = append(out, mustSquare(t, name))
	}
	return out
}

// play makes each coordinate move ("e2e4", "e7e8n") and fails on the
// first rejection.
func play(t testing.TB, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		require.True(t, len(mv) == 4 || len(mv) == 5, "bad move %q", mv)
		promo := NoPieceType
		if len(mv) == 5 {
			promo = PieceTypeFromChar(mv[4])
		}
		err := g.Move(mustSquare(t, mv[:2]), mustSquare(t, mv[2:4]), promo)
		require.NoError(t, err, "move %s\n%s", mv, g.Position())
	}
}
