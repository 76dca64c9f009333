package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshGameKing(t *testing.T) {
	g := NewGame()

	king, ok := g.PieceAt(Sq(7, 4))
	require.True(t, ok)
	assert.Equal(t, Piece{Type: King, Color: White, HasMoved: false}, king)
	assert.Empty(t, g.LegalMoves(Sq(7, 4)))
}

func TestFreshGamePawn(t *testing.T) {
	g := NewGame()
	assert.Equal(t, []Square{Sq(5, 4), Sq(4, 4)}, g.LegalMoves(Sq(6, 4)))
}

func TestFreshGameMoveCount(t *testing.T) {
	g := NewGame()

	total := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			total += len(g.LegalMoves(Sq(row, col)))
		}
	}
	assert.Equal(t, 20, total)
	assert.Empty(t, g.LegalMoves(Sq(1, 4)), "black pawn while White is to move")
	assert.Empty(t, g.LegalMoves(Sq(4, 4)), "empty square")
	assert.Empty(t, g.LegalMoves(NoSquare))
}

func TestPawnMoveOrder(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"...r.b..",
		"....P...",
		"....K...",
	}, White)

	assert.Equal(t, squares(t, "e3", "e4", "d3", "f3"), pos.LegalMoves(mustSquare(t, "e2")))
}

func TestPawnBlocked(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"....n...",
		"........",
		"P...P...",
		"....K...",
	}, White)

	// e2 is stopped short of the knight on e4.
	assert.Equal(t, squares(t, "e3"), pos.LegalMoves(mustSquare(t, "e2")))
	assert.Equal(t, squares(t, "a3", "a4"), pos.LegalMoves(mustSquare(t, "a2")))
}

func TestBlackPawnMovesDown(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"...p....",
		"..P.....",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	}, Black)

	assert.Equal(t, squares(t, "d6", "d5", "c6"), pos.LegalMoves(mustSquare(t, "d7")))
}

func TestKnightFromCorner(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"..P.....",
		"N...K...",
	}, White)

	assert.Equal(t, squares(t, "b3"), pos.LegalMoves(mustSquare(t, "a1")))
}

func TestSlidingStopsAtFirstPiece(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"P.......",
		"........",
		"R..n...K",
	}, White)

	assert.Equal(t, squares(t, "a2", "b1", "c1", "d1"), pos.LegalMoves(mustSquare(t, "a1")))
}

func TestQueenUnionOfRookAndBishop(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		".......k",
		"........",
		"........",
		"...Q....",
		"........",
		"........",
		"........",
		"K.......",
	}, White)

	d5 := mustSquare(t, "d5")
	rookLike := fromDiagram(t, [8]string{
		".......k",
		"........",
		"........",
		"...R....",
		"........",
		"........",
		"........",
		"K.......",
	}, White).LegalMoves(d5)
	bishopLike := fromDiagram(t, [8]string{
		".......k",
		"........",
		"........",
		"...B....",
		"........",
		"........",
		"........",
		"K.......",
	}, White).LegalMoves(d5)

	assert.ElementsMatch(t, append(rookLike, bishopLike...), pos.LegalMoves(d5))
	assert.Len(t, pos.LegalMoves(d5), 27)
}

func TestAttackModeSkipsCastling(t *testing.T) {
	pos := fromDiagram(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K..R",
	}, White)

	e1 := mustSquare(t, "e1")
	full := pos.pseudoLegalMoves(e1, genFull)
	attacks := pos.pseudoLegalMoves(e1, genAttacks)

	assert.Contains(t, full, mustSquare(t, "g1"))
	assert.Contains(t, full, mustSquare(t, "c1"))
	assert.NotContains(t, attacks, mustSquare(t, "g1"))
	assert.NotContains(t, attacks, mustSquare(t, "c1"))
	assert.Len(t, attacks, len(full)-2)
}

func TestCastlingRequirements(t *testing.T) {
	tests := []struct {
		name  string
		ranks [8]string
		moved []string
		want  []string
		never []string
	}{
		{
			name: "both sides",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			want: []string{"g1", "c1"},
		},
		{
			name: "king moved",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			moved: []string{"e1"},
			never: []string{"g1", "c1"},
		},
		{
			name: "kingside rook moved",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			moved: []string{"h1"},
			want:  []string{"c1"},
			never: []string{"g1"},
		},
		{
			name: "path blocked",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "RN..K.NR",
			},
			never: []string{"g1", "c1"},
		},
		{
			name: "no rook",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "....K...",
			},
			never: []string{"g1", "c1"},
		},
		{
			name: "enemy rook in the corner",
			ranks: [8]string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "r...K..r",
			},
			never: []string{"g1", "c1"},
		},
		{
			name: "king in check",
			ranks: [8]string{
				"....r..k", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			never: []string{"g1", "c1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := fromDiagram(t, tc.ranks, White, tc.moved...)
			moves := pos.LegalMoves(mustSquare(t, "e1"))
			for _, sq := range tc.want {
				assert.Contains(t, moves, mustSquare(t, sq))
			}
			for _, sq := range tc.never {
				assert.NotContains(t, moves, mustSquare(t, sq))
			}
		})
	}
}

func TestCastlingOnlyFromHomeSquare(t *testing.T) {
	// Unmoved king and rooks, but the king stands on d1.
	pos := fromDiagram(t, [8]string{
		"....k...", "........", "........", "........",
		"........", "........", "........", "R..K...R",
	}, White)
	d1 := mustSquare(t, "d1")

	moves := pos.LegalMoves(d1)
	assert.NotContains(t, moves, mustSquare(t, "g1"))
	assert.NotContains(t, moves, mustSquare(t, "f1"))

	// c1 is an ordinary king step and leaves the rook alone.
	g := gameFrom(pos)
	require.True(t, g.AttemptMove(d1, mustSquare(t, "c1")))
	last, _ := g.LastMove()
	assert.False(t, last.IsCastling)
	rook, ok := g.PieceAt(mustSquare(t, "a1"))
	require.True(t, ok)
	assert.Equal(t, Rook, rook.Type)
}
