package board

import (
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKingsideCastling(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5")

	e1, g1 := mustSquare(t, "e1"), mustSquare(t, "g1")
	require.Contains(t, g.LegalMoves(e1), g1)
	require.True(t, g.AttemptMove(e1, g1))

	king, ok := g.PieceAt(g1)
	require.True(t, ok)
	assert.Equal(t, King, king.Type)
	assert.True(t, king.HasMoved)

	rook, ok := g.PieceAt(mustSquare(t, "f1"))
	require.True(t, ok)
	assert.Equal(t, Rook, rook.Type)
	assert.True(t, rook.HasMoved, "castled rook is marked as moved")

	_, ok = g.PieceAt(mustSquare(t, "h1"))
	assert.False(t, ok)

	last, ok := g.LastMove()
	require.True(t, ok)
	assert.True(t, last.IsCastling)
	assert.False(t, last.IsCapture())
	assert.Equal(t, "e1g1", last.String())
}

func TestQueensideCastling(t *testing.T) {
	g := gameFrom(fromDiagram(t, [8]string{
		".r..k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	}, White))

	// b1 is attacked but the king never crosses it.
	require.True(t, g.AttemptMove(mustSquare(t, "e1"), mustSquare(t, "c1")))

	board := g.Board()
	assert.Equal(t, King, board.At(mustSquare(t, "c1")).Type)
	assert.Equal(t, Rook, board.At(mustSquare(t, "d1")).Type)
	assert.True(t, board.At(mustSquare(t, "d1")).HasMoved)
	assert.True(t, board.At(mustSquare(t, "a1")).IsEmpty())
}

func TestCastlingThroughAttackedSquare(t *testing.T) {
	ranks := [8]string{
		"....kr..",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K..R",
	}
	e1, g1 := mustSquare(t, "e1"), mustSquare(t, "g1")

	t.Run("standard", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White))
		assert.NotContains(t, g.LegalMoves(e1), g1)
		assert.ErrorIs(t, g.Move(e1, g1, NoPieceType), ErrIllegalMove)
	})

	t.Run("lenient", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White), CastleThroughAttackedSquares())
		assert.Contains(t, g.LegalMoves(e1), g1)
		require.NoError(t, g.Move(e1, g1, NoPieceType))
		board := g.Board()
		assert.Equal(t, Rook, board.At(mustSquare(t, "f1")).Type)
	})

	t.Run("lenient still refuses check", func(t *testing.T) {
		checked := ranks
		checked[0] = "....r..k"
		g := gameFrom(fromDiagram(t, checked, White), CastleThroughAttackedSquares())
		assert.NotContains(t, g.LegalMoves(e1), g1)
	})

	t.Run("lenient refuses attacked landing square", func(t *testing.T) {
		landing := ranks
		landing[0] = "....k.r."
		g := gameFrom(fromDiagram(t, landing, White), CastleThroughAttackedSquares())
		assert.NotContains(t, g.LegalMoves(e1), g1)
	})
}

func TestEnPassant(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")
	require.Equal(t, mustSquare(t, "d6"), g.Position().EnPassant())

	require.True(t, g.AttemptMove(mustSquare(t, "e5"), mustSquare(t, "d6")))

	_, ok := g.PieceAt(mustSquare(t, "d5"))
	assert.False(t, ok, "captured pawn removed from beside the destination")

	last, _ := g.LastMove()
	assert.True(t, last.IsEnPassant)
	assert.Equal(t, Piece{Type: Pawn, Color: Black, HasMoved: true}, last.Captured)
	assert.Equal(t, NoSquare, g.Position().EnPassant())
	board := g.Board()
	assert.Equal(t, 31, board.Count())
}

func TestEnPassantExpires(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "g1f3", "a6a5")

	before := g.Board()
	assert.False(t, g.AttemptMove(mustSquare(t, "e5"), mustSquare(t, "d6")))
	assert.Equal(t, before, g.Board())
	assert.Equal(t, White, g.Turn())
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	assert.True(t, g.Finished())
	assert.Equal(t, BlackWon, g.Outcome())
	assert.Equal(t, Black, g.Outcome().Winner())
	assert.Equal(t, Checkmate, g.Method())
	assert.True(t, g.InCheck(White))

	// Nothing moves once the game is over.
	before, history := g.Board(), g.History()
	assert.False(t, g.AttemptMove(mustSquare(t, "a2"), mustSquare(t, "a3")))
	assert.ErrorIs(t, g.Move(mustSquare(t, "a2"), mustSquare(t, "a3"), NoPieceType), ErrGameOver)
	assert.Equal(t, before, g.Board())
	assert.Equal(t, history, g.History())
	assert.Equal(t, White, g.Turn())
	assert.Empty(t, g.LegalMoves(mustSquare(t, "a2")))
}

func TestStalemate(t *testing.T) {
	g := NewGame()
	play(t, g,
		"e2e3", "a7a5",
		"d1h5", "a8a6",
		"h5a5", "h7h5",
		"h2h4", "a6h6",
		"a5c7", "f7f6",
		"c7d7", "e8f7",
		"d7b7", "d8d3",
		"b7b8", "d3h7",
		"b8c8", "f7g6",
	)
	require.False(t, g.Finished())
	play(t, g, "c8e6")

	assert.True(t, g.Finished())
	assert.Equal(t, Draw, g.Outcome())
	assert.Equal(t, NoColor, g.Outcome().Winner())
	assert.Equal(t, Stalemate, g.Method())
	assert.False(t, g.InCheck(Black))
}

func TestStalemateFromDiagram(t *testing.T) {
	g := gameFrom(fromDiagram(t, [8]string{
		"k.......",
		"........",
		".Q......",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	}, White))
	require.False(t, g.Finished())

	// Qb6-c7 leaves the black king on a8 without a move.
	play(t, g, "b6c7")
	assert.Equal(t, Draw, g.Outcome())
	assert.Equal(t, Stalemate, g.Method())
}

func TestPromotion(t *testing.T) {
	ranks := [8]string{
		".......k",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	}
	a7, a8 := mustSquare(t, "a7"), mustSquare(t, "a8")

	t.Run("defaults to queen", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White))
		require.True(t, g.AttemptMove(a7, a8))

		p, ok := g.PieceAt(a8)
		require.True(t, ok)
		assert.Equal(t, Piece{Type: Queen, Color: White, HasMoved: true}, p)

		last, _ := g.LastMove()
		assert.Equal(t, Queen, last.Promotion)
		assert.Equal(t, Pawn, last.Piece.Type)
		assert.Equal(t, "a7a8q", last.String())
		assert.True(t, g.InCheck(Black))
	})

	t.Run("underpromotion", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White))
		require.True(t, g.AttemptMove(a7, a8, Knight))
		p, _ := g.PieceAt(a8)
		assert.Equal(t, Knight, p.Type)
		assert.False(t, g.InCheck(Black))
	})

	t.Run("any piece type is taken as given", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White))
		require.True(t, g.AttemptMove(a7, a8, King))
		p, _ := g.PieceAt(a8)
		assert.Equal(t, King, p.Type)
		last, _ := g.LastMove()
		assert.Equal(t, "a7a8k", last.String())
	})

	t.Run("unknown piece type", func(t *testing.T) {
		g := gameFrom(fromDiagram(t, ranks, White))
		before := g.Board()
		assert.ErrorIs(t, g.Move(a7, a8, PieceType(42)), ErrInvalidPromotion)
		assert.Equal(t, before, g.Board())
		assert.Empty(t, g.History())
	})

	t.Run("ignored without promotion", func(t *testing.T) {
		g := NewGame()
		require.True(t, g.AttemptMove(mustSquare(t, "e2"), mustSquare(t, "e4"), King))
		p, _ := g.PieceAt(mustSquare(t, "e4"))
		assert.Equal(t, Pawn, p.Type)
	})
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name     string
		from, to Square
		want     error
	}{
		{"empty square", Sq(4, 4), Sq(3, 4), ErrNoPiece},
		{"off board", NoSquare, Sq(3, 4), ErrNoPiece},
		{"wrong color", Sq(1, 4), Sq(3, 4), ErrNotYourTurn},
		{"illegal pawn jump", Sq(6, 4), Sq(3, 4), ErrIllegalMove},
		{"off board destination", Sq(6, 4), Sq(8, 4), ErrIllegalMove},
		{"onto own piece", Sq(7, 0), Sq(6, 0), ErrIllegalMove},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGame()
			err := g.Move(tc.from, tc.to, NoPieceType)
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, g.AttemptMove(tc.from, tc.to))
			assert.Equal(t, White, g.Turn())
			assert.Equal(t, StartingGrid(), g.Board())
			assert.Empty(t, g.History())
		})
	}
}

func TestTurnAlternates(t *testing.T) {
	g := NewGame()
	assert.Equal(t, White, g.Turn())
	play(t, g, "e2e4")
	assert.Equal(t, Black, g.Turn())
	assert.False(t, g.AttemptMove(mustSquare(t, "e4"), mustSquare(t, "e5")))
	assert.Equal(t, Black, g.Turn())
	play(t, g, "e7e5")
	assert.Equal(t, White, g.Turn())
}

func TestSnapshotsAreCopies(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "e7e5")

	board := g.Board()
	board[7][4] = NoPiece
	_, ok := g.PieceAt(Sq(7, 4))
	assert.True(t, ok)

	history := g.History()
	require.Len(t, history, 2)
	history[0].From = NoSquare
	assert.Equal(t, "e2e4", g.History()[0].String())

	pos := g.Position()
	pos.apply(Sq(6, 3), Sq(4, 3), NoPieceType)
	assert.Equal(t, White, g.Turn())
	_, ok = g.PieceAt(Sq(4, 3))
	assert.False(t, ok)
}

func TestHistoryRecords(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "d7d5", "e4d5")

	history := g.History()
	require.Len(t, history, 3)
	assert.Equal(t, Piece{Type: Pawn, Color: White}, history[0].Piece, "snapshot taken before the move")
	assert.Equal(t, Piece{Type: Pawn, Color: Black, HasMoved: true}, history[2].Captured)
	assert.True(t, history[2].IsCapture())
	board := g.Board()
	assert.Equal(t, 31, board.Count())
}

func TestReset(t *testing.T) {
	g := NewGame(CastleThroughAttackedSquares())
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	require.True(t, g.Finished())

	g.Reset()
	assert.False(t, g.Finished())
	assert.Equal(t, NoOutcome, g.Outcome())
	assert.Equal(t, NoMethod, g.Method())
	assert.Equal(t, White, g.Turn())
	assert.Equal(t, StartingGrid(), g.Board())
	assert.Empty(t, g.History())
	assert.Equal(t, NoSquare, g.Position().EnPassant())
	assert.True(t, g.pos.lenientCastling)
	_, ok := g.LastMove()
	assert.False(t, ok)
}

func TestKingSquare(t *testing.T) {
	g := NewGame()
	sq, ok := g.KingSquare(Black)
	require.True(t, ok)
	assert.Equal(t, mustSquare(t, "e8"), sq)
	assert.False(t, g.InCheck(White))
}

func TestLogsMovesAndResult(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	g := NewGame(WithLogger(log))
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	g.AttemptMove(Sq(6, 0), Sq(5, 0))

	joined := ""
	for _, l := range lines {
		joined += l + "\n"
	}
	assert.Contains(t, joined, `"msg"="[MOVE]"`)
	assert.Contains(t, joined, `"move"="d8h4"`)
	assert.Contains(t, joined, `"outcome"="0-1"`)
	assert.Contains(t, joined, `"msg"="[MOVE] rejected"`)
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "*", NoOutcome.String())
	assert.Equal(t, "1-0", WhiteWon.String())
	assert.Equal(t, White, WhiteWon.Winner())
	assert.Equal(t, NoColor, NoOutcome.Winner())
	assert.Equal(t, "Checkmate", Checkmate.String())
	assert.Equal(t, "Stalemate", Stalemate.String())
}
