package ui

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/storage"
	"github.com/hailam/chessgrid/internal/ui/play"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// Game implements ebiten.Game on top of a rules engine session. Both
// players move from the same mouse.
type Game struct {
	game *board.Game
	log  logr.Logger

	// Storage, nil when running without persistence
	store    *storage.Storage
	prefs    *storage.UserPreferences
	stats    *storage.GameStats
	started  time.Time
	recorded bool

	// UI state
	selectedSquare board.Square
	legalMoves     []board.Square
	dragging       bool
	dragPiece      board.Piece
	dragSquare     board.Square

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	// HiDPI scaling
	scale float64
}

// NewGame creates the desktop client. store may be nil.
func NewGame(store *storage.Storage, log logr.Logger) *Game {
	g := &Game{
		log:            log,
		store:          store,
		selectedSquare: board.NoSquare,
		dragSquare:     board.NoSquare,
		input:          NewInputHandler(),
		scale:          1.0,
	}
	if err := loadFonts(); err != nil {
		log.Error(err, "[UI] fonts unavailable, text will not be drawn")
	}

	g.loadPreferences()
	g.loadStats()

	g.game = board.NewGame(append(g.prefs.GameOptions(), board.WithLogger(log))...)
	g.renderer = NewRenderer(SquareSize, log)
	g.renderer.SetFlipped(g.prefs.FlipBoard)
	g.feedback = NewFeedbackManager(g.prefs.SoundEnabled)
	g.panel = NewPanel(g)
	g.started = time.Now()

	g.checkFirstLaunch()
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	if g.store == nil {
		return
	}
	prefs, err := g.store.LoadPreferences()
	if err != nil {
		g.log.Error(err, "[UI] failed to load preferences, using defaults")
		return
	}
	g.prefs = prefs
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.LastPlayed = time.Now()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		g.log.Error(err, "[UI] failed to save preferences")
	}
}

func (g *Game) loadStats() {
	g.stats = storage.NewGameStats()
	if g.store == nil {
		return
	}
	stats, err := g.store.LoadStats()
	if err != nil {
		g.log.Error(err, "[UI] failed to load statistics")
		return
	}
	g.stats = stats
}

// checkFirstLaunch greets a new player with the controls.
func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	isFirst, err := g.store.IsFirstLaunch()
	if err != nil {
		g.log.Error(err, "[UI] failed to check first launch")
		return
	}
	if !isFirst {
		return
	}

	g.feedback.Toasts().Show("Welcome! Drag or click pieces to move", ToastInfo, 6*time.Second)
	g.feedback.Toasts().Show("N new game, F flip, H hints, S sound", ToastInfo, 6*time.Second)
	if err := g.store.MarkFirstLaunchComplete(); err != nil {
		g.log.Error(err, "[UI] failed to mark first launch complete")
	}
	g.savePreferences()
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update(g.scale)
	g.feedback.Update()
	g.handleKeys()

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.updateCursor()
	return nil
}

func (g *Game) handleKeys() {
	for _, key := range g.input.KeysJustPressed() {
		switch key {
		case ebiten.KeyN:
			g.NewGameAction()
		case ebiten.KeyF:
			g.ToggleFlipAction()
		case ebiten.KeyH:
			g.ToggleHintsAction()
		case ebiten.KeyS:
			g.ToggleSoundAction()
		case ebiten.KeyEscape:
			g.clearSelection()
		}
	}
}

func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	turn := g.game.Turn()
	if g.game.InCheck(turn) {
		if kingSq, ok := g.game.KingSquare(turn); ok {
			g.renderer.DrawCheck(screen, kingSq)
		}
	}

	var hints []board.Square
	if g.prefs.ShowHints {
		hints = g.legalMoves
	}
	last, hasLast := g.game.LastMove()
	g.renderer.DrawHighlights(screen, g.selectedSquare, hints, last, hasLast)

	anims := g.feedback.Animations()
	hidden := anims.SlidingTo()
	if g.dragging {
		if hidden == nil {
			hidden = make(map[board.Square]bool, 1)
		}
		hidden[g.dragSquare] = true
	}
	g.renderer.DrawPieces(screen, g.game.Board(), hidden, anims)
	g.renderer.DrawSlides(screen, anims.Slides(), time.Now())

	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 2.0 on Retina, 1.0 on standard displays
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}

	if g.panel != nil && g.panel.Collapsed() {
		return int(float64(BoardSize+CollapsedWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()

	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			return
		}
		if g.game.Finished() {
			g.feedback.Toasts().Show(play.ReasonGameOver.Message(), ToastInfo, 2*time.Second)
			return
		}

		piece, occupied := g.game.PieceAt(sq)
		if occupied && piece.Color == g.game.Turn() {
			g.selectSquare(sq)
			g.startDrag(sq, piece)
			return
		}

		if g.selectedSquare != board.NoSquare {
			if _, ok := play.ResolveDrop(g.game.Position(), g.selectedSquare, sq, g.legalMoves); ok {
				g.attemptMove(g.selectedSquare, sq)
				return
			}
		} else if occupied {
			g.feedback.OnInvalidMove(sq, sq, play.ReasonNotYourTurn)
		}
		g.clearSelection()
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		target := g.renderer.ScreenToSquare(mx, my)
		switch target {
		case g.dragSquare:
			// Dropped back in place: keep the selection for click-to-move.
			g.dragging = false
		case board.NoSquare:
			g.clearSelection()
		default:
			g.attemptMove(g.dragSquare, target)
		}
	}
}

func (g *Game) selectSquare(sq board.Square) {
	g.selectedSquare = sq
	g.legalMoves = g.game.LegalMoves(sq)
}

func (g *Game) clearSelection() {
	g.selectedSquare = board.NoSquare
	g.legalMoves = nil
	g.dragging = false
	g.dragPiece = board.NoPiece
	g.dragSquare = board.NoSquare
}

func (g *Game) startDrag(sq board.Square, piece board.Piece) {
	g.dragging = true
	g.dragPiece = piece
	g.dragSquare = sq
}

// attemptMove hands from->to to the engine. A king dropped on its own rook
// castles. Pawns reaching the far rank become queens.
func (g *Game) attemptMove(from, to board.Square) {
	pos := g.game.Position()
	if dest, ok := play.ResolveDrop(pos, from, to, g.game.LegalMoves(from)); ok {
		to = dest
	}
	g.clearSelection()

	if err := g.game.Move(from, to, board.NoPieceType); err != nil {
		g.feedback.OnInvalidMove(from, to, play.Classify(pos, from, to, err))
		return
	}
	g.afterMove()
}

func (g *Game) afterMove() {
	m, _ := g.game.LastMove()
	g.feedback.Animations().StartSlides(play.SlidesFor(m, time.Now(), g.prefs.AnimationDuration()))
	g.feedback.OnMoveMade(m)
	g.panel.ScrollToEnd()

	if g.game.Finished() {
		g.feedback.OnGameEnd(g.game.Outcome(), g.game.Method())
		g.recordResult()
		return
	}
	if g.game.InCheck(g.game.Turn()) {
		g.feedback.OnCheck()
	}
}

// recordResult stores a finished game once.
func (g *Game) recordResult() {
	if g.store == nil || g.recorded || !g.game.Finished() {
		return
	}
	g.recorded = true

	result := storage.GameResult{
		Outcome:  g.game.Outcome(),
		Method:   g.game.Method(),
		Plies:    len(g.game.History()),
		Duration: time.Since(g.started),
	}
	if err := g.store.RecordGame(result); err != nil {
		g.log.Error(err, "[UI] failed to record game")
		return
	}
	g.loadStats()
}

// NewGameAction starts a new game. An unfinished game is abandoned without
// being recorded.
func (g *Game) NewGameAction() {
	g.game.Reset()
	g.clearSelection()
	g.feedback.Animations().ClearSlides()
	g.panel.ResetScroll()
	g.started = time.Now()
	g.recorded = false
}

// ToggleFlipAction swaps which side is at the bottom.
func (g *Game) ToggleFlipAction() {
	g.prefs.FlipBoard = !g.prefs.FlipBoard
	g.renderer.SetFlipped(g.prefs.FlipBoard)
	g.dragging = false
	g.savePreferences()
}

// ToggleHintsAction shows or hides legal-move dots.
func (g *Game) ToggleHintsAction() {
	g.prefs.ShowHints = !g.prefs.ShowHints
	g.savePreferences()
}

// ToggleSoundAction mutes or unmutes sound effects.
func (g *Game) ToggleSoundAction() {
	g.prefs.SoundEnabled = !g.prefs.SoundEnabled
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	g.savePreferences()
}

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	return g.game.History()
}

// Turn returns the color to move.
func (g *Game) Turn() board.Color {
	return g.game.Turn()
}

// Status returns the status line shown under the move list.
func (g *Game) Status() string {
	if g.game.Finished() {
		if g.game.Method() == board.Checkmate {
			return "Checkmate - " + g.game.Outcome().Winner().String() + " wins"
		}
		return "Draw by stalemate"
	}
	if g.game.InCheck(g.game.Turn()) {
		return g.game.Turn().String() + " is in check"
	}
	return g.game.Turn().String() + " to move"
}

// GameOver returns true once the game has a result.
func (g *Game) GameOver() bool {
	return g.game.Finished()
}

// Stats returns the stored statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// Prefs returns the active preferences.
func (g *Game) Prefs() *storage.UserPreferences {
	return g.prefs
}

// Close persists preferences.
func (g *Game) Close() {
	g.savePreferences()
}
