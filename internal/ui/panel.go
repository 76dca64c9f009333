package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessgrid/internal/board"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 28
	ButtonHeight    = 40
	TabHeight       = 34
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	BannerHeight    = 30
	HistoryRowH     = 22

	statusBarY = ScreenHeight - 70
	statsY     = statusBarY - 76
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	sectionBg       = color.RGBA{48, 52, 58, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 110, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
	whiteSwatch     = color.RGBA{240, 240, 235, 255}
	blackSwatch     = color.RGBA{20, 20, 22, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	// Active reports whether a toggle button is switched on.
	Active  func() bool
	hovered bool
	pressed bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel: controls, turn banner, move list and statistics.
type Panel struct {
	game      *Game
	collapsed bool
	scale     float64

	collapseBtn *Button
	newGameBtn  *Button
	toggles     []*Button // Flip, Hints, Sound

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0}
	p.createButtons()
	return p
}

func (p *Panel) createButtons() {
	tabY := (ScreenHeight - CollapseButtonH) / 2
	collapseX := BoardSize
	if p.collapsed {
		collapseX = BoardSize + 2
	}
	p.collapseBtn = &Button{
		X: collapseX, Y: tabY,
		W: CollapseButtonW, H: CollapseButtonH,
		OnClick: p.toggleCollapse,
	}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	toggleY := newGameY + ButtonHeight + 8
	toggleW := contentW / 3
	prefs := p.game.Prefs
	p.toggles = []*Button{
		{X: contentX, Y: toggleY, W: toggleW, H: TabHeight, Label: "Flip",
			OnClick: p.game.ToggleFlipAction, Active: func() bool { return prefs().FlipBoard }},
		{X: contentX + toggleW, Y: toggleY, W: toggleW, H: TabHeight, Label: "Hints",
			OnClick: p.game.ToggleHintsAction, Active: func() bool { return prefs().ShowHints }},
		{X: contentX + 2*toggleW, Y: toggleY, W: contentW - 2*toggleW, H: TabHeight, Label: "Sound",
			OnClick: p.game.ToggleSoundAction, Active: func() bool { return prefs().SoundEnabled }},
	}
}

// buttons returns every button that takes input in the current state.
func (p *Panel) buttons() []*Button {
	if p.collapsed {
		return []*Button{p.collapseBtn}
	}
	return append([]*Button{p.collapseBtn, p.newGameBtn}, p.toggles...)
}

// HandleInput processes mouse input and returns true if the panel consumed it.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}

	if !p.collapsed {
		if wheelY := input.WheelY(); wheelY != 0 {
			historyY := p.historyStartY()
			if mx >= BoardSize && my >= historyY && my < statsY {
				p.scrollY -= int(wheelY * 30)
				p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
			}
		}
	}

	if input.IsLeftJustPressed() {
		for _, btn := range p.buttons() {
			if btn.hovered {
				btn.OnClick()
				return true
			}
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

// SetScale sets the HiDPI scale factor.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

// ScrollToEnd shows the latest move on the next draw.
func (p *Panel) ScrollToEnd() {
	p.scrollY = 1 << 30
}

// ResetScroll returns the move list to the top.
func (p *Panel) ResetScroll() {
	p.scrollY = 0
	p.maxScrollY = 0
}

func (p *Panel) s(v int) float32 {
	return float32(float64(v) * p.scale)
}

func (p *Panel) fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, p.s(x), p.s(y), p.s(w), p.s(h), c, false)
}

func (p *Panel) strokeRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.StrokeRect(screen, p.s(x), p.s(y), p.s(w), p.s(h), float32(p.scale), c, false)
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.collapsed {
		p.fillRect(screen, BoardSize, 0, CollapsedWidth, ScreenHeight, panelBg)
		p.drawCollapseButton(screen, true)
		return
	}

	p.fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg)
	p.drawCollapseButton(screen, false)
	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawToggles(screen)

	bannerLabelY := p.toggles[0].Y + TabHeight + SectionSpacing - 8
	p.drawSectionLabel(screen, "Turn", bannerLabelY)
	p.drawTurnBanner(screen, bannerLabelY+SectionLabelH)

	historyY := p.historyStartY()
	p.drawSectionLabel(screen, "Moves", historyY)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4, statsY-10)

	p.drawStats(screen)
	p.drawStatusBar(screen)
}

func (p *Panel) historyStartY() int {
	bannerY := p.toggles[0].Y + TabHeight + SectionSpacing - 8 + SectionLabelH
	return bannerY + BannerHeight + SectionSpacing - 8
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn

	bgColor := panelBg
	if btn.hovered {
		bgColor = sectionBg
	}
	p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

	arrow := "‹"
	if expand {
		arrow = "›"
	}
	textC := textMuted
	if btn.hovered {
		textC = textPrimary
	}
	p.drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}
	p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

	borderC := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255}
	}
	p.strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, borderC)
	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawToggles(screen *ebiten.Image) {
	for _, btn := range p.toggles {
		isActive := btn.Active()

		bgColor := tabInactiveBg
		switch {
		case isActive:
			bgColor = tabActiveBg
		case btn.pressed:
			bgColor = buttonPressedBg
		case btn.hovered:
			bgColor = tabHoverBg
		}
		p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

		borderC := buttonBorder
		if isActive {
			borderC = tabActiveBg
		} else if btn.hovered {
			borderC = accentColor
		}
		p.strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, borderC)

		textColor := textSecondary
		if isActive {
			textColor = textPrimary
		}
		p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textColor)
	}
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, y int) {
	p.drawText(screen, label, BoardSize+PanelPadding, y, textMuted)
}

// drawTurnBanner shows a swatch of the side to move next to its name.
func (p *Panel) drawTurnBanner(screen *ebiten.Image, y int) {
	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	p.fillRect(screen, x, y, w, BannerHeight, sectionBg)

	swatch := whiteSwatch
	if p.game.Turn() == board.Black {
		swatch = blackSwatch
	}
	p.fillRect(screen, x+8, y+7, 16, 16, swatch)
	p.strokeRect(screen, x+8, y+7, 16, 16, buttonBorder)

	label := p.game.Turn().String()
	if p.game.GameOver() {
		label = "Game over"
	}
	p.drawText(screen, label, x+34, y+7, textPrimary)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY, maxY int) {
	moves := p.game.History()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", x, startY+5, textMuted)
		return
	}

	visibleHeight := maxY - startY
	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * HistoryRowH
	p.maxScrollY = max(0, contentHeight-visibleHeight)
	p.scrollY = max(0, min(p.scrollY, p.maxScrollY))

	startRow := p.scrollY / HistoryRowH
	y := startY - (p.scrollY % HistoryRowH)

	for row := startRow; row < totalRows; row++ {
		if y+HistoryRowH > maxY {
			break
		}
		if y >= startY {
			if row%2 == 1 {
				p.fillRect(screen, x-4, y-2, PanelWidth-PanelPadding*2+8, HistoryRowH, moveRowAlt)
			}
			p.drawText(screen, fmt.Sprintf("%d.", row+1), x, y, textMuted)
			p.drawText(screen, moveLabel(moves[2*row]), x+36, y, textPrimary)
			if 2*row+1 < len(moves) {
				p.drawText(screen, moveLabel(moves[2*row+1]), x+136, y, textPrimary)
			}
		}
		y += HistoryRowH
	}

	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := max(float32(visibleHeight)*float32(visibleHeight)/float32(contentHeight), 20)
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		vector.DrawFilledRect(screen, p.s(BoardSize+PanelWidth-8), indicatorY*float32(p.scale),
			p.s(4), indicatorH*float32(p.scale), textMuted, false)
	}
}

// moveLabel is the coordinate form of m with an x for captures and O-O
// marks for castling.
func moveLabel(m board.Move) string {
	switch {
	case m.IsCastling && m.To.Col > m.From.Col:
		return "O-O"
	case m.IsCastling:
		return "O-O-O"
	case m.IsCapture():
		return m.From.String() + "x" + m.String()[2:]
	default:
		return m.String()
	}
}

func (p *Panel) drawStats(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	p.drawSectionLabel(screen, "Statistics", statsY)

	stats := p.game.Stats()
	p.drawText(screen, fmt.Sprintf("Games %d   W %d  B %d  D %d",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws), x, statsY+SectionLabelH, textSecondary)
	p.drawText(screen, fmt.Sprintf("Decisive %.0f%%   Avg %.0f plies",
		stats.DecisiveRate(), stats.AveragePlies()), x, statsY+SectionLabelH+20, textSecondary)
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	p.fillRect(screen, x, statusBarY-10, PanelWidth-PanelPadding*2, 1, dividerColor)

	username := p.game.Prefs().Username
	if len(username) > 16 {
		username = username[:16] + "..."
	}
	p.drawText(screen, username, x, statusBarY, textPrimary)

	statusColor := textPrimary
	switch {
	case p.game.GameOver():
		statusColor = statusGameOver
	case p.game.game.InCheck(p.game.Turn()):
		statusColor = statusCheck
	}
	p.drawText(screen, p.game.Status(), x, statusBarY+22, statusColor)
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(x)), float64(p.s(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetBoldFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(centerX))-w/2, float64(p.s(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()

	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
