// Package terminal draws rounds on a tcell screen and turns key presses into
// player headings.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/input"
)

const (
	// CellWidth is the number of screen columns per maze cell.
	CellWidth = 2
	// HUDRows is the number of rows above the maze.
	HUDRows = 1

	blinkPeriod = 10
	glowPeriod  = 0.8 // seconds
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorNavy).Background(tcell.ColorNavy)
	stylePen     = tcell.StyleDefault.Foreground(tcell.ColorDarkMagenta)
	styleToken   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePower   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	styleLose    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	styleReady   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	variantColor = map[game.Variant]tcell.Color{
		game.VariantChaser:      tcell.ColorRed,
		game.VariantAmbusher:    tcell.ColorHotPink,
		game.VariantFlanker:     tcell.ColorAqua,
		game.VariantOpportunist: tcell.ColorOrange,
	}
)

// Renderer draws snapshots. It keeps only animation state; the round is never
// touched.
type Renderer struct {
	screen tcell.Screen
	glow   *pulse
}

// NewRenderer creates a renderer on screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		glow:   newPulse(glowPeriod),
	}
}

// ScreenPos returns the top-left screen coordinate of a maze cell.
func ScreenPos(c game.Cell) (int, int) {
	return c.X * CellWidth, c.Y + HUDRows
}

// Draw renders one frame. Each call advances animations by one tick.
func (r *Renderer) Draw(s game.Snapshot, muted bool) {
	r.screen.Clear()

	r.drawMaze(s.Maze)
	for _, c := range s.Tokens {
		r.putCell(c, '·', styleToken)
	}
	for _, c := range s.PowerZones {
		r.putCell(c, '●', stylePower)
	}

	level := float32(0)
	if s.Power.Active {
		level = r.glow.advance(1 / float32(game.TickRate))
	} else {
		r.glow.reset()
	}
	for _, p := range s.Pursuers {
		r.putCell(p.Position, pursuerGlyph(p), pursuerStyle(p, s.Power.Active, level))
	}

	if PlayerVisible(s) {
		r.putCell(s.Player.Position, playerGlyph(s.Player.Heading), stylePlayer)
	}

	r.drawHUD(s, muted)
	r.drawBanner(s)
	r.screen.Show()
}

// PlayerVisible reports whether the player is drawn this frame. An
// invulnerable player is hidden on the first half of every blink window.
func PlayerVisible(s game.Snapshot) bool {
	if !s.Player.Invulnerable {
		return true
	}
	return s.Tick%blinkPeriod >= blinkPeriod/2
}

func (r *Renderer) drawMaze(m *game.Maze) {
	if m == nil {
		return
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := game.Cell{X: x, Y: y}
			kind, _ := m.KindAt(c)
			switch kind {
			case game.CellWall:
				r.putCell(c, '█', styleWall)
			case game.CellPen:
				r.putCell(c, '-', stylePen)
			}
		}
	}
}

func (r *Renderer) putCell(c game.Cell, ch rune, style tcell.Style) {
	x, y := ScreenPos(c)
	fill := ' '
	if ch == '█' {
		fill = ch
	}
	r.screen.SetContent(x, y, ch, nil, style)
	r.screen.SetContent(x+1, y, fill, nil, style)
}

func (r *Renderer) drawHUD(s game.Snapshot, muted bool) {
	sound := "on"
	if muted {
		sound = "off"
	}
	hud := fmt.Sprintf("SCORE %d  LIVES %d", s.Score, s.Lives)
	if s.Power.Active {
		hud += fmt.Sprintf("  POWER %.1fs", float64(s.Power.RemainingTicks)/game.TickRate)
	}
	hud += "  SOUND " + sound
	r.putString(0, 0, hud, styleHUD)
}

func (r *Renderer) drawBanner(s game.Snapshot) {
	var (
		text  string
		style tcell.Style
	)
	switch {
	case s.State == game.StateWon:
		text, style = fmt.Sprintf(" YOU WIN! score %d  r: restart  q: quit ", s.Score), styleWin
	case s.State == game.StateLost:
		text, style = fmt.Sprintf(" GAME OVER score %d  r: restart  q: quit ", s.Score), styleLose
	case s.Grace:
		text, style = "READY!", styleReady
	default:
		return
	}

	width, height := game.Cols*CellWidth, game.Rows
	if s.Maze != nil {
		width, height = s.Maze.Width()*CellWidth, s.Maze.Height()
	}
	x := (width - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	r.putString(x, HUDRows+height/2, text, style)
}

func (r *Renderer) putString(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func pursuerGlyph(p game.Pursuer) rune {
	for _, ch := range p.Name {
		return ch
	}
	return 'M'
}

func pursuerStyle(p game.Pursuer, power bool, level float32) tcell.Style {
	if power {
		blue := int32(96 + 159*level)
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(blue/3, blue/3, blue)).Bold(true)
	}
	color, ok := variantColor[p.Variant]
	if !ok {
		color = tcell.ColorWhite
	}
	return tcell.StyleDefault.Foreground(color).Bold(true)
}

func playerGlyph(heading game.Vector) rune {
	switch heading {
	case game.Up:
		return 'v'
	case game.Down:
		return '^'
	case game.Left:
		return '>'
	case game.Right:
		return '<'
	default:
		return 'C'
	}
}

// keyHeading maps arrow keys and WASD to a heading.
func keyHeading(key tcell.Key, r rune) (game.Vector, bool) {
	switch key {
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyRune:
		return input.FromRune(r)
	default:
		return game.Zero, false
	}
}
