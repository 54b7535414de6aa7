package skyraid

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlayerNose   = '▲'
	BulletChar   = '|'
	ShieldChar   = '·'
	StarChar     = '.'
	ExplodeChar  = '*'
	HealthFull   = '■'
	HealthEmpty  = '□'
	BorderHoriz  = '─'
	hudRows      = 2
	starCount    = 40
	healthBarLen = 10
)

// Minimum screen size the arena can be drawn in.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// viewport maps arena units onto screen cells below the HUD.
type viewport struct {
	top          int
	cols, rows   int
	cellW, cellH float64
}

func newViewport(v View, dst *core.Screen) viewport {
	rows := dst.Height() - hudRows
	return viewport{
		top:   hudRows,
		cols:  dst.Width(),
		rows:  rows,
		cellW: v.ArenaW / float64(dst.Width()),
		cellH: v.ArenaH / float64(rows),
	}
}

// cell converts an arena point to a screen cell.
func (vp viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x / vp.cellW)), vp.top + int(math.Floor(y/vp.cellH))
}

// span converts an arena rectangle to a screen cell rectangle, at least 1x1.
func (vp viewport) span(r core.Rect) (x, y, w, h int) {
	x, y = vp.cell(r.X, r.Y)
	x1, y1 := vp.cell(r.Right(), r.Bottom())
	if math.Mod(r.Right(), vp.cellW) == 0 {
		x1--
	}
	if math.Mod(r.Bottom(), vp.cellH) == 0 {
		y1--
	}
	return x, y, max(x1-x+1, 1), max(y1-y+1, 1)
}

// set draws a cell only inside the arena area.
func (vp viewport) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if x < 0 || x >= vp.cols || y < vp.top || y >= vp.top+vp.rows {
		return
	}
	dst.SetColored(x, y, r, c)
}

func (vp viewport) fill(dst *core.Screen, r core.Rect, glyph rune, c core.Color) {
	x, y, w, h := vp.span(r)
	for dy := range h {
		for dx := range w {
			vp.set(dst, x+dx, y+dy, glyph, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.View()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	vp := newViewport(v, dst)

	renderStars(v, vp, dst)
	renderHUD(v, dst)

	if v.Phase != PhaseStart {
		renderEntities(v, g.tables, vp, dst)
	}

	renderOverlay(v, dst)
}

// renderStars draws a slowly scrolling background. Render-only, no sim state.
func renderStars(v View, vp viewport, dst *core.Screen) {
	scroll := int(v.Tick / 8) //#nosec G115 -- tick fits in int
	for i := range starCount {
		x := (i*73 + 11) % vp.cols
		y := vp.top + (i*29+scroll)%vp.rows
		vp.set(dst, x, y, StarChar, core.ColorGray)
	}
}

// renderHUD draws score, level, kills, time, health and active buffs.
func renderHUD(v View, dst *core.Screen) {
	left := fmt.Sprintf("Score: %d  Level: %d  Kills: %d  Time: %ds",
		v.Score, v.Level, v.Destroyed, int(v.Survival.Seconds()))
	dst.DrawText(1, 0, left)

	pct := 0
	if v.MaxHealth > 0 {
		pct = v.Health * 100 / v.MaxHealth
	}
	filled := (pct*healthBarLen + 99) / 100
	color := core.ColorGreen
	switch {
	case pct <= 25:
		color = core.ColorRed
	case pct <= 50:
		color = core.ColorYellow
	}
	bar := strings.Repeat(string(HealthFull), filled) + strings.Repeat(string(HealthEmpty), healthBarLen-filled)
	label := fmt.Sprintf(" %3d%%", pct)
	x := dst.Width() - healthBarLen - len(label) - 4
	dst.DrawText(x, 0, "HP ")
	dst.DrawTextColored(x+3, 0, bar, color)
	dst.DrawText(x+3+healthBarLen, 0, label)

	var buffs []string
	if v.RapidFireSeconds > 0 {
		buffs = append(buffs, fmt.Sprintf("Rapid Fire: %ds", v.RapidFireSeconds))
	}
	if v.ShieldSeconds > 0 {
		buffs = append(buffs, fmt.Sprintf("Shield: %ds", v.ShieldSeconds))
	}
	if len(buffs) > 0 {
		dst.DrawTextColored(1, 1, strings.Join(buffs, "  "), core.ColorBrightCyan)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

func renderEntities(v View, t Tables, vp viewport, dst *core.Screen) {
	for _, p := range v.Powerups {
		s := t.Powerups[p.Kind]
		vp.fill(dst, p.Rect, s.Icon, s.Color)
	}

	for _, e := range v.Enemies {
		s := t.Enemies[e.Kind]
		vp.fill(dst, e.Rect, e.Kind.Glyph(), s.Color)
		if e.HealthFraction < 1 {
			x, y, w, _ := vp.span(e.Rect)
			n := int(math.Ceil(e.HealthFraction * float64(w)))
			for dx := range w {
				if dx < n {
					vp.set(dst, x+dx, y, HealthFull, core.ColorGreen)
				} else {
					vp.set(dst, x+dx, y, HealthEmpty, core.ColorRed)
				}
			}
		}
	}

	for _, b := range v.Bullets {
		vp.fill(dst, b, BulletChar, t.BulletColor)
	}

	vp.fill(dst, v.Player, PlayerChar, t.PlayerColor)
	px, py, pw, ph := vp.span(v.Player)
	vp.set(dst, px+pw/2, py, PlayerNose, t.PlayerColor)
	if v.ShieldSeconds > 0 {
		for dx := -1; dx <= pw; dx++ {
			vp.set(dst, px+dx, py-1, ShieldChar, core.ColorCyan)
			vp.set(dst, px+dx, py+ph, ShieldChar, core.ColorCyan)
		}
		for dy := range ph {
			vp.set(dst, px-1, py+dy, ShieldChar, core.ColorCyan)
			vp.set(dst, px+pw, py+dy, ShieldChar, core.ColorCyan)
		}
	}

	for _, e := range v.Explosions {
		for i := range 12 {
			angle := float64(i) * math.Pi / 6
			x, y := vp.cell(e.X+e.Radius*math.Cos(angle), e.Y+e.Radius*math.Sin(angle))
			color := core.ColorOrange
			if i%2 == 0 {
				color = core.ColorBrightYellow
			}
			vp.set(dst, x, y, ExplodeChar, color)
		}
	}
}

// renderOverlay draws phase messages.
func renderOverlay(v View, dst *core.Screen) {
	switch v.Phase {
	case PhaseStart:
		drawCenteredBox(dst, "S K Y R A I D",
			"Arrows/WASD move  SPACE fire  P pause",
			"Press ENTER to start")

	case PhasePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Level: %d  Survived: %ds", v.Score, v.Level, int(v.Survival.Seconds())),
			"R restart  ESC title")
	}
}

// drawCenteredBox draws a centered message box with a title and lines below it.
func drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	boxW := len(title)
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := 3 + len(lines)*2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len(l))/2, boxY+3+i*2, l)
	}
}
