package vortex

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

// World units per terminal cell. Cells are about twice as tall as wide, so
// this keeps the arena round on screen.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Screen layout.
const (
	hudRows    = 2 // one status line above the arena, one below
	arenaTop   = 1
	MinScreenW = 40
	MinScreenH = 16
)

// Glyphs.
const (
	RingChar     = '·'
	ReticleChar  = '+'
	BulletChar   = '•'
	HostileChar  = '*'
	ParticleChar = '.'
)

var headingGlyphs = []rune("→↘↓↙←↖↑↗")

// CellSurface is a Surface measured in terminal cells.
type CellSurface struct {
	Cols, Rows int
}

// Size returns the surface size in world units.
func (s CellSurface) Size() (float64, float64) {
	return float64(s.Cols) * CellWidth, float64(s.Rows) * CellHeight
}

// ArenaSurface returns the cell surface left for the arena on a screen of
// the given size.
func ArenaSurface(screenW, screenH int) CellSurface {
	return CellSurface{Cols: screenW, Rows: max(0, screenH-hudRows)}
}

// CellToWorld converts a screen cell to the world point at its center.
func CellToWorld(x, y int) core.Vec2 {
	return core.V((float64(x)+0.5)*CellWidth, (float64(y-arenaTop)+0.5)*CellHeight)
}

// HUD holds the values the renderer cannot read from a Snapshot.
type HUD struct {
	Title string
	Best  int
	Hints bool
}

// Render draws a snapshot onto dst.
func Render(dst *core.Screen, s Snapshot, hud HUD) {
	dst.Clear()
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	r := renderer{dst: dst}
	if s.Shake > 0 {
		sign := 1
		if s.Frame%2 == 1 {
			sign = -1
		}
		r.offX = sign * int(math.Round(s.Shake/CellWidth))
		r.offY = -sign * int(math.Round(s.Shake/CellHeight))
	}

	r.ring(s)
	for _, p := range s.Particles {
		if p.Fade < 0.4 {
			r.plot(p.X, p.Y, ParticleChar, core.ColorDim)
		} else {
			r.plot(p.X, p.Y, RingChar, p.Color)
		}
	}
	for _, p := range s.Pickups {
		// Blink when about to expire.
		if p.Life < 120 && (s.Frame/8)%2 == 1 {
			continue
		}
		kind, _ := ParsePowerUpKind(p.Kind)
		r.plot(p.X, p.Y, kind.Glyph(), kind.Color())
	}
	for _, b := range s.Bullets {
		if b.Hostile {
			r.plot(b.X, b.Y, HostileChar, core.ColorBrightRed)
		} else {
			r.plot(b.X, b.Y, BulletChar, core.ColorBrightYellow)
		}
	}
	for _, e := range s.Enemies {
		r.enemy(e)
	}
	if s.State == StatePlaying || s.State == StatePaused {
		r.plot(s.AimX, s.AimY, ReticleChar, core.ColorGray)
	}
	r.player(s)

	renderHUD(dst, s, hud)

	switch s.State {
	case StatePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case StateGameOver:
		title := "Game Over"
		if s.EndReason == EndSurvivalThreshold {
			title = fmt.Sprintf("Game Over: %.1f deaths/min > %d", s.DPM, s.Threshold)
		}
		line := fmt.Sprintf("Score: %d  R restart  B menu", s.Score)
		if s.Score > 0 && s.Score > hud.Best {
			line = fmt.Sprintf("NEW HIGH SCORE %d  R restart  B menu", s.Score)
		}
		renderOverlay(dst, title, line)
	case StateMenu:
		renderOverlay(dst, "Neon Vortex", "Press R to start")
	}
}

type renderer struct {
	dst        *core.Screen
	offX, offY int
}

func (r renderer) cell(x, y float64) (int, int) {
	cx := int(math.Floor(x/CellWidth)) + r.offX
	cy := int(math.Floor(y/CellHeight)) + arenaTop + r.offY
	return cx, cy
}

// plot draws a glyph at a world point, clipped to the arena rows.
func (r renderer) plot(x, y float64, ch rune, c core.Color) {
	cx, cy := r.cell(x, y)
	if cy < arenaTop || cy >= r.dst.Height()-1 {
		return
	}
	r.dst.SetColored(cx, cy, ch, c)
}

func (r renderer) ring(s Snapshot) {
	if s.ArenaRadius <= 0 {
		return
	}
	steps := max(64, int(2*math.Pi*s.ArenaRadius/4))
	for i := range steps {
		a := float64(i) / float64(steps) * 2 * math.Pi
		r.plot(s.ArenaX+math.Cos(a)*s.ArenaRadius, s.ArenaY+math.Sin(a)*s.ArenaRadius, RingChar, core.ColorMagenta)
	}
}

func (r renderer) enemy(e EnemyView) {
	kind := EnemyNormal
	for k := EnemyNormal; k <= EnemyTank; k++ {
		if k.String() == e.Kind {
			kind = k
		}
	}
	spec := kind.spec()
	color := spec.color
	if e.HP < spec.hp {
		color = core.ColorBrightMagenta
	}
	r.plot(e.X, e.Y, spec.glyph, color)
}

func (r renderer) player(s Snapshot) {
	p := s.Player
	octant := int(math.Round(p.Rotation/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	color := core.ColorBrightCyan
	if s.State == StateGameOver {
		color = core.ColorGray
	}
	r.plot(p.X, p.Y, headingGlyphs[octant], color)

	for _, pu := range s.PowerUps {
		if pu.Kind == PowerUpShield.String() {
			r.plot(p.X-CellWidth, p.Y, '(', PowerUpShield.Color())
			r.plot(p.X+CellWidth, p.Y, ')', PowerUpShield.Color())
		}
	}
}

// renderHUD draws the status line above the arena and the power-up line below.
func renderHUD(dst *core.Screen, s Snapshot, hud HUD) {
	title := hud.Title
	if title == "" {
		title = "Neon Vortex"
	}
	stats := fmt.Sprintf("Score: %d  Best: %d  Level: %d", s.Score, max(hud.Best, s.Score), s.Level)
	switch s.Mode {
	case config.ModeInfinite:
		stats += fmt.Sprintf("  Deaths: %d  DPM: %.1f", s.Deaths, s.DPM)
	case config.ModeSurvival:
		stats += fmt.Sprintf("  Deaths: %d  DPM: %.1f/%d", s.Deaths, s.DPM, s.Threshold)
		if s.TotalEnemiesSpawned < s.GraceEnemies {
			stats += fmt.Sprintf("  Grace: %d/%d", s.TotalEnemiesSpawned, s.GraceEnemies)
		}
	}
	if s.GodMode {
		stats += "  [GOD]"
	}
	// The title goes first when the counters leave room for it.
	top := " " + title + "  " + stats
	if utf8.RuneCountInString(top) > dst.Width() {
		top = " " + stats
	}
	dst.DrawTextColored(0, 0, top, core.ColorCyan)

	var parts []string
	for _, pu := range s.PowerUps {
		parts = append(parts, fmt.Sprintf("%s %.1fs", pu.Kind, pu.Remaining/60))
	}
	bottom := " " + strings.Join(parts, "  ")
	if hud.Hints && len(parts) == 0 {
		bottom = " WASD move  mouse/arrows aim  space fire  p pause  b menu  q quit"
	}
	dst.DrawTextColored(0, dst.Height()-1, bottom, core.ColorGray)
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
