package annihilator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	AimChar    = '·'
	LimitChar  = '┄'
	BorderVert = '│'
	BorderTop  = '─'
)

// Minimum terminal size for the arena to stay readable.
const (
	MinScreenW = 30
	MinScreenH = 16
)

// Texts shared by the terminal and window frontends.
const (
	TitleText    = "CONCRETE ANNIHILATOR"
	SubtitleText = "Survive a maximum of waves!"
	LossText     = "You lose!"
	PausedText   = "PAUSED"
)

// BrickGlyph returns the fill rune for a brick type.
func BrickGlyph(t BrickType) rune {
	switch t {
	case BrickBomb:
		return '✹'
	case BrickMoreBalls:
		return '⁙'
	case BrickMoreDamage:
		return '▲'
	case BrickBiggerBalls:
		return '◉'
	default:
		return '█'
	}
}

// BrickColor returns the terminal color of a brick. Normal bricks cool down
// from red to blue as their hit points drop.
func BrickColor(b BrickState) core.Color {
	switch b.Type {
	case BrickBomb:
		return core.ColorBrightRed
	case BrickMoreBalls:
		return core.ColorBrightGreen
	case BrickMoreDamage:
		return core.ColorBrightMagenta
	case BrickBiggerBalls:
		return core.ColorBrightCyan
	}
	switch {
	case b.HP >= 30:
		return core.ColorRed
	case b.HP >= 15:
		return core.ColorOrange
	case b.HP >= 8:
		return core.ColorYellow
	case b.HP >= 4:
		return core.ColorGreen
	default:
		return core.ColorBlue
	}
}

// viewport maps arena pixels to terminal cells. A terminal cell is about
// twice as tall as it is wide, so one row covers 2*scale pixels.
type viewport struct {
	left, top  float64 // arena pixel at the field's top-left cell
	scale      float64 // pixels per column
	offX, offY int     // screen cell of the field's top-left
	cols, rows int
}

func newViewport(arena config.ArenaConfig, screenW, screenH int) viewport {
	fieldW := float64(arena.InnerRight() - arena.InnerLeft())
	fieldH := float64(arena.Height - arena.InnerTop())

	availW := screenW - 2 // side borders
	availH := screenH - 3 // HUD, top border, hint line
	scale := math.Max(fieldW/float64(availW), fieldH/(2*float64(availH)))

	v := viewport{
		left:  float64(arena.InnerLeft()),
		top:   float64(arena.InnerTop()),
		scale: scale,
		cols:  int(math.Ceil(fieldW / scale)),
		rows:  int(math.Ceil(fieldH / (2 * scale))),
	}
	v.offX = (screenW - v.cols) / 2
	v.offY = 2
	return v
}

func (v viewport) col(px float64) int {
	return v.offX + int(math.Floor((px-v.left)/v.scale))
}

func (v viewport) row(py float64) int {
	return v.offY + int(math.Floor((py-v.top)/(2*v.scale)))
}

// Render draws the game into a terminal screen buffer.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot(), g.cfg)
}

// RenderSnapshot draws a snapshot into a terminal screen buffer.
func RenderSnapshot(dst *core.Screen, s Snapshot, cfg config.AnnihilatorConfig) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	v := newViewport(cfg.Arena, dst.Width(), dst.Height())

	renderHUD(dst, s)
	renderField(dst, v, cfg)
	for _, b := range s.Bricks {
		renderBrick(dst, v, b)
	}
	if s.Mode == ModeInRound && !s.Round {
		renderAim(dst, v, s, cfg)
	}
	for _, b := range s.Balls {
		half := float64(s.BallSize) / 2
		dst.SetColored(v.col(float64(b.X)+half), v.row(float64(b.Y)+half), BallChar, core.ColorBrightWhite)
	}
	renderOverlay(dst, s)
}

func renderHUD(dst *core.Screen, s Snapshot) {
	hud := fmt.Sprintf("Wave n°%d  Damage %d  Balls %d  Size %d", s.Wave, s.Damage, s.MaxBalls, s.BallSize)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	if s.Announcement != "" {
		x := dst.Width() - len(s.Announcement) - 1
		dst.DrawTextColored(x, 0, s.Announcement, core.ColorBrightYellow)
	}

	bottom := dst.Height() - 1
	switch {
	case s.LoadError != "":
		dst.DrawTextColored(0, bottom, truncate("level error: "+s.LoadError, dst.Width()), core.ColorRed)
	case s.Mode == ModeInRound && !s.Round:
		dst.DrawTextCentered(bottom, "←/→ aim · SPACE launch · P pause", core.ColorGray)
	}
}

func renderField(dst *core.Screen, v viewport, cfg config.AnnihilatorConfig) {
	top := v.offY - 1
	dst.DrawHLine(v.offX-1, top, v.cols+2, BorderTop, core.ColorGray)
	dst.DrawVLine(v.offX-1, top, v.rows+1, BorderVert, core.ColorGray)
	dst.DrawVLine(v.offX+v.cols, top, v.rows+1, BorderVert, core.ColorGray)
	dst.SetColored(v.offX-1, top, '┌', core.ColorGray)
	dst.SetColored(v.offX+v.cols, top, '┐', core.ColorGray)

	dst.DrawHLine(v.offX, v.row(float64(cfg.Arena.LimitY)), v.cols, LimitChar, core.ColorRed)
}

func renderBrick(dst *core.Screen, v viewport, b BrickState) {
	x0, x1 := v.col(float64(b.X)), v.col(float64(b.X+b.W))
	y0, y1 := v.row(float64(b.Y)), v.row(float64(b.Y+b.H))
	// Leave a one-column gap between neighbours when there is room.
	if x1-x0 > 2 {
		x1--
	}
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	color := BrickColor(b)
	glyph := BrickGlyph(b.Type)
	dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), glyph, color)

	label := strconv.Itoa(b.HP)
	if b.Type == BrickNormal && len(label) <= x1-x0 {
		dst.DrawTextColored(x0+(x1-x0-len(label))/2, y0+(y1-y0-1)/2, label, core.ColorBrightWhite)
	}
}

func renderAim(dst *core.Screen, v viewport, s Snapshot, cfg config.AnnihilatorConfig) {
	size := float64(s.BallSize)
	cx := (float64(cfg.Arena.Width)-size)/2 + size/2
	cy := float64(cfg.Arena.Height) - size/2
	cos, sin := math.Cos(s.Angle), math.Sin(s.Angle)

	for step := 1; step <= 8; step++ {
		d := float64(step) * 3 * v.scale
		dst.SetColored(v.col(cx+cos*d), v.row(cy-sin*d), AimChar, core.ColorBrightYellow)
	}
}

func renderOverlay(dst *core.Screen, s Snapshot) {
	switch s.Mode {
	case ModeMenu:
		drawCenteredBox(dst, core.ColorBrightYellow, TitleText, SubtitleText, "ENTER start · Q quit")
	case ModePaused:
		drawCenteredBox(dst, core.ColorBrightCyan, PausedText, "P resume · B give up")
	case ModeLoss:
		drawCenteredBox(dst, core.ColorBrightRed, LossText,
			fmt.Sprintf("Wave reached: %d", s.LastScore),
			fmt.Sprintf("Best score: %d", s.BestScore),
			"ENTER retry · Q quit")
	}
}

// drawCenteredBox draws a centered message box, title first.
func drawCenteredBox(dst *core.Screen, color core.Color, title string, lines ...string) {
	boxW := runeLen(title)
	for _, l := range lines {
		boxW = max(boxW, runeLen(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	dst.DrawTextColored(boxX+(boxW-runeLen(title))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-runeLen(l))/2, boxY+3+i, l, core.ColorDefault)
	}
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
