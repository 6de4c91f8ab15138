package window

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
	"github.com/vovakirdan/concrete-annihilator/internal/platform/ui"
)

var (
	colorBar     = color.RGBA{50, 50, 255, 255}
	colorLimit   = color.RGBA{255, 0, 0, 255}
	colorTitle   = color.RGBA{180, 120, 120, 255}
	colorButton  = color.RGBA{255, 255, 255, 255}
	colorInk     = color.RGBA{0, 0, 0, 255}
	colorBall    = color.RGBA{255, 255, 255, 255}
	colorAim     = color.RGBA{200, 200, 200, 160}
	colorShade   = color.RGBA{0, 0, 0, 170}
	colorWarning = color.RGBA{255, 90, 90, 255}
	colorNotice  = color.RGBA{255, 230, 90, 255}
)

// rgba maps terminal colors to window colors.
var rgba = map[core.Color]color.RGBA{
	core.ColorRed:           {205, 49, 49, 255},
	core.ColorGreen:         {13, 188, 121, 255},
	core.ColorYellow:        {229, 229, 16, 255},
	core.ColorBlue:          {36, 114, 200, 255},
	core.ColorMagenta:       {188, 63, 188, 255},
	core.ColorCyan:          {17, 168, 205, 255},
	core.ColorWhite:         {229, 229, 229, 255},
	core.ColorBrightRed:     {241, 76, 76, 255},
	core.ColorBrightGreen:   {35, 209, 139, 255},
	core.ColorBrightYellow:  {245, 245, 67, 255},
	core.ColorBrightBlue:    {59, 142, 234, 255},
	core.ColorBrightMagenta: {214, 112, 214, 255},
	core.ColorBrightCyan:    {41, 184, 219, 255},
	core.ColorBrightWhite:   {255, 255, 255, 255},
	core.ColorOrange:        {255, 135, 0, 255},
	core.ColorGray:          {128, 128, 128, 255},
}

func rgbaOf(c core.Color) color.RGBA {
	if v, ok := rgba[c]; ok {
		return v
	}
	return colorButton
}

// glyph metrics of basicfont.Face7x13
const (
	glyphAscent = 11
	glyphH      = 13
)

func textWidth(s string) int {
	return text.BoundString(basicfont.Face7x13, s).Dx()
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y+glyphAscent, clr)
}

// drawTextCentered centres s on the box.
func drawTextCentered(dst *ebiten.Image, s string, box core.Rect, clr color.Color) {
	x := box.X + (box.W-textWidth(s))/2
	y := box.Y + (box.H-glyphH)/2
	drawText(dst, s, x, y, clr)
}

// newTextImage renders s once into its own image, to be scaled when drawn.
func newTextImage(s string, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(max(textWidth(s), 1), glyphH)
	drawText(img, s, 0, 0, clr)
	return img
}

// drawScaled draws img into the box, stretched to fill it.
func drawScaled(dst, img *ebiten.Image, box core.Rect) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(box.W)/float64(w), float64(box.H)/float64(h))
	op.GeoM.Translate(float64(box.X), float64(box.Y))
	dst.DrawImage(img, op)
}

func fillRect(dst *ebiten.Image, r core.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// drawArena draws the border bars and the limit line.
func drawArena(dst *ebiten.Image, a config.ArenaConfig) {
	height := a.Height - a.Top - 25
	fillRect(dst, core.NewRect(a.Left, a.Top, a.BarWidth, height), colorBar)
	fillRect(dst, core.NewRect(a.Right-a.BarWidth, a.Top, a.BarWidth, height), colorBar)
	fillRect(dst, core.NewRect(a.Left, a.Top, a.Right-a.Left, a.BarWidth), colorBar)
	fillRect(dst, core.NewRect(a.InnerLeft()-a.BarWidth+1, a.LimitY, a.InnerRight()-a.InnerLeft()+2*a.BarWidth-2, 3), colorLimit)
}

// brickLabel renders the hit points of a brick as a white tile with black
// digits; special bricks also show their symbol.
func brickLabel(b annihilator.BrickState) *ebiten.Image {
	img := ebiten.NewImage(b.W, b.H)
	fill := rgbaOf(annihilator.BrickColor(b))
	vector.DrawFilledRect(img, 1, 1, float32(b.W-2), float32(b.H-2), fill, false)

	label := strconv.Itoa(b.HP)
	if b.Type.Special() {
		label = string(specialMark(b.Type))
	}
	drawTextCentered(img, label, core.NewRect(0, 0, b.W, b.H), colorInk)
	return img
}

func specialMark(t annihilator.BrickType) rune {
	switch t {
	case annihilator.BrickBomb:
		return '*'
	case annihilator.BrickMoreBalls:
		return '+'
	case annihilator.BrickMoreDamage:
		return '!'
	case annihilator.BrickBiggerBalls:
		return 'O'
	default:
		return ' '
	}
}

// drawAim draws the launch direction from the spawn point.
func drawAim(dst *ebiten.Image, s annihilator.Snapshot, a config.ArenaConfig) {
	size := float64(s.BallSize)
	cx := (float64(a.Width)-size)/2 + size/2
	cy := float64(a.Height) - size/2
	const length = 120
	x1 := cx + math.Cos(s.Angle)*length
	y1 := cy - math.Sin(s.Angle)*length
	vector.StrokeLine(dst, float32(cx), float32(cy), float32(x1), float32(y1), 1, colorAim, true)
}

func drawBall(dst *ebiten.Image, b annihilator.BallState, size int) {
	r := float32(size) / 2
	vector.DrawFilledCircle(dst, b.X+r, b.Y+r, r, colorBall, true)
}

func drawButton(dst *ebiten.Image, r ui.Region) {
	fillRect(dst, r.Box, colorButton)
	drawTextCentered(dst, r.Label, r.Box, colorInk)
}

func shade(dst *ebiten.Image) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	fillRect(dst, core.NewRect(0, 0, w, h), colorShade)
}

// blinkOn reports whether the wave title is lit on this tick. The cycle is
// 60 ticks, lit for the first 31.
func blinkOn(frame uint64) bool {
	return frame%60 <= 30
}
