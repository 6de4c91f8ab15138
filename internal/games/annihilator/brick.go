package annihilator

import (
	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
)

// BrickType tags a brick with its removal side effect.
type BrickType int

const (
	BrickNormal      BrickType = iota
	BrickBomb                  // destroys its neighbours when removed
	BrickMoreBalls             // raises the volley size
	BrickMoreDamage            // raises ball damage
	BrickBiggerBalls           // raises ball size
)

// specialTypes are drawn uniformly when generation marks a brick special.
var specialTypes = [...]BrickType{BrickBomb, BrickMoreBalls, BrickMoreDamage, BrickBiggerBalls}

// String returns a human-readable name for the brick type.
func (t BrickType) String() string {
	switch t {
	case BrickNormal:
		return "normal"
	case BrickBomb:
		return "bomb"
	case BrickMoreBalls:
		return "more-balls"
	case BrickMoreDamage:
		return "more-damage"
	case BrickBiggerBalls:
		return "bigger-balls"
	default:
		return "unknown"
	}
}

// Special reports whether the type has a removal side effect.
func (t BrickType) Special() bool {
	return t != BrickNormal
}

// Grid maps cell coordinates to arena pixels.
type Grid struct {
	CellSize int
	OriginX  int
	OriginY  int
	Columns  int
	Rows     int
}

// GridFrom builds the grid from the brick config.
func GridFrom(cfg config.BricksConfig) Grid {
	return Grid{
		CellSize: cfg.CellSize,
		OriginX:  cfg.OriginX,
		OriginY:  cfg.OriginY,
		Columns:  cfg.Columns,
		Rows:     cfg.Rows,
	}
}

// CellRect returns the rectangle of a cell.
func (g Grid) CellRect(col, row int) core.Rect {
	return core.NewRect(col*g.CellSize+g.OriginX, row*g.CellSize+g.OriginY, g.CellSize, g.CellSize)
}

// Brick is a destructible grid cell. It holds semantic data only;
// frontends cache their own visuals keyed by Rect.
type Brick struct {
	Rect core.Rect
	HP   int
	Type BrickType
}

// NewBrick creates a brick at a grid cell.
func NewBrick(col, row, hp int, t BrickType, grid Grid) *Brick {
	return &Brick{Rect: grid.CellRect(col, row), HP: hp, Type: t}
}

// Hit removes damage from the brick's hit points.
func (b *Brick) Hit(damage int) {
	b.HP -= damage
}

// Dead reports whether the brick is due for removal.
func (b *Brick) Dead() bool {
	return b.HP <= 0
}

// Same reports whether two bricks occupy the same cell.
// Bricks never overlap, so the rect is their identity.
func (b *Brick) Same(other *Brick) bool {
	return b.Rect == other.Rect
}

// OverLimit reports whether the brick's bottom edge passed the limit line.
func (b *Brick) OverLimit(limitY int) bool {
	return b.Rect.Bottom() > limitY
}
