package annihilator

// Wave is one level's bricks plus its sequence number, starting at 1.
type Wave struct {
	Number int
	Bricks []*Brick
}

// NewWave returns wave 1 with no bricks.
func NewWave() *Wave {
	return &Wave{Number: 1}
}

// Load replaces the bricks with a layout, placed from the top of the grid.
// Cells outside the grid are ignored.
func (w *Wave) Load(layout Layout, grid Grid) {
	w.Bricks = w.Bricks[:0]
	for row, cells := range layout {
		if row >= grid.Rows {
			break
		}
		for col, cell := range cells {
			if col >= grid.Columns {
				break
			}
			if cell.Empty() {
				continue
			}
			w.Bricks = append(w.Bricks, NewBrick(col, row, cell.HP, cell.Type, grid))
		}
	}
}

// Advance moves on to the next wave number.
func (w *Wave) Advance() {
	w.Number++
}

// ShiftDown moves every brick down by one cell.
func (w *Wave) ShiftDown(cell int) {
	for _, b := range w.Bricks {
		b.Rect = b.Rect.Translate(0, cell)
	}
}

// AnyOverLimit reports whether a brick crossed the limit line.
func (w *Wave) AnyOverLimit(limitY int) bool {
	for _, b := range w.Bricks {
		if b.OverLimit(limitY) {
			return true
		}
	}
	return false
}

// Cleared reports whether every brick is gone.
func (w *Wave) Cleared() bool {
	return len(w.Bricks) == 0
}

// Removal describes a brick taken out of the wave.
type Removal struct {
	Brick   Brick
	Blasted bool // destroyed by a bomb rather than by damage
}

// RemoveDead takes out every brick whose hit points ran out, in reverse
// storage order. A removed bomb also takes out every other brick whose
// top-left corner lies within radius of its own, whatever their hit points.
// Blast victims are reported with Blasted set and never blast in turn.
func (w *Wave) RemoveDead(radius float64) []Removal {
	gone := make([]bool, len(w.Bricks))
	var out []Removal

	for i := len(w.Bricks) - 1; i >= 0; i-- {
		if b := w.Bricks[i]; b.Dead() {
			gone[i] = true
			out = append(out, Removal{Brick: *b})
		}
	}
	if len(out) == 0 {
		return nil
	}

	dead := len(out)
	for k := 0; k < dead; k++ {
		bomb := out[k].Brick
		if bomb.Type != BrickBomb {
			continue
		}
		for j, other := range w.Bricks {
			if gone[j] || other.Same(&bomb) {
				continue
			}
			if bomb.Rect.OriginDistance(other.Rect) <= radius {
				gone[j] = true
				out = append(out, Removal{Brick: *other, Blasted: true})
			}
		}
	}

	kept := w.Bricks[:0]
	for i, b := range w.Bricks {
		if !gone[i] {
			kept = append(kept, b)
		}
	}
	clear(w.Bricks[len(kept):])
	w.Bricks = kept

	return out
}
