package annihilator

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
)

// Cell is one grid position of a layout. HP 0 means empty.
type Cell struct {
	HP   int
	Type BrickType
}

// Empty reports whether the cell holds no brick.
func (c Cell) Empty() bool { return c.HP <= 0 }

// Layout is a brick grid indexed [row][col]. Rows may differ in length.
type Layout [][]Cell

// Count returns the number of bricks in the layout.
func (l Layout) Count() int {
	n := 0
	for _, row := range l {
		for _, c := range row {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}

// LayoutSource produces the brick layout of a wave.
// A source may return a usable layout together with an error describing
// what it had to skip; callers show the error and play on.
type LayoutSource interface {
	Layout(wave int) (Layout, error)
}

// LayoutFunc adapts a function to LayoutSource.
type LayoutFunc func(wave int) (Layout, error)

// Layout calls f(wave).
func (f LayoutFunc) Layout(wave int) (Layout, error) { return f(wave) }

// Odds are the per-cell probabilities of procedural generation.
type Odds struct {
	Brick   float64
	Special float64
}

// GenerateLayout builds a procedural layout. Row r is unlocked when r <= wave.
// Each unlocked cell holds a brick with probability odds.Brick; a present
// brick is special with probability odds.Special, its kind drawn uniformly
// among the four special kinds. Locked rows stay empty.
func GenerateLayout(wave int, rng *SimpleRNG, columns, rows, hp int, odds Odds) Layout {
	layout := make(Layout, rows)
	for r := range rows {
		layout[r] = make([]Cell, columns)
		if r > wave {
			continue
		}
		for c := range columns {
			if rng.Float64() >= odds.Brick {
				continue
			}
			t := BrickNormal
			if rng.Float64() < odds.Special {
				t = specialTypes[rng.Intn(len(specialTypes))]
			}
			layout[r][c] = Cell{HP: hp, Type: t}
		}
	}
	return layout
}

// ProceduralSource generates every wave from a seeded RNG, getting denser
// as the difficulty manager raises the level.
type ProceduralSource struct {
	rng        *SimpleRNG
	bricks     config.BricksConfig
	difficulty *config.DifficultyManager
}

// NewProceduralSource creates a generator over the configured grid.
func NewProceduralSource(cfg config.AnnihilatorConfig, rng *SimpleRNG) *ProceduralSource {
	return &ProceduralSource{
		rng:        rng,
		bricks:     cfg.Bricks,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Layout generates the layout of a wave. It never fails.
func (p *ProceduralSource) Layout(wave int) (Layout, error) {
	odds := Odds{
		Brick:   p.difficulty.BrickChance(p.bricks.Chance, wave),
		Special: p.difficulty.SpecialChance(p.bricks.SpecialChance, wave),
	}
	hp := p.difficulty.BrickHP(p.bricks.HP, wave)
	return GenerateLayout(wave, p.rng, p.bricks.Columns, p.bricks.Rows, hp, odds), nil
}

// ErrMalformedRow is wrapped by every LayoutError.
var ErrMalformedRow = errors.New("malformed level row")

// LayoutError reports a level row that could not be parsed.
// The row is loaded empty.
type LayoutError struct {
	Level string
	Row   int
	Token string
	Err   error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("level %s: row %d: token %q: %v", e.Level, e.Row+1, e.Token, e.Err)
}

func (e *LayoutError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// ParseGrid reads a text level: one line per row, cells separated by single
// spaces, each an unsigned integer. 0 (or an empty token) is an empty cell,
// any other value a normal brick with that many hit points.
// A row holding anything else is left empty and reported; parsing goes on.
func ParseGrid(name string, r io.Reader) (Layout, error) {
	var (
		layout Layout
		errs   []error
	)

	sc := bufio.NewScanner(r)
	for row := 0; sc.Scan(); row++ {
		line := strings.TrimRight(sc.Text(), "\r")
		cells, err := parseRow(line)
		if err != nil {
			errs = append(errs, &LayoutError{Level: name, Row: row, Token: err.token, Err: err.err})
			cells = nil
		}
		layout = append(layout, cells)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("level %s: %w", name, err))
	}

	return layout, errors.Join(errs...)
}

type tokenError struct {
	token string
	err   error
}

func parseRow(line string) ([]Cell, *tokenError) {
	tokens := strings.Split(line, " ")
	cells := make([]Cell, len(tokens))
	for col, tok := range tokens {
		if tok == "" {
			continue
		}
		hp, err := strconv.ParseUint(tok, 10, 31)
		if err != nil {
			return nil, &tokenError{token: tok, err: err}
		}
		cells[col] = Cell{HP: int(hp), Type: BrickNormal}
	}
	return cells, nil
}

// LoadGridFile parses one level file. A missing or unreadable file returns
// the wrapped os error and no layout.
func LoadGridFile(name string) (Layout, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	defer f.Close()
	return ParseGrid(strings.TrimSuffix(filepath.Base(name), ".txt"), f)
}

// GridSource serves layouts read from text level files. Wave n plays level
// (n-1) mod count, so the set repeats once exhausted.
type GridSource struct {
	names   []string
	layouts []Layout
	errs    []error
}

// NewGridSource wraps already parsed layouts.
func NewGridSource(layouts ...Layout) *GridSource {
	g := &GridSource{layouts: layouts, errs: make([]error, len(layouts))}
	for i := range layouts {
		g.names = append(g.names, strconv.Itoa(i+1))
	}
	return g
}

// LoadLevels parses every *.txt file of fsys's root, in name order.
// Malformed rows do not fail the load; they come back from Layout with the
// level they belong to.
func LoadLevels(fsys fs.FS) (*GridSource, error) {
	names, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("levels: no *.txt files: %w", fs.ErrNotExist)
	}
	sort.Strings(names)

	g := &GridSource{}
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("levels: cannot open %s: %w", name, err)
		}
		layout, perr := ParseGrid(strings.TrimSuffix(path.Base(name), ".txt"), f)
		f.Close()

		g.names = append(g.names, name)
		g.layouts = append(g.layouts, layout)
		g.errs = append(g.errs, perr)
	}
	return g, nil
}

// LoadLevelDir loads the levels of a directory on disk.
func LoadLevelDir(dir string) (*GridSource, error) {
	return LoadLevels(os.DirFS(dir))
}

// LoadLevelPath loads a level directory, or a single level file that then
// repeats every wave.
func LoadLevelPath(p string) (*GridSource, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if info.IsDir() {
		return LoadLevelDir(p)
	}

	layout, err := LoadGridFile(p)
	if layout == nil && err != nil {
		return nil, err
	}
	g := NewGridSource(layout)
	g.names[0] = filepath.Base(p)
	g.errs[0] = err
	return g, nil
}

//go:embed levels/*.txt
var builtinLevels embed.FS

// BuiltinLevels returns the level set shipped with the game.
func BuiltinLevels() (*GridSource, error) {
	sub, err := fs.Sub(builtinLevels, "levels")
	if err != nil {
		return nil, fmt.Errorf("levels: embedded: %w", err)
	}
	return LoadLevels(sub)
}

// Len returns the number of levels.
func (g *GridSource) Len() int { return len(g.layouts) }

// Layout returns the level for a wave and the parse error of that level, if any.
func (g *GridSource) Layout(wave int) (Layout, error) {
	if len(g.layouts) == 0 {
		return nil, fmt.Errorf("levels: empty level set: %w", fs.ErrNotExist)
	}
	i := (max(wave, 1) - 1) % len(g.layouts)
	return g.layouts[i], g.errs[i]
}
