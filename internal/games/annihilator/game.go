package annihilator

import (
	"errors"
	"slices"
	"time"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/registry"
)

// Mode is the display mode, derived from the started, paused and lost flags.
type Mode int

const (
	ModeMenu Mode = iota
	ModeInRound
	ModePaused
	ModeLoss
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeInRound:
		return "in-round"
	case ModePaused:
		return "paused"
	case ModeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Variant selects where wave layouts come from.
type Variant int

const (
	VariantProcedural Variant = iota // generated from the seed
	VariantLevels                    // text level files
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// levelsDir stores the level directory set via CLI
var levelsDir string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevelsDir makes the levels variant read its files from dir instead of
// the built-in set. dir may also name a single level file.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// Option customises a Game at construction.
type Option func(*Game)

// WithConfig uses cfg instead of loading the configuration on Reset.
func WithConfig(cfg config.AnnihilatorConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgFixed = true
	}
}

// WithSource uses src for every wave layout.
func WithSource(src LayoutSource) Option {
	return func(g *Game) {
		g.source = src
		g.sourceFixed = true
	}
}

// WithClock replaces time.Now for announcement deadlines.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithListener registers an event listener.
func WithListener(l Listener) Option {
	return func(g *Game) {
		g.Listen(l)
	}
}

// Game is the round controller and the single source of truth for one
// player's world. It is not safe for concurrent use; frontends serialise
// transitions and ticks on one goroutine.
type Game struct {
	variant Variant

	cfg         config.AnnihilatorConfig
	cfgFixed    bool
	cfgErr      error
	source      LayoutSource
	sourceFixed bool
	sourceErr   error
	now         func() time.Time
	listeners   Listeners

	runtime core.RuntimeConfig
	bounds  Bounds
	grid    Grid
	rng     *SimpleRNG

	angle Angle
	balls []Ball
	wave  *Wave
	stats Stats

	started bool
	paused  bool
	lost    bool
	loaded  bool
	round   bool

	ballsInRound int
	roundTick    uint64 // ticks since launch, drives the spawn cadence
	frame        uint64 // simulated ticks since Reset

	announce  Announcement
	lastScore int
	bestScore int
	lastRun   RunSummary
	loadErr   error
}

// RunSummary describes the run that ended with the last loss.
type RunSummary struct {
	Wave  int
	Stats Stats
	Seed  int64
}

// New creates a game with procedurally generated waves.
func New(opts ...Option) *Game {
	return newGame(VariantProcedural, opts)
}

// NewLevels creates a game that plays text level files.
func NewLevels(opts ...Option) *Game {
	return newGame(VariantLevels, opts)
}

func newGame(v Variant, opts []Option) *Game {
	g := &Game{
		variant: v,
		cfg:     config.DefaultAnnihilatorConfig(),
		now:     time.Now,
		wave:    NewWave(),
		angle:   NewAngle(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantLevels {
		return "annihilator_levels"
	}
	return "annihilator"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantLevels {
		return "Concrete Annihilator (Levels)"
	}
	return "Concrete Annihilator"
}

// Listen adds an event listener.
func (g *Game) Listen(l Listener) {
	if l != nil {
		g.listeners = append(g.listeners, l)
	}
}

// Reset loads the configuration and returns to the menu with a fresh run.
// The best score of the process is kept.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgFixed {
		cfg, err := config.LoadAnnihilator(configPath)
		if err != nil {
			cfg = config.DefaultAnnihilatorConfig()
		}
		g.cfgErr = err
		config.ApplyAnnihilatorPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	g.bounds = BoundsFrom(g.cfg.Arena)
	g.grid = GridFrom(g.cfg.Bricks)
	g.rng = NewSimpleRNG(runtime.Seed)
	lo, hi, step := g.cfg.Aim.Bounds()
	g.angle = NewAngleWithin(lo, hi, step)

	if !g.sourceFixed {
		g.source, g.sourceErr = g.defaultSource()
	}

	g.balls = g.balls[:0]
	g.wave = NewWave()
	g.stats = DefaultStats(g.cfg.Ball)
	g.started, g.paused, g.lost, g.loaded, g.round = false, false, false, false, false
	g.ballsInRound = 0
	g.roundTick = 0
	g.frame = 0
	g.announce = Announcement{}
	g.lastScore = 0
	g.lastRun = RunSummary{}
	g.loadErr = nil
}

// defaultSource picks the layout source of the variant. A levels game whose
// files cannot be read falls back to the built-in set, then to generation,
// and reports why.
func (g *Game) defaultSource() (LayoutSource, error) {
	if g.variant != VariantLevels {
		return NewProceduralSource(g.cfg, g.rng), nil
	}

	var errs []error
	if levelsDir != "" {
		src, err := LoadLevelPath(levelsDir)
		if err == nil {
			return src, nil
		}
		errs = append(errs, err)
	}
	src, err := BuiltinLevels()
	if err == nil {
		return src, errors.Join(errs...)
	}
	errs = append(errs, err)
	return NewProceduralSource(g.cfg, g.rng), errors.Join(errs...)
}

// Mode returns the active display mode.
func (g *Game) Mode() Mode {
	switch {
	case g.lost:
		return ModeLoss
	case !g.started:
		return ModeMenu
	case g.paused:
		return ModePaused
	default:
		return ModeInRound
	}
}

// Start leaves the menu. The current wave's layout is reloaded on the next tick.
func (g *Game) Start() {
	if g.Mode() != ModeMenu {
		return
	}
	g.started = true
	g.loaded = false
	g.clearRound()
	g.emit(Event{Kind: EventStarted})
}

// Pause freezes the simulation.
func (g *Game) Pause() {
	if g.Mode() != ModeInRound {
		return
	}
	g.paused = true
	g.emit(Event{Kind: EventPaused})
}

// Resume unfreezes the simulation.
func (g *Game) Resume() {
	if g.Mode() != ModePaused {
		return
	}
	g.paused = false
	g.emit(Event{Kind: EventResumed})
}

// GiveUp returns from the pause screen to the menu. The wave and the
// tunables are kept for the next start.
func (g *Game) GiveUp() {
	if g.Mode() != ModePaused {
		return
	}
	g.started = false
	g.paused = false
	g.emit(Event{Kind: EventGaveUp})
}

// Retry leaves the loss screen for a new run from wave 1.
func (g *Game) Retry() {
	if g.Mode() != ModeLoss {
		return
	}
	g.lost = false
	g.started = true
	g.loaded = false
	g.clearRound()
	g.emit(Event{Kind: EventRetried})
}

// AimLeft rotates the launch angle towards the left wall.
func (g *Game) AimLeft() {
	g.angle.Increment()
}

// AimRight rotates the launch angle towards the right wall.
func (g *Game) AimRight() {
	g.angle.Decrement()
}

// Launch starts a round. It does nothing while a round is running or
// outside the in-round mode, and reports whether a round started.
func (g *Game) Launch() bool {
	if g.Mode() != ModeInRound || g.round {
		return false
	}
	g.round = true
	g.ballsInRound = 0
	g.roundTick = 0
	return true
}

func (g *Game) clearRound() {
	g.balls = g.balls[:0]
	g.round = false
	g.ballsInRound = 0
}

// Step applies the input frame's transitions, then runs one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionLeft) {
		g.AimLeft()
	}
	if in.Has(core.ActionRight) {
		g.AimRight()
	}

	switch g.Mode() {
	case ModeMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			g.Start()
		}
	case ModeInRound:
		if in.Has(core.ActionPause) {
			g.Pause()
		} else if in.Has(core.ActionLaunch) {
			g.Launch()
		}
	case ModePaused:
		if in.Has(core.ActionBack) {
			g.GiveUp()
		} else if in.Has(core.ActionPause) || in.Has(core.ActionConfirm) {
			g.Resume()
		}
	case ModeLoss:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			g.Retry()
		}
	}

	g.Tick()
	return core.StepResult{State: g.State()}
}

// Tick runs one simulation step. Nothing happens outside the in-round mode.
func (g *Game) Tick() {
	if !g.started || g.paused {
		return
	}

	if !g.loaded {
		g.loadLayout()
	}
	g.spawn()
	g.advanceBalls()
	g.removeDeadBricks()
	g.endRound()

	if g.announce.Text != "" && !g.announce.Active(g.now()) {
		g.announce = Announcement{}
	}

	g.roundTick++
	g.frame++
}

// loadLayout replaces the bricks with the current wave's layout.
func (g *Game) loadLayout() {
	layout, err := g.source.Layout(g.wave.Number)
	g.loadErr = err
	if err != nil {
		g.emit(Event{Kind: EventLoadFailed, Err: err})
	}
	g.wave.Load(layout, g.grid)
	g.loaded = true
}

// spawn adds a ball every SpawnEvery ticks of a round, the first one at once.
func (g *Game) spawn() {
	if !g.round || g.ballsInRound >= g.stats.MaxBalls {
		return
	}
	every := uint64(max(g.cfg.Ball.SpawnEvery, 1)) //#nosec G115 -- clamped positive
	if g.ballsInRound != 0 && g.roundTick%every != 0 {
		return
	}

	size := float32(g.stats.BallSize)
	pos := core.Vec2{
		X: (float32(g.cfg.Arena.Width) - size) / 2,
		Y: float32(g.cfg.Arena.Height) - size,
	}
	g.balls = append(g.balls, NewBall(pos, g.angle, g.cfg.Ball.LaunchSpeed))
	g.ballsInRound++
	g.emit(Event{Kind: EventBallSpawned})
}

// advanceBalls moves every ball and drops the expired ones, last index first.
func (g *Game) advanceBalls() {
	size := float32(g.stats.BallSize)

	var expired []int
	for i := range g.balls {
		status, hit := g.balls[i].Advance(g.bounds, g.wave.Bricks, size, g.stats.Damage)
		if status == BallExpired {
			expired = append(expired, i)
			continue
		}
		if hit != nil {
			g.emit(Event{Kind: EventBrickDamaged, Rect: hit.Rect, HP: hit.HP})
		}
	}

	for k := len(expired) - 1; k >= 0; k-- {
		i := expired[k]
		g.balls = slices.Delete(g.balls, i, i+1)
	}
}

// removeDeadBricks runs the wave's removal pass and applies bomb and pickup
// side effects.
func (g *Game) removeDeadBricks() {
	for _, r := range g.wave.RemoveDead(g.cfg.Bricks.BombRadius()) {
		g.emit(Event{Kind: EventBrickBroken, Rect: r.Brick.Rect})
		if r.Blasted {
			continue
		}
		if r.Brick.Type == BrickBomb {
			g.emit(Event{Kind: EventBombExploded, Rect: r.Brick.Rect})
			continue
		}
		g.applyPickup(r.Brick.Type)
	}
}

// endRound closes a round once its last ball is gone: a cleared wave
// advances, otherwise the bricks move down and may cross the limit line.
func (g *Game) endRound() {
	if !g.round || len(g.balls) > 0 {
		return
	}
	g.round = false
	g.ballsInRound = 0

	if g.wave.Cleared() {
		g.wave.Advance()
		g.loadLayout()
		g.emit(Event{Kind: EventWaveAdvanced})
		return
	}

	g.wave.ShiftDown(g.grid.CellSize)
	g.emit(Event{Kind: EventBricksShifted})
	if g.wave.AnyOverLimit(g.cfg.Arena.LimitY) {
		g.lose()
	}
}

// lose records the score and resets the run to wave 1 with default tunables.
func (g *Game) lose() {
	reached := g.wave.Number
	g.lastScore = reached
	g.bestScore = max(g.bestScore, reached)
	g.lastRun = RunSummary{Wave: reached, Stats: g.stats, Seed: g.runtime.Seed}

	g.lost = true
	g.started = false
	g.paused = false
	g.clearRound()
	g.stats = DefaultStats(g.cfg.Ball)
	g.wave = NewWave()
	g.loaded = false

	g.emit(Event{Kind: EventLost, Wave: reached})
}

func (g *Game) emit(e Event) {
	if len(g.listeners) == 0 {
		return
	}
	if e.Wave == 0 {
		e.Wave = g.wave.Number
	}
	g.listeners.OnEvent(e)
}

// State returns the platform summary of the game.
func (g *Game) State() core.GameState {
	score := g.wave.Number
	if g.lost {
		score = g.lastScore
	}
	return core.GameState{
		Score:    score,
		Best:     g.bestScore,
		GameOver: g.lost,
		Paused:   g.paused,
	}
}

// Config returns the configuration in use.
func (g *Game) Config() config.AnnihilatorConfig { return g.cfg }

// Stats returns the current tunables.
func (g *Game) Stats() Stats { return g.stats }

// WaveNumber returns the current wave.
func (g *Game) WaveNumber() int { return g.wave.Number }

// InRound reports whether a volley is in flight.
func (g *Game) InRound() bool { return g.round }

// BallsInRound returns how many balls this round has spawned.
func (g *Game) BallsInRound() int { return g.ballsInRound }

// Angle returns the launch angle.
func (g *Game) Angle() Angle { return g.angle }

// LastRun returns the summary of the last lost run.
func (g *Game) LastRun() RunSummary { return g.lastRun }

// LoadErr returns the problems met loading the config or the layouts, or nil.
// A config that failed to load leaves the game on the defaults.
func (g *Game) LoadErr() error {
	return errors.Join(g.cfgErr, g.sourceErr, g.loadErr)
}

// Register the games with the registry
func init() {
	registry.Register("annihilator", func() registry.Game {
		return New()
	})
	registry.Register("annihilator_levels", func() registry.Game {
		return NewLevels()
	})
}
