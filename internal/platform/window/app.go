// Package window runs a game in a desktop window with Ebitengine. It draws
// the arena in pixels the way the terminal frontend draws it in cells, and
// turns keys and clicks on its buttons into the same actions.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
	"github.com/vovakirdan/concrete-annihilator/internal/platform/ui"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

// errQuit ends the game loop from Update.
var errQuit = errors.New("window: quit")

// Sim is the part of the game the window drives.
type Sim interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Snapshot() annihilator.Snapshot
	Config() config.AnnihilatorConfig
	LastRun() annihilator.RunSummary
	Listen(l annihilator.Listener)
}

// Held keys act on every tick they are down; pressed keys once per press.
var (
	heldKeys = map[ebiten.Key]core.Action{
		ebiten.KeyArrowLeft:  core.ActionLeft,
		ebiten.KeyA:          core.ActionLeft,
		ebiten.KeyArrowRight: core.ActionRight,
		ebiten.KeyD:          core.ActionRight,
	}
	pressedKeys = map[ebiten.Key]core.Action{
		ebiten.KeySpace:   core.ActionLaunch,
		ebiten.KeyArrowUp: core.ActionLaunch,
		ebiten.KeyEnter:   core.ActionConfirm,
		ebiten.KeyP:       core.ActionPause,
		ebiten.KeyEscape:  core.ActionPause,
		ebiten.KeyB:       core.ActionBack,
		ebiten.KeyQ:       core.ActionQuit,
	}
)

// Option customises an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithStore records lost runs.
func WithStore(s *storage.Store) Option {
	return func(a *App) { a.store = s }
}

// WithRegions replaces the default buttons.
func WithRegions(r []ui.Region) Option {
	return func(a *App) { a.regions = r }
}

// App adapts a game to ebiten.Game.
type App struct {
	sim     Sim
	runtime core.RuntimeConfig
	arena   config.ArenaConfig
	regions []ui.Region
	labels  *ui.LabelCache[*ebiten.Image]
	logger  *log.Logger
	store   *storage.Store

	frame  core.InputFrame
	snap   annihilator.Snapshot
	ticks  uint64
	saved  bool
	titles map[string]*ebiten.Image
}

// New creates the window adapter and resets the game.
func New(sim Sim, runtime core.RuntimeConfig, opts ...Option) *App {
	a := &App{
		sim:     sim,
		runtime: runtime,
		regions: ui.DefaultRegions(),
		labels:  ui.NewLabelCache(brickLabel),
		logger:  log.Default(),
		titles:  make(map[string]*ebiten.Image),
	}
	for _, opt := range opts {
		opt(a)
	}

	sim.Listen(a.labels)
	sim.Reset(runtime)
	a.arena = sim.Config().Arena
	a.snap = sim.Snapshot()
	return a
}

// Update reads input and runs one simulation tick.
func (a *App) Update() error {
	for k, act := range heldKeys {
		if ebiten.IsKeyPressed(k) {
			a.frame.Set(act)
		}
	}
	for k, act := range pressedKeys {
		if inpututil.IsKeyJustPressed(k) {
			a.frame.Set(act)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.Click(x, y)
	}

	if a.frame.Has(core.ActionQuit) {
		return errQuit
	}
	a.step()
	return nil
}

// Click resolves a pointer press against the buttons of the current mode.
func (a *App) Click(x, y int) {
	if r, ok := ui.HitTest(a.regions, a.snap.Mode, x, y); ok {
		a.logger.Debug("button", "name", r.Name, "action", r.Action)
		a.frame.Set(r.Action)
	}
}

func (a *App) step() {
	result := a.sim.Step(a.frame)
	a.frame.Clear()
	a.snap = a.sim.Snapshot()
	a.ticks++

	switch {
	case result.State.GameOver && !a.saved:
		a.saveRun()
		a.saved = true
	case !result.State.GameOver:
		a.saved = false
	}
}

func (a *App) saveRun() {
	if a.store == nil {
		return
	}
	run := a.sim.LastRun()
	_, err := a.store.SaveRun(storage.RunRecord{
		GameID:   a.sim.ID(),
		Wave:     run.Wave,
		Damage:   run.Stats.Damage,
		BallSize: run.Stats.BallSize,
		MaxBalls: run.Stats.MaxBalls,
		Seed:     run.Seed,
	})
	if err != nil {
		a.logger.Warn("could not save run", "game", a.sim.ID(), "err", err)
	}
}

// Draw renders the last snapshot.
func (a *App) Draw(screen *ebiten.Image) {
	s := a.snap

	switch s.Mode {
	case annihilator.ModeMenu:
		a.drawMenu(screen, s)
	case annihilator.ModeLoss:
		a.drawLoss(screen, s)
	default:
		a.drawGame(screen, s)
		if s.Mode == annihilator.ModePaused {
			shade(screen)
			drawTextCentered(screen, annihilator.PausedText, core.NewRect(0, 120, a.arena.Width, 40), colorButton)
		}
	}

	for _, r := range a.regions {
		if r.ActiveIn(s.Mode) {
			drawButton(screen, r)
		}
	}
}

func (a *App) drawMenu(screen *ebiten.Image, s annihilator.Snapshot) {
	drawScaled(screen, a.title(annihilator.TitleText, colorTitle), core.NewRect(60, 40, 480, 60))
	drawTextCentered(screen, annihilator.SubtitleText, core.NewRect(0, 130, a.arena.Width, 40), colorButton)
	if s.BestScore > 0 {
		drawTextCentered(screen, "Best wave: "+strconv.Itoa(s.BestScore), core.NewRect(0, 320, a.arena.Width, 20), colorNotice)
	}
	if s.Wave > 1 {
		drawTextCentered(screen, "Continue from wave "+strconv.Itoa(s.Wave), core.NewRect(0, 470, a.arena.Width, 20), colorButton)
	}
}

func (a *App) drawLoss(screen *ebiten.Image, s annihilator.Snapshot) {
	drawScaled(screen, a.title(annihilator.LossText, colorWarning), core.NewRect(150, 150, 300, 70))
	drawTextCentered(screen, fmt.Sprintf("You reached wave %d", s.LastScore), core.NewRect(0, 260, a.arena.Width, 20), colorButton)
	drawTextCentered(screen, fmt.Sprintf("Best wave: %d", s.BestScore), core.NewRect(0, 290, a.arena.Width, 20), colorNotice)
}

func (a *App) drawGame(screen *ebiten.Image, s annihilator.Snapshot) {
	drawArena(screen, a.arena)

	for _, b := range s.Bricks {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(b.X), float64(b.Y))
		screen.DrawImage(a.labels.Get(b), op)
	}

	if s.Mode == annihilator.ModeInRound && !s.Round {
		drawAim(screen, s, a.arena)
	}
	for _, b := range s.Balls {
		drawBall(screen, b, s.BallSize)
	}

	if blinkOn(a.ticks) {
		drawScaled(screen, a.title("Wave n°"+strconv.Itoa(s.Wave), colorTitle), core.NewRect(50, 20, 250, 50))
	}

	hud := fmt.Sprintf("Damage %d  Balls %d  Size %d", s.Damage, s.MaxBalls, s.BallSize)
	drawText(screen, hud, a.arena.Left, a.arena.Height-18, colorButton)
	if s.Announcement != "" {
		drawTextCentered(screen, s.Announcement, core.NewRect(0, a.arena.Top+10, a.arena.Width, 20), colorNotice)
	}
	if s.LoadError != "" {
		drawText(screen, "level error: "+s.LoadError, 4, a.arena.Height-36, colorWarning)
	}
}

// title caches scaled-up text images by content.
func (a *App) title(s string, clr color.Color) *ebiten.Image {
	if img, ok := a.titles[s]; ok {
		return img
	}
	img := newTextImage(s, clr)
	a.titles[s] = img
	return img
}

// Layout keeps the arena size; Ebitengine scales it to the window.
func (a *App) Layout(_, _ int) (int, int) {
	return a.arena.Width, a.arena.Height
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(sim Sim, runtime core.RuntimeConfig, opts ...Option) error {
	app := New(sim, runtime, opts...)

	ebiten.SetWindowSize(app.arena.Width, app.arena.Height)
	ebiten.SetWindowTitle(sim.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if runtime.TickRate > 0 {
		ebiten.SetTPS(runtime.TickRate)
	}

	err := ebiten.RunGame(app)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
