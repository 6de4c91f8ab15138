package annihilator

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/registry"
)

func testConfig() config.AnnihilatorConfig {
	return config.DefaultAnnihilatorConfig()
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// layoutsByWave serves fixed layouts, an empty one for unlisted waves.
func layoutsByWave(layouts map[int]Layout) LayoutSource {
	return LayoutFunc(func(wave int) (Layout, error) {
		return layouts[wave], nil
	})
}

// single returns a layout holding one brick.
func single(col, row, hp int, t BrickType) Layout {
	layout := make(Layout, row+1)
	layout[row] = make([]Cell, col+1)
	layout[row][col] = Cell{HP: hp, Type: t}
	return layout
}

func merge(layouts ...Layout) Layout {
	var out Layout
	for _, l := range layouts {
		for r, row := range l {
			for len(out) <= r {
				out = append(out, nil)
			}
			for len(out[r]) < len(row) {
				out[r] = append(out[r], Cell{})
			}
			for c, cell := range row {
				if !cell.Empty() {
					out[r][c] = cell
				}
			}
		}
	}
	return out
}

func newTestGame(t *testing.T, src LayoutSource) (*Game, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := New(WithConfig(testConfig()), WithSource(src), WithClock(clock.Now), WithListener(rec))
	g.Reset(core.DefaultConfig())
	return g, rec, clock
}

// playRound launches a volley and ticks until it is over.
func playRound(t *testing.T, g *Game) {
	t.Helper()
	if !g.Launch() {
		t.Fatalf("Launch() refused in mode %v", g.Mode())
	}
	for i := 0; g.InRound(); i++ {
		if i > 5000 {
			t.Fatal("round did not end")
		}
		g.Tick()
	}
}

func TestGameIdentity(t *testing.T) {
	if g := New(); g.ID() != "annihilator" || g.Title() != "Concrete Annihilator" {
		t.Errorf("New() = %q / %q", g.ID(), g.Title())
	}
	if g := NewLevels(); g.ID() != "annihilator_levels" {
		t.Errorf("NewLevels().ID() = %q", g.ID())
	}
	for _, id := range []string{"annihilator", "annihilator_levels"} {
		if !registry.Exists(id) {
			t.Errorf("%s is not registered", id)
		}
	}
}

func TestGameResetState(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(nil))

	if g.Mode() != ModeMenu {
		t.Errorf("Mode() = %v, expected menu", g.Mode())
	}
	if g.WaveNumber() != 1 || g.InRound() || g.BallsInRound() != 0 {
		t.Errorf("wave %d round %v balls %d", g.WaveNumber(), g.InRound(), g.BallsInRound())
	}
	if g.Stats() != DefaultStats(testConfig().Ball) {
		t.Errorf("Stats() = %+v", g.Stats())
	}
	if g.Angle().Radians() != math.Pi/2 {
		t.Errorf("angle = %f, expected π/2", g.Angle().Radians())
	}
}

func TestGameTransitions(t *testing.T) {
	// prepare brings a fresh game into the named mode.
	prepare := map[Mode]func(*Game){
		ModeMenu:    func(*Game) {},
		ModeInRound: func(g *Game) { g.Start() },
		ModePaused:  func(g *Game) { g.Start(); g.Pause() },
		ModeLoss:    func(g *Game) { g.Start(); g.lose() },
	}

	tests := []struct {
		from   Mode
		action core.Action
		want   Mode
	}{
		{ModeMenu, core.ActionConfirm, ModeInRound},
		{ModeMenu, core.ActionLaunch, ModeInRound},
		{ModeMenu, core.ActionPause, ModeMenu},
		{ModeMenu, core.ActionBack, ModeMenu},
		{ModeInRound, core.ActionPause, ModePaused},
		{ModeInRound, core.ActionConfirm, ModeInRound},
		{ModeInRound, core.ActionBack, ModeInRound},
		{ModePaused, core.ActionPause, ModeInRound},
		{ModePaused, core.ActionConfirm, ModeInRound},
		{ModePaused, core.ActionBack, ModeMenu},
		{ModePaused, core.ActionLaunch, ModePaused},
		{ModeLoss, core.ActionConfirm, ModeInRound},
		{ModeLoss, core.ActionLaunch, ModeInRound},
		{ModeLoss, core.ActionPause, ModeLoss},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"/"+tc.action.String(), func(t *testing.T) {
			g, _, _ := newTestGame(t, layoutsByWave(nil))
			prepare[tc.from](g)
			if g.Mode() != tc.from {
				t.Fatalf("setup reached %v, expected %v", g.Mode(), tc.from)
			}

			g.Step(core.FrameOf(tc.action))

			if g.Mode() != tc.want {
				t.Errorf("Mode() = %v, expected %v", g.Mode(), tc.want)
			}
		})
	}
}

// Test that launching only works in-round and never twice in one round.
func TestGameLaunchGuards(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: single(0, 0, 1000, BrickNormal)}))

	if g.Launch() {
		t.Error("Launch() from the menu should be refused")
	}
	g.Start()
	if !g.Launch() {
		t.Fatal("Launch() in-round should start a round")
	}
	g.Tick()
	if g.Launch() {
		t.Error("second Launch() during a round should be refused")
	}
	if g.BallsInRound() != 1 {
		t.Errorf("BallsInRound() = %d, expected 1", g.BallsInRound())
	}

	g.Pause()
	before := g.Snapshot().Hash()
	g.Tick()
	if g.Snapshot().Hash() != before {
		t.Error("Tick() while paused changed the state")
	}
}

// Test that aiming works in every mode and stays within bounds.
func TestGameAimInput(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(nil))

	g.Step(core.FrameOf(core.ActionLeft))
	if g.Angle().Radians() <= math.Pi/2 {
		t.Errorf("left did not raise the angle: %f", g.Angle().Radians())
	}
	for range 500 {
		g.Step(core.FrameOf(core.ActionRight))
	}
	lo, _, _ := testConfig().Aim.Bounds()
	if g.Angle().Radians() != lo {
		t.Errorf("angle = %f, expected the lower bound %f", g.Angle().Radians(), lo)
	}
}

func TestGameClearsWave(t *testing.T) {
	next := single(2, 1, 5, BrickNormal)
	g, rec, _ := newTestGame(t, layoutsByWave(map[int]Layout{
		1: single(5, 0, 1, BrickNormal),
		2: next,
	}))

	g.Start()
	g.Tick()
	if got := len(g.Snapshot().Bricks); got != 1 {
		t.Fatalf("wave 1 loaded %d bricks, expected 1", got)
	}
	playRound(t, g)

	if g.WaveNumber() != 2 {
		t.Errorf("WaveNumber() = %d, expected 2", g.WaveNumber())
	}
	if g.BallsInRound() != 0 {
		t.Errorf("BallsInRound() = %d after the round", g.BallsInRound())
	}
	s := g.Snapshot()
	if len(s.Bricks) != 1 || s.Bricks[0].Y != 150+32 || s.Bricks[0].HP != 5 {
		t.Errorf("wave 2 bricks = %+v", s.Bricks)
	}

	counts := map[EventKind]int{
		EventStarted:       1,
		EventBallSpawned:   10,
		EventBrickDamaged:  1,
		EventBrickBroken:   1,
		EventWaveAdvanced:  1,
		EventBricksShifted: 0,
		EventLost:          0,
	}
	for kind, want := range counts {
		if got := rec.count(kind); got != want {
			t.Errorf("%v events = %d, expected %d", kind, got, want)
		}
	}
	if s.Mode != ModeInRound || s.Round {
		t.Errorf("after the round: mode %v round %v", s.Mode, s.Round)
	}
}

func TestGamePickupAnnouncement(t *testing.T) {
	g, rec, clock := newTestGame(t, layoutsByWave(map[int]Layout{1: single(5, 0, 1, BrickMoreBalls)}))
	start := clock.Now()

	g.Start()
	g.Tick()
	playRound(t, g)

	if g.Stats().MaxBalls != 13 {
		t.Errorf("MaxBalls = %d, expected 13", g.Stats().MaxBalls)
	}
	if rec.count(EventPickupMoreBalls) != 1 {
		t.Errorf("pickup events = %d, expected 1", rec.count(EventPickupMoreBalls))
	}
	// The volley grows as soon as the bonus lands.
	if rec.count(EventBallSpawned) != 13 {
		t.Errorf("spawned %d balls, expected 13", rec.count(EventBallSpawned))
	}

	s := g.Snapshot()
	if s.Announcement != TextMoreBalls || !s.AnnounceUntil.Equal(start.Add(2*time.Second)) {
		t.Errorf("announcement = %q until %v", s.Announcement, s.AnnounceUntil)
	}

	clock.Advance(2 * time.Second)
	g.Tick()
	if s := g.Snapshot(); s.Announcement != "" {
		t.Errorf("announcement %q still showing", s.Announcement)
	}
}

func TestGamePickups(t *testing.T) {
	tests := []struct {
		brick BrickType
		start func(*Stats)
		want  Stats
		text  string
	}{
		{brick: BrickMoreDamage, want: Stats{Damage: 2, BallSize: 10, MaxBalls: 10}, text: TextMoreDamage},
		{brick: BrickBiggerBalls, want: Stats{Damage: 1, BallSize: 12, MaxBalls: 10}, text: TextBiggerBalls},
		{
			brick: BrickBiggerBalls,
			start: func(s *Stats) { s.BallSize = 29 },
			want:  Stats{Damage: 1, BallSize: 30, MaxBalls: 10},
			text:  TextBiggerBalls,
		},
		{brick: BrickNormal, want: Stats{Damage: 1, BallSize: 10, MaxBalls: 10}},
		{brick: BrickBomb, want: Stats{Damage: 1, BallSize: 10, MaxBalls: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.brick.String(), func(t *testing.T) {
			g, _, _ := newTestGame(t, layoutsByWave(nil))
			if tc.start != nil {
				tc.start(&g.stats)
			}
			g.applyPickup(tc.brick)
			if g.Stats() != tc.want {
				t.Errorf("Stats() = %+v, expected %+v", g.Stats(), tc.want)
			}
			if g.announce.Text != tc.text {
				t.Errorf("announcement = %q, expected %q", g.announce.Text, tc.text)
			}
		})
	}
}

// Test that a surviving wave moves down one cell and the game goes on.
// Test that a wall of tough bricks along the left border never keeps a
// round from ending, whatever the aim.
func TestGameRoundEndsBesideWallColumn(t *testing.T) {
	var wall []Layout
	for row := range testConfig().Bricks.Rows {
		wall = append(wall, single(0, row, 100_000, BrickNormal))
	}
	layout := merge(wall...)

	lo, hi, _ := testConfig().Aim.Bounds()
	steps := int(math.Ceil((hi-math.Pi/2)/(math.Pi/200))) + 1
	for left := 0; left <= steps; left++ {
		g, _, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: layout}))
		g.Start()
		g.Tick()
		for range left {
			g.AimLeft()
		}
		if a := g.Angle().Radians(); a < lo || a > hi {
			t.Fatalf("angle %f out of [%f, %f]", a, lo, hi)
		}
		playRound(t, g)
		if g.Mode() != ModeInRound || g.BallsInRound() != 0 {
			t.Fatalf("aim %.3f: mode %v, %d balls in round", g.Angle().Radians(), g.Mode(), g.BallsInRound())
		}
	}
}

func TestGameShiftWithoutLoss(t *testing.T) {
	g, rec, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: single(0, 0, 1000, BrickNormal)}))

	g.Start()
	g.Tick()
	playRound(t, g)

	s := g.Snapshot()
	if len(s.Bricks) != 1 || s.Bricks[0].Y != 182 {
		t.Fatalf("bricks = %+v, expected one brick at y 182", s.Bricks)
	}
	if rec.count(EventBricksShifted) != 1 || g.Mode() != ModeInRound {
		t.Errorf("shifted %d times, mode %v", rec.count(EventBricksShifted), g.Mode())
	}
	if g.WaveNumber() != 1 {
		t.Errorf("WaveNumber() = %d, expected 1", g.WaveNumber())
	}
	if !g.Launch() {
		t.Error("Launch() should work after a shift")
	}
}

func TestGameLossResetsRun(t *testing.T) {
	layout := merge(single(0, 11, 1000, BrickNormal), single(5, 0, 1, BrickMoreDamage))
	g, rec, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: layout}))

	g.Start()
	g.Tick()
	playRound(t, g)

	if g.Stats().Damage != 2 {
		t.Fatalf("Damage = %d, expected 2", g.Stats().Damage)
	}
	if g.Mode() != ModeInRound {
		t.Fatalf("bottom 566 should not lose, mode %v", g.Mode())
	}

	playRound(t, g)

	if g.Mode() != ModeLoss {
		t.Fatalf("Mode() = %v, expected loss", g.Mode())
	}
	if g.Stats() != DefaultStats(testConfig().Ball) {
		t.Errorf("Stats() = %+v, expected defaults", g.Stats())
	}
	if g.WaveNumber() != 1 || g.InRound() || g.BallsInRound() != 0 {
		t.Errorf("wave %d round %v balls %d", g.WaveNumber(), g.InRound(), g.BallsInRound())
	}
	state := g.State()
	if state.Score != 1 || state.Best != 1 || !state.GameOver {
		t.Errorf("State() = %+v", state)
	}
	if rec.count(EventLost) != 1 {
		t.Errorf("lost events = %d", rec.count(EventLost))
	}
	if run := g.LastRun(); run.Wave != 1 || run.Stats.Damage != 2 {
		t.Errorf("LastRun() = %+v, expected wave 1 with damage 2", run)
	}

	// Ticks on the loss screen do nothing.
	g.Tick()
	if g.Mode() != ModeLoss {
		t.Errorf("Tick() left the loss screen")
	}

	g.Retry()
	g.Tick()
	if g.Mode() != ModeInRound || g.State().GameOver {
		t.Errorf("after Retry: mode %v state %+v", g.Mode(), g.State())
	}
	if s := g.Snapshot(); len(s.Bricks) != 2 || s.Bricks[1].Y != 502 {
		t.Errorf("wave 1 not reloaded: %+v", s.Bricks)
	}
	if g.State().Best != 1 {
		t.Errorf("best score lost on retry: %d", g.State().Best)
	}
}

// Test that giving up keeps the wave and the stats for the next start.
func TestGameGiveUpKeepsProgress(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(map[int]Layout{
		1: single(5, 0, 1, BrickMoreDamage),
		2: single(0, 0, 1000, BrickNormal),
	}))

	g.Start()
	g.Tick()
	playRound(t, g)
	g.Pause()
	g.GiveUp()

	if g.Mode() != ModeMenu {
		t.Fatalf("Mode() = %v, expected menu", g.Mode())
	}
	if g.WaveNumber() != 2 || g.Stats().Damage != 2 {
		t.Errorf("wave %d damage %d, expected 2 and 2", g.WaveNumber(), g.Stats().Damage)
	}

	g.Start()
	g.Tick()
	if s := g.Snapshot(); len(s.Bricks) != 1 || s.Bricks[0].HP != 1000 {
		t.Errorf("wave 2 not reloaded on start: %+v", s.Bricks)
	}
}

func TestGameLoadError(t *testing.T) {
	boom := errors.New("boom")
	g, rec, _ := newTestGame(t, LayoutFunc(func(int) (Layout, error) {
		return single(1, 1, 4, BrickNormal), boom
	}))

	g.Start()
	g.Tick()

	if !errors.Is(g.LoadErr(), boom) {
		t.Errorf("LoadErr() = %v", g.LoadErr())
	}
	if rec.count(EventLoadFailed) != 1 {
		t.Errorf("load-failed events = %d", rec.count(EventLoadFailed))
	}
	s := g.Snapshot()
	if s.LoadError == "" || len(s.Bricks) != 1 {
		t.Errorf("snapshot load error %q, %d bricks", s.LoadError, len(s.Bricks))
	}
}

func TestGameLevelsVariant(t *testing.T) {
	t.Cleanup(func() { SetLevelsDir("") })

	g := NewLevels(WithConfig(testConfig()))
	g.Reset(core.DefaultConfig())
	g.Start()
	g.Tick()
	if g.LoadErr() != nil {
		t.Errorf("LoadErr() = %v", g.LoadErr())
	}
	if n := len(g.Snapshot().Bricks); n != 24 {
		t.Errorf("first level has %d bricks, expected 24", n)
	}

	SetLevelsDir(filepath.Join(t.TempDir(), "missing"))
	g.Reset(core.DefaultConfig())
	g.Start()
	g.Tick()
	if g.LoadErr() == nil {
		t.Error("a missing level directory should be reported")
	}
	if n := len(g.Snapshot().Bricks); n != 24 {
		t.Errorf("fallback level has %d bricks, expected 24", n)
	}
}

// Test that two games with the same seed and inputs stay identical.
func TestGameDeterminism(t *testing.T) {
	script := func(tick int) core.InputFrame {
		switch {
		case tick == 0:
			return core.FrameOf(core.ActionConfirm)
		case tick%200 < 20:
			return core.FrameOf(core.ActionLeft)
		case tick%200 == 30:
			return core.FrameOf(core.ActionLaunch)
		case tick%200 > 100 && tick%200 < 110:
			return core.FrameOf(core.ActionRight)
		}
		return core.NewInputFrame()
	}

	run := func() []uint64 {
		clock := &fakeClock{t: time.Unix(0, 0)}
		g := New(WithConfig(testConfig()), WithClock(clock.Now))
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 30, Seed: 42})
		var hashes []uint64
		for tick := range 3000 {
			g.Step(script(tick))
			s := g.Snapshot()
			hashes = append(hashes, s.Hash())
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at tick %d", i)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: single(5, 0, 1, BrickMoreDamage)}))
	g.Start()
	g.Tick()
	g.Launch()
	for range 80 {
		g.Tick()
	}

	s := g.Snapshot()
	if len(s.Balls) == 0 || s.Announcement == "" {
		t.Fatalf("snapshot has %d balls, announcement %q", len(s.Balls), s.Announcement)
	}

	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() error = %v", err)
	}

	if got.Hash() != s.Hash() {
		t.Error("decoded snapshot hash differs")
	}
	if got.Announcement != s.Announcement || !got.AnnounceUntil.Equal(s.AnnounceUntil) {
		t.Errorf("announcement = %q until %v", got.Announcement, got.AnnounceUntil)
	}

	if _, err := UnmarshalSnapshot([]byte{0xc1}); err == nil {
		t.Error("UnmarshalSnapshot(garbage) should fail")
	}
}

func TestRenderSmoke(t *testing.T) {
	g, _, _ := newTestGame(t, layoutsByWave(map[int]Layout{1: single(5, 0, 7, BrickNormal)}))

	screen := core.NewScreen(80, 40)
	g.Render(screen)
	if !strings.Contains(screen.String(), TitleText) {
		t.Error("menu does not show the title")
	}

	g.Start()
	g.Tick()
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Wave n°1") {
		t.Error("HUD does not show the wave")
	}
	if !strings.Contains(out, "7") {
		t.Error("brick HP label missing")
	}
	if !strings.ContainsRune(out, AimChar) {
		t.Error("aim guide missing before launch")
	}

	g.Pause()
	g.Render(screen)
	if !strings.Contains(screen.String(), PausedText) {
		t.Error("pause overlay missing")
	}

	small := core.NewScreen(20, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("small screen warning missing")
	}
}

// Test that a config file that cannot be loaded is reported by LoadErr
// while the game plays on the defaults.
func TestGameReportsConfigError(t *testing.T) {
	t.Cleanup(func() { SetConfigPath("") })

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("arena: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(bad)
	g := New(WithSource(layoutsByWave(map[int]Layout{1: single(0, 0, 1, BrickNormal)})))
	g.Reset(core.DefaultConfig())
	if g.LoadErr() == nil {
		t.Fatal("LoadErr() = nil, expected the config error")
	}
	if s := g.Snapshot(); s.LoadError == "" {
		t.Error("snapshot should carry the config error")
	}
	if g.Config().Ball != config.DefaultAnnihilatorConfig().Ball {
		t.Errorf("ball config = %+v, expected the defaults", g.Config().Ball)
	}

	SetConfigPath("")
	g.Reset(core.DefaultConfig())
	if g.LoadErr() != nil {
		t.Errorf("LoadErr() after clearing the path = %v", g.LoadErr())
	}
}

// Test that the levels variant accepts a single level file.
func TestGameLevelsFromFile(t *testing.T) {
	t.Cleanup(func() { SetLevelsDir("") })

	name := filepath.Join(t.TempDir(), "row.txt")
	if err := os.WriteFile(name, []byte("5 5 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetLevelsDir(name)

	g := NewLevels(WithConfig(testConfig()))
	g.Reset(core.DefaultConfig())
	g.Start()
	g.Tick()
	if g.LoadErr() != nil {
		t.Errorf("LoadErr() = %v", g.LoadErr())
	}
	if n := len(g.Snapshot().Bricks); n != 3 {
		t.Errorf("level file gave %d bricks, expected 3", n)
	}
}
