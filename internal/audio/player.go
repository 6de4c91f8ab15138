// Package audio plays synthesized cues for game events through the speaker.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// hitInterval throttles brick hit cues; a volley can hit dozens of bricks
// in a single tick.
const hitInterval = 40 * time.Millisecond

// Player turns game events into sound. It implements annihilator.Listener.
// Until Init succeeds it only tracks state and stays silent.
type Player struct {
	mu     sync.Mutex
	logger *log.Logger
	synth  *Synth
	mixer  *beep.Mixer
	loop   *beep.Ctrl

	lock, unlock func()
	now          func() time.Time
	lastHit      time.Time
	ready        bool
}

// NewPlayer creates a player. volume is linear in [0, 1].
func NewPlayer(logger *log.Logger, volume float64) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		logger: logger,
		synth:  NewSynth(SampleRate, volume),
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
		now:    time.Now,
	}
}

// Init opens the speaker. A failure is returned for logging; the player
// keeps working silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	p.lock, p.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close stops every sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	p.mixer.Clear()
	p.loop = nil
	p.unlock()
	if p.ready {
		speaker.Clear()
	}
}

// OnEvent plays the cue of an event and drives the in-round loop.
func (p *Player) OnEvent(e annihilator.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case annihilator.EventStarted, annihilator.EventResumed, annihilator.EventRetried:
		p.startLoop()
	case annihilator.EventPaused:
		p.pauseLoop()
	case annihilator.EventGaveUp, annihilator.EventLost:
		p.stopLoop()
	case annihilator.EventLoadFailed:
		p.logger.Warn("level load problem", "wave", e.Wave, "err", e.Err)
	}

	c := CueFor(e.Kind)
	if c == CueHit {
		now := p.now()
		if now.Sub(p.lastHit) < hitInterval {
			return
		}
		p.lastHit = now
	}
	if s := p.synth.Cue(c); s != nil {
		p.lock()
		p.mixer.Add(s)
		p.unlock()
	}
}

// CueFor maps an event to its cue.
func CueFor(k annihilator.EventKind) Cue {
	switch k {
	case annihilator.EventBrickDamaged:
		return CueHit
	case annihilator.EventBrickBroken:
		return CueBreak
	case annihilator.EventBombExploded:
		return CueBomb
	case annihilator.EventPickupMoreBalls, annihilator.EventPickupMoreDamage, annihilator.EventPickupBiggerBalls:
		return CuePickup
	case annihilator.EventWaveAdvanced:
		return CueWave
	case annihilator.EventBricksShifted:
		return CueShift
	case annihilator.EventLost:
		return CueLost
	default:
		return CueNone
	}
}

// Looping reports whether the in-round loop is audible.
func (p *Player) Looping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	defer p.unlock()
	return p.loop != nil && !p.loop.Paused
}

func (p *Player) startLoop() {
	p.lock()
	defer p.unlock()

	if p.loop != nil {
		p.loop.Paused = false
		return
	}
	p.loop = &beep.Ctrl{Streamer: p.synth.Loop()}
	p.mixer.Add(p.loop)
}

func (p *Player) pauseLoop() {
	p.lock()
	defer p.unlock()

	if p.loop != nil {
		p.loop.Paused = true
	}
}

// stopLoop ends the loop; a Ctrl without a streamer is dropped by the mixer.
func (p *Player) stopLoop() {
	p.lock()
	defer p.unlock()

	if p.loop != nil {
		p.loop.Streamer = nil
		p.loop = nil
	}
}
