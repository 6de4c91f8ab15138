package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue is a short sound played for a game event.
type Cue int

const (
	CueNone Cue = iota
	CueHit
	CueBreak
	CueBomb
	CuePickup
	CueWave
	CueShift
	CueLost
)

// note is one tone of a cue.
type note struct {
	freq   float64
	length time.Duration
	square bool
}

// cueNotes lists the tones of the melodic cues, played in sequence.
var cueNotes = map[Cue][]note{
	CueHit:    {{freq: 660, length: 25 * time.Millisecond}},
	CueBreak:  {{freq: 330, length: 60 * time.Millisecond, square: true}},
	CuePickup: {{freq: 880, length: 70 * time.Millisecond}, {freq: 1320, length: 110 * time.Millisecond}},
	CueWave:   {{freq: 523.25, length: 90 * time.Millisecond}, {freq: 659.25, length: 90 * time.Millisecond}, {freq: 783.99, length: 140 * time.Millisecond}},
	CueShift:  {{freq: 110, length: 120 * time.Millisecond, square: true}},
	CueLost:   {{freq: 392, length: 150 * time.Millisecond}, {freq: 329.63, length: 150 * time.Millisecond}, {freq: 261.63, length: 300 * time.Millisecond}},
}

// cueGain balances the cues against each other.
var cueGain = map[Cue]float64{
	CueHit:    0.25,
	CueBreak:  0.35,
	CueBomb:   0.8,
	CuePickup: 0.5,
	CueWave:   0.5,
	CueShift:  0.4,
	CueLost:   0.6,
}

// Synth builds cue streamers at a fixed sample rate.
type Synth struct {
	rate   beep.SampleRate
	volume float64
}

// NewSynth creates a synth. volume is a linear factor, 0 mutes.
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{rate: rate, volume: volume}
}

// Cue returns a finite streamer for the cue, or nil when there is nothing
// to play.
func (s *Synth) Cue(c Cue) beep.Streamer {
	gain, ok := cueGain[c]
	if !ok {
		return nil
	}

	var body beep.Streamer
	if c == CueBomb {
		body = newBurst(s.rate, 350*time.Millisecond)
	} else {
		var parts []beep.Streamer
		for _, n := range cueNotes[c] {
			if p := s.tone(n); p != nil {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		body = beep.Seq(parts...)
	}
	return newVolume(body, gain*s.volume)
}

func (s *Synth) tone(n note) beep.Streamer {
	var (
		osc beep.Streamer
		err error
	)
	if n.square {
		osc, err = generators.SquareTone(s.rate, n.freq)
	} else {
		osc, err = generators.SineTone(s.rate, n.freq)
	}
	if err != nil {
		return nil
	}
	return newFade(beep.Take(s.rate.N(n.length), osc), s.rate.N(n.length))
}

// Loop returns the endless in-round bass pulse.
func (s *Synth) Loop() beep.Streamer {
	return newVolume(&pulse{rate: s.rate, period: s.rate.N(500 * time.Millisecond)}, 0.3*s.volume)
}

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero is
// played silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// fade applies a linear release over the last quarter of a tone, which
// keeps the cut from clicking.
type fade struct {
	s     beep.Streamer
	pos   int
	total int
}

func newFade(s beep.Streamer, total int) beep.Streamer {
	return &fade{s: s, total: total}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	release := f.total / 4
	for i := range n {
		if left := f.total - f.pos; release > 0 && left < release {
			v := float64(left) / float64(release)
			samples[i][0] *= v
			samples[i][1] *= v
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// burst is decaying noise over a low rumble, for explosions.
type burst struct {
	rate  beep.SampleRate
	pos   int
	total int
	seed  uint32
}

func newBurst(rate beep.SampleRate, length time.Duration) *burst {
	return &burst{rate: rate, total: rate.N(length), seed: 0x2545f491}
}

func (b *burst) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.rate)
		env := math.Exp(-t * 10)

		b.seed = b.seed*1664525 + 1013904223
		noise := float64(b.seed)/float64(math.MaxUint32)*2 - 1
		rumble := 0.4 * math.Sin(2*math.Pi*70*t)

		v := env * (0.6*noise + rumble)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *burst) Err() error { return nil }

// pulse is a kick on every period plus a soft bass note. It never ends.
type pulse struct {
	rate   beep.SampleRate
	pos    int
	period int
}

func (p *pulse) Stream(samples [][2]float64) (int, bool) {
	kickLen := p.rate.N(90 * time.Millisecond)
	for i := range samples {
		beat := p.pos % p.period
		t := float64(beat) / float64(p.rate)

		var kick float64
		if beat < kickLen {
			env := 1 - float64(beat)/float64(kickLen)
			kick = 0.5 * env * math.Sin(2*math.Pi*55*(1+2*env)*t)
		}
		bass := 0.12 * math.Sin(2*math.Pi*82.41*t)

		v := kick + bass
		samples[i][0] = v
		samples[i][1] = v
		p.pos++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }
