package assets

import (
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

// Sound names the synthesized effects.
type Sound string

const (
	SoundPop    Sound = "pop"
	SoundClick  Sound = "click"
	SoundLaunch Sound = "launch"
)

// Voice describes one synthesized effect: a sine sweep mixed with noise under
// an exponential decay.
type Voice struct {
	Duration  float64
	StartFreq float64
	EndFreq   float64
	Noise     float64
	Decay     float64
	Volume    float64
}

var voices = map[Sound]Voice{
	SoundPop:    {Duration: 0.35, StartFreq: 220, EndFreq: 40, Noise: 0.6, Decay: 12, Volume: 0.7},
	SoundClick:  {Duration: 0.08, StartFreq: 1400, EndFreq: 900, Noise: 0.1, Decay: 40, Volume: 0.4},
	SoundLaunch: {Duration: 0.2, StartFreq: 300, EndFreq: 700, Noise: 0.05, Decay: 8, Volume: 0.3},
}

// Synthesize renders v as 16-bit little-endian stereo PCM, the format
// audio.Context.NewPlayerFromBytes expects.
func Synthesize(v Voice, sampleRate int, seed int64) []byte {
	n := int(math.Round(v.Duration * float64(sampleRate)))
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		k := t / v.Duration
		freq := v.StartFreq + (v.EndFreq-v.StartFreq)*k
		phase += 2 * math.Pi * freq / float64(sampleRate)

		s := math.Sin(phase)*(1-v.Noise) + (rng.Float64()*2-1)*v.Noise
		s *= v.Volume * math.Exp(-v.Decay*t)
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		sample := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], sample)
		binary.LittleEndian.PutUint16(out[i*4+2:], sample)
	}
	return out
}

// Sounds plays the synthesized effects. A nil *Sounds is silent.
type Sounds struct {
	ctx *audio.Context
	pcm map[Sound][]byte

	mu      sync.Mutex
	players []*audio.Player
}

// NewSounds creates the audio context. It must be called at most once per
// process.
func NewSounds() *Sounds {
	s := &Sounds{ctx: audio.NewContext(SampleRate), pcm: make(map[Sound][]byte, len(voices))}
	for name, v := range voices {
		s.pcm[name] = Synthesize(v, SampleRate, int64(len(name)))
	}
	return s
}

func (s *Sounds) Play(name Sound) {
	if s == nil {
		return
	}
	pcm, ok := s.pcm[name]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	s.players = kept

	p := s.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	s.players = append(s.players, p)
}
