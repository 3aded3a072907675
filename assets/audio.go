package assets

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/robotboss/prefabs"
)

const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// SoundBank holds synthesized clips by name.
type SoundBank struct {
	ctx   *audio.Context
	clips map[string][]byte
}

// NewSoundBank renders every spec. A nil context yields a silent bank that
// still knows which names exist.
func NewSoundBank(ctx *audio.Context, specs []prefabs.SoundSpec) *SoundBank {
	rate := SampleRate
	if ctx != nil {
		rate = ctx.SampleRate()
	}
	bank := &SoundBank{ctx: ctx, clips: make(map[string][]byte, len(specs))}
	for _, spec := range specs {
		bank.clips[spec.Name] = Synthesize(spec, rate)
	}
	return bank
}

func (b *SoundBank) Has(name string) bool {
	_, ok := b.clips[name]
	return ok
}

// Play starts a fresh player for name at volume. Unknown names report false.
func (b *SoundBank) Play(name string, volume float64) bool {
	clip, ok := b.clips[name]
	if !ok {
		return false
	}
	if b.ctx == nil {
		return true
	}
	player := b.ctx.NewPlayerFromBytes(clip)
	player.SetVolume(volume)
	player.Play()
	return true
}

// Synthesize renders spec as 16-bit little-endian stereo PCM, the format
// audio.Context players expect. The pitch sweeps linearly from Freq to
// EndFreq and the amplitude decays to zero.
func Synthesize(spec prefabs.SoundSpec, sampleRate int) []byte {
	if spec.Duration <= 0 || sampleRate <= 0 {
		return nil
	}
	n := int(spec.Duration * float64(sampleRate))
	end := spec.EndFreq
	if end <= 0 {
		end = spec.Freq
	}
	volume := spec.Volume
	if volume <= 0 {
		volume = 1
	}
	noise := rand.New(rand.NewPCG(uint64(n), uint64(spec.Freq)))

	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := spec.Freq + (end-spec.Freq)*t
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		var v float64
		switch strings.ToLower(spec.Wave) {
		case "square":
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		case "saw":
			v = 2*phase - 1
		case "noise":
			v = noise.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * phase)
		}

		sample := int16(v * volume * (1 - t) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}
