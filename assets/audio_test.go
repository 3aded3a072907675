package assets

import (
	"encoding/binary"
	"testing"

	"github.com/milk9111/robotboss/prefabs"
)

func TestSynthesizeLength(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.SoundSpec
		want int
	}{
		{"sine", prefabs.SoundSpec{Wave: "sine", Freq: 440, Duration: 0.5}, 22050 * 4},
		{"square", prefabs.SoundSpec{Wave: "square", Freq: 220, Duration: 0.1}, 4410 * 4},
		{"noise", prefabs.SoundSpec{Wave: "noise", Freq: 90, Duration: 0.25}, 11025 * 4},
		{"zero_duration", prefabs.SoundSpec{Freq: 440}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := len(Synthesize(c.spec, SampleRate)); got != c.want {
				t.Fatalf("expected %d bytes, got %d", c.want, got)
			}
		})
	}
}

func TestSynthesizeStereoAndDecay(t *testing.T) {
	pcm := Synthesize(prefabs.SoundSpec{Wave: "square", Freq: 100, Duration: 0.2, Volume: 0.5}, SampleRate)
	frames := len(pcm) / 4
	for i := 0; i < frames; i++ {
		l := binary.LittleEndian.Uint16(pcm[i*4:])
		r := binary.LittleEndian.Uint16(pcm[i*4+2:])
		if l != r {
			t.Fatalf("frame %d: left %d != right %d", i, l, r)
		}
	}
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	last := int16(binary.LittleEndian.Uint16(pcm[(frames-1)*4:]))
	if abs(int(last)) >= abs(int(first)) {
		t.Fatalf("expected decay, first=%d last=%d", first, last)
	}
}

func TestSilentBankKnowsNames(t *testing.T) {
	bank := NewSoundBank(nil, []prefabs.SoundSpec{{Name: "land", Freq: 90, Duration: 0.1}})
	if !bank.Has("land") || !bank.Play("land", 1) {
		t.Fatalf("expected land to be known")
	}
	if bank.Play("missing", 1) {
		t.Fatalf("expected unknown sound to report false")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
