package system

import (
	"log"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

// SoundPlayer plays a named clip; it reports false for unknown names.
type SoundPlayer interface {
	Play(name string, volume float64) bool
}

// AudioSystem drains every Audio queue into the sound backend. The same clip
// is started at most once per frame.
type AudioSystem struct {
	sounds  SoundPlayer
	warned  map[string]bool
	Enabled bool
}

func NewAudioSystem(sounds SoundPlayer) *AudioSystem {
	return &AudioSystem{sounds: sounds, warned: make(map[string]bool), Enabled: true}
}

func (a *AudioSystem) SetSounds(sounds SoundPlayer) { a.sounds = sounds }

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	started := make(map[string]bool)
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		queue := audioComp.Queue
		audioComp.Queue = audioComp.Queue[:0]
		if !a.Enabled || a.sounds == nil {
			return
		}
		for _, name := range queue {
			if started[name] {
				continue
			}
			started[name] = true
			if !a.sounds.Play(name, audioComp.Volume) && !a.warned[name] {
				a.warned[name] = true
				log.Printf("audio: unknown sound %q", name)
			}
		}
	})
}
