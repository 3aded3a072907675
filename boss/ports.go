package boss

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D world position or velocity.
type Vec2 = cp.Vector

// TargetHandle is the agent's view of its opponent. The agent never mutates a
// target except through DealDamage.
type TargetHandle interface {
	ID() uint64
	Position() Vec2
	IsAlive() bool
	Velocity() Vec2
	IsEvading() bool
	DealDamage(amount int)
}

type AnimationPort interface {
	Play(id string, loop bool)
}

type EffectPort interface {
	Spawn(id string, at Vec2)
}

type AudioPort interface {
	PlaySFX(id string)
}

// SpatialQuery returns every target whose collider lies within radius of
// center.
type SpatialQuery interface {
	FindInRadius(center Vec2, radius float64) []TargetHandle
}

type GroundSensor interface {
	IsGrounded() bool
}

// Tinter colors the agent's sprite. A nil color clears the tint.
type Tinter interface {
	SetTint(c color.Color)
}

type ItemSpawner interface {
	SpawnItem(item string, at Vec2)
}

type Listener interface {
	OnAgentEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnAgentEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}

// Deps are the collaborators injected into an agent. Any nil field is
// replaced by a no-op; a nil GroundSensor means always grounded.
type Deps struct {
	Animation AnimationPort
	Effects   EffectPort
	Audio     AudioPort
	Query     SpatialQuery
	Ground    GroundSensor
	Tint      Tinter
	Items     ItemSpawner
	Listener  Listener
	Logger    *log.Logger
	Rand      *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.Animation == nil {
		d.Animation = nopPorts{}
	}
	if d.Effects == nil {
		d.Effects = nopPorts{}
	}
	if d.Audio == nil {
		d.Audio = nopPorts{}
	}
	if d.Query == nil {
		d.Query = nopPorts{}
	}
	if d.Ground == nil {
		d.Ground = nopPorts{}
	}
	if d.Tint == nil {
		d.Tint = nopPorts{}
	}
	if d.Items == nil {
		d.Items = nopPorts{}
	}
	if d.Listener == nil {
		d.Listener = nopPorts{}
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return d
}

type nopPorts struct{}

func (nopPorts) Play(string, bool) {}
func (nopPorts) Spawn(string, Vec2) {}
func (nopPorts) PlaySFX(string) {}
func (nopPorts) FindInRadius(Vec2, float64) []TargetHandle { return nil }
func (nopPorts) IsGrounded() bool { return true }
func (nopPorts) SetTint(color.Color) {}
func (nopPorts) SpawnItem(string, Vec2) {}
func (nopPorts) OnAgentEvent(Event) {}
