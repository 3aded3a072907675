package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

const defaultEffectFrames = 20

// NewEffect spawns a self-destroying visual at (x, y). A spec with a shake
// strength also asks the camera to shake.
func NewEffect(w *ecs.World, spec prefabs.EffectSpec, x, y float64) (ecs.Entity, error) {
	frames := spec.Frames
	if frames <= 0 {
		frames = defaultEffectFrames
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = 1
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EffectComponent.Kind(), &component.Effect{
		Name:   spec.Name,
		Radius: radius,
		Frames: frames,
		Color:  spec.Color.Or(color.White),
	}); err != nil {
		return 0, fmt.Errorf("effect %q: add effect: %w", spec.Name, err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("effect %q: add transform: %w", spec.Name, err)
	}

	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Frames: frames}); err != nil {
		return 0, fmt.Errorf("effect %q: add ttl: %w", spec.Name, err)
	}

	if spec.Shake > 0 {
		RequestShake(w, spec.Shake, frames/2)
	}

	return entity, nil
}

// RequestShake queues a camera shake, keeping the stronger of an already
// pending request and the new one.
func RequestShake(w *ecs.World, intensity float64, frames int) {
	if intensity <= 0 {
		return
	}
	if frames <= 0 {
		frames = defaultEffectFrames / 2
	}
	if e, ok := ecs.First(w, component.CameraShakeRequestComponent.Kind()); ok {
		req, _ := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
		req.Intensity = max(req.Intensity, intensity)
		req.Frames = max(req.Frames, frames)
		return
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{
		Frames:    frames,
		Intensity: intensity,
	})
}
