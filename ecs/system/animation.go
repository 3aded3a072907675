package system

import (
	"github.com/milk9111/robotboss/common"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

const (
	defaultAnimationFPS    = 10.0
	defaultAnimationFrames = 6
)

// AnimationSystem advances the frame of every playing pose. Non-looping poses
// hold their last frame and report Done.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{dt: 1.0 / common.TPS}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if anim.Current == "" || anim.Done {
			return
		}
		fps := anim.FPS
		if fps <= 0 {
			fps = defaultAnimationFPS
		}
		count := anim.FrameCount
		if count <= 0 {
			count = defaultAnimationFrames
		}

		anim.Elapsed += a.dt
		frame := int(anim.Elapsed * fps)
		if frame < count {
			anim.Frame = frame
			return
		}
		if anim.Loop {
			anim.Frame = frame % count
			return
		}
		anim.Frame = count - 1
		anim.Done = true
	})
}
