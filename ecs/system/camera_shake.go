package system

import (
	"math/rand/v2"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

// CameraShakeSystem turns shake requests into a per-frame view offset that
// decays with the remaining frames.
type CameraShakeSystem struct {
	OffsetX float64
	OffsetY float64

	rand  *rand.Rand
	total int
}

func NewCameraShakeSystem() *CameraShakeSystem {
	return &CameraShakeSystem{rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *CameraShakeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	s.OffsetX, s.OffsetY = 0, 0
	e, ok := ecs.First(w, component.CameraShakeRequestComponent.Kind())
	if !ok {
		s.total = 0
		return
	}
	req, _ := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
	if req.Frames <= 0 {
		ecs.DestroyEntity(w, e)
		s.total = 0
		return
	}
	if req.Frames > s.total {
		s.total = req.Frames
	}

	falloff := float64(req.Frames) / float64(s.total)
	s.OffsetX = (s.rand.Float64()*2 - 1) * req.Intensity * falloff
	s.OffsetY = (s.rand.Float64()*2 - 1) * req.Intensity * falloff
	req.Frames--
}
