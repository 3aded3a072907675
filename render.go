package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/robotboss/common"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
	"golang.org/x/image/colornames"
)

// view maps world units to screen pixels with the camera shake applied.
type view struct {
	offX, offY float64
}

func (v view) x(wx float64) float32 { return float32((wx + v.offX) * common.PixelsPerUnit) }
func (v view) y(wy float64) float32 { return float32((wy + v.offY) * common.PixelsPerUnit) }
func (v view) len(d float64) float32 { return float32(d * common.PixelsPerUnit) }

func (v view) fillBox(screen *ebiten.Image, cx, cy, w, h float64, c color.Color) {
	vector.FillRect(screen, v.x(cx-w/2), v.y(cy-h/2), v.len(w), v.len(h), c, false)
}

func (v view) strokeBox(screen *ebiten.Image, cx, cy, w, h float64, c color.Color) {
	vector.StrokeRect(screen, v.x(cx-w/2), v.y(cy-h/2), v.len(w), v.len(h), 1, c, false)
}

func drawWorld(screen *ebiten.Image, w *ecs.World, arena *prefabs.ArenaSpec, offX, offY float64, debug bool) {
	v := view{offX: offX, offY: offY}

	screen.Fill(arena.Background.Or(colornames.Midnightblue))
	vector.FillRect(screen, v.x(-1), v.y(arena.FloorY), v.len(arena.Width+2), v.len(arena.Height-arena.FloorY+1), colornames.Dimgray, false)
	vector.StrokeLine(screen, v.x(0), v.y(arena.FloorY), v.x(arena.Width), v.y(arena.FloorY), 2, colornames.Darkgray, false)

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
		c := p.Color
		if c == nil {
			c = colornames.Gold
		}
		vector.FillCircle(screen, v.x(t.X), v.y(t.Y), v.len(p.Size/2), c, true)
	})

	drawBosses(screen, w, v, debug)
	drawPlayers(screen, w, v, debug)

	ecs.ForEach2(w, component.EffectComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, e *component.Effect, t *component.Transform) {
		p := e.Progress()
		c := e.Color
		if c == nil {
			c = colornames.White
		}
		r := max(e.Radius*p, 0.1)
		vector.StrokeCircle(screen, v.x(t.X), v.y(t.Y), v.len(r), 3, fade(c, 1-p), true)
	})
}

func drawPlayers(screen *ebiten.Image, w *ecs.World, v view, debug bool) {
	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform, body *component.PhysicsBody, h *component.Health) {
		var c color.Color = colornames.Deepskyblue
		switch {
		case h.Current <= 0:
			c = colornames.Slategray
		case p.Dashing():
			c = colornames.Lightskyblue
		}
		if flash, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && flash.On {
			c = colornames.White
		}
		v.fillBox(screen, t.X, t.Y, body.Width, body.Height, c)

		dir := 1.0
		if t.FacingLeft {
			dir = -1
		}
		v.fillBox(screen, t.X+dir*body.Width/4, t.Y-body.Height/4, 0.2, 0.2, colornames.Black)

		if p.AttackLeft > 0 {
			reach := p.AttackRange - body.Width/2
			v.fillBox(screen, t.X+dir*(body.Width/2+reach/2), t.Y, reach, 0.3, fade(colornames.White, 0.7))
		}
		if debug {
			v.strokeBox(screen, t.X, t.Y, body.Width, body.Height, colornames.Lime)
		}
	})
}

func drawBosses(screen *ebiten.Image, w *ecs.World, v view, debug bool) {
	ecs.ForEach3(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, bc *component.Boss, t *component.Transform, body *component.PhysicsBody) {
		pose := ""
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			pose = anim.Current
		}
		c := poseColor(bc, pose)
		if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok && tint.Color != nil {
			c = tint.Color
		}
		if bc.Agent != nil && bc.Agent.Dead() {
			c = fade(c, 0.6)
		}
		v.fillBox(screen, t.X, t.Y, body.Width, body.Height, c)

		dir := 1.0
		if t.FacingLeft {
			dir = -1
		}
		v.fillBox(screen, t.X+dir*body.Width/4, t.Y-body.Height/3, 0.4, 0.25, colornames.Red)

		if debug {
			v.strokeBox(screen, t.X, t.Y, body.Width, body.Height, colornames.Lime)
			vector.StrokeCircle(screen, v.x(t.X), v.y(t.Y), v.len(bc.Config.DetectRange), 1, fade(colornames.Yellow, 0.5), true)
			vector.StrokeCircle(screen, v.x(t.X), v.y(t.Y), v.len(bc.Config.AttackRange), 1, fade(colornames.Orangered, 0.6), true)
		}
	})
}

func poseColor(bc *component.Boss, pose string) color.Color {
	anims := bc.Config.Animations
	switch pose {
	case anims.Attack:
		return colornames.Orangered
	case anims.Jump:
		return colornames.Orange
	case anims.Heal:
		return colornames.Limegreen
	case anims.Hit:
		return colornames.Lightcoral
	case anims.Death:
		return colornames.Dimgray
	}
	return colornames.Steelblue
}

// fade scales a color's alpha by f in [0, 1].
func fade(c color.Color, f float64) color.Color {
	f = common.Clamp(f, 0, 1)
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * f)
	return n
}
