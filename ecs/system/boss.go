package system

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

// BossSystem drives every boss controller once per frame and mirrors its
// state into the entity's components.
type BossSystem struct {
	physics *PhysicsSystem
	dt      float64
	arena   *prefabs.ArenaSpec
	logger  *log.Logger
	rand    *rand.Rand
}

func NewBossSystem(physics *PhysicsSystem, dt float64, arena *prefabs.ArenaSpec) *BossSystem {
	return &BossSystem{
		physics: physics,
		dt:      dt,
		arena:   arena,
		logger:  log.Default(),
	}
}

// SetArena swaps the effect and pickup catalog used for new spawns.
func (s *BossSystem) SetArena(arena *prefabs.ArenaSpec) { s.arena = arena }

// SetRand makes drop rolls reproducible for agents created afterwards.
func (s *BossSystem) SetRand(r *rand.Rand) { s.rand = r }

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var target boss.TargetHandle
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		target = playerTarget{w: w, e: player}
	}

	touched := make(map[ecs.Entity][]ecs.Entity)
	for _, t := range s.physics.Touches() {
		touched[t.Boss] = append(touched[t.Boss], t.Player)
	}

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, bc *component.Boss, t *component.Transform, body *component.PhysicsBody) {
			if bc.Agent == nil {
				// the ground sensor needs the body in the space
				if body.Body == nil {
					return
				}
				if err := s.createAgent(w, e, bc, t); err != nil {
					s.logger.Printf("boss: entity=%v: %v", e, err)
					_ = ecs.Remove(w, e, component.BossComponent.Kind())
					return
				}
			}

			agent := bc.Agent
			agent.SetTarget(target)
			for _, p := range touched[e] {
				agent.Touch(playerTarget{w: w, e: p})
			}
			agent.Tick(s.dt)

			pos := agent.Position()
			t.X, t.Y = pos.X, pos.Y
			t.FacingLeft = agent.Facing() == boss.FacingLeft
			s.physics.MoveKinematic(e, pos)

			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				hp.Current = agent.Health()
				hp.Max = agent.MaxHealth()
			}

			if agent.Dead() {
				s.physics.Disable(e)
			}
			if agent.Expired() {
				w.Events().Push(ecs.Event{Type: EventBossExpired, Data: agent.Config().Name})
				ecs.DestroyEntity(w, e)
			}
		})
}

func (s *BossSystem) createAgent(w *ecs.World, e ecs.Entity, bc *component.Boss, t *component.Transform) error {
	agent, err := boss.New(bc.Config, boss.Vec2{X: t.X, Y: t.Y}, boss.Deps{
		Animation: animationPort{w: w, e: e},
		Effects:   effectPort{w: w, arena: s.arena},
		Audio:     audioPort{w: w, e: e},
		Query:     spatialQuery{w: w, physics: s.physics},
		Ground:    groundSensor{physics: s.physics, e: e},
		Tint:      tinter{w: w, e: e},
		Items:     itemSpawner{w: w, arena: s.arena},
		Listener:  eventSink{w: w, bc: bc},
		Logger:    s.logger,
		Rand:      s.rand,
	})
	if err != nil {
		return err
	}
	bc.Agent = agent
	return nil
}

// Reload applies cfg to every live boss with the same name.
func (s *BossSystem) Reload(w *ecs.World, cfg boss.Config) int {
	if err := cfg.Validate(); err != nil {
		s.logger.Printf("boss: reload %q: %v", cfg.Name, err)
		return 0
	}
	n := 0
	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, bc *component.Boss) {
		if bc.Config.Name != cfg.Name {
			return
		}
		bc.Config = cfg
		if bc.Agent == nil {
			n++
			return
		}
		if err := bc.Agent.SetConfig(cfg); err != nil {
			s.logger.Printf("boss: entity=%v: %v", e, err)
			return
		}
		n++
	})
	return n
}
