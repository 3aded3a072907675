package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/ecs/entity"
	"github.com/milk9111/robotboss/prefabs"
)

// bossScriptDispatch is appended to every encounter script, which must
// define on_event(engine, state, ev).
const bossScriptDispatch = `
on_event(__engine, __state, __event)
`

type bossScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

// BossScriptSystem feeds the events each boss reported since the last frame
// to its tengo encounter script, then clears them. It runs after BossSystem.
type BossScriptSystem struct {
	arena    *prefabs.ArenaSpec
	runtimes map[ecs.Entity]*bossScriptRuntime
	failed   map[string]bool
	load     func(name string) ([]byte, error)
}

func NewBossScriptSystem(arena *prefabs.ArenaSpec) *BossScriptSystem {
	return &BossScriptSystem{
		arena:    arena,
		runtimes: map[ecs.Entity]*bossScriptRuntime{},
		failed:   map[string]bool{},
		load:     prefabs.LoadScript,
	}
}

func (s *BossScriptSystem) SetArena(arena *prefabs.ArenaSpec) { s.arena = arena }

// Reload drops compiled copies of the named script; state kept by the script
// is lost.
func (s *BossScriptSystem) Reload(name string) {
	for e, rt := range s.runtimes {
		if rt.scriptPath == name {
			delete(s.runtimes, e)
		}
	}
	delete(s.failed, name)
}

func (s *BossScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, bc *component.Boss) {
		events := bc.Events
		bc.Events = nil
		if bc.Agent == nil || len(events) == 0 || strings.TrimSpace(bc.Script) == "" {
			return
		}
		if s.failed[bc.Script] {
			return
		}

		rt, err := s.runtime(e, bc.Script)
		if err != nil {
			s.failed[bc.Script] = true
			log.Printf("boss script: entity=%v load %s: %v", e, bc.Script, err)
			return
		}

		engine := s.buildEngine(w, e, bc.Agent)
		for _, ev := range events {
			if err := rt.dispatch(engine, ev); err != nil {
				log.Printf("boss script: entity=%v %s on_event(%s): %v", e, bc.Script, ev.Kind, err)
				return
			}
		}
	})
}

func (s *BossScriptSystem) runtime(e ecs.Entity, path string) (*bossScriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
		return rt, nil
	}
	rt, err := compileBossScript(path, s.load)
	if err != nil {
		return nil, err
	}
	s.runtimes[e] = rt
	return rt, nil
}

func compileBossScript(path string, load func(string) ([]byte, error)) (*bossScriptRuntime, error) {
	scriptBytes, err := load(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + bossScriptDispatch
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__event", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &bossScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *bossScriptRuntime) dispatch(engine *tengo.ImmutableMap, ev boss.Event) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__event", eventObject(ev)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func eventObject(ev boss.Event) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"kind":   &tengo.String{Value: string(ev.Kind)},
		"at":     &tengo.Float{Value: ev.At},
		"x":      &tengo.Float{Value: ev.Position.X},
		"y":      &tengo.Float{Value: ev.Position.Y},
		"amount": &tengo.Int{Value: int64(ev.Amount)},
		"hits":   &tengo.Int{Value: int64(ev.Hits)},
		"item":   &tengo.String{Value: ev.Item},
	}}
}

func (s *BossScriptSystem) buildEngine(w *ecs.World, e ecs.Entity, agent *boss.Agent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: agent.Config().Name}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(agent.Health())}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := agent.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: pos.X}, &tengo.Float{Value: pos.Y}}}, nil
	}}

	values["play_sfx"] = &tengo.UserFunction{Name: "play_sfx", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		queueSound(w, e, name)
		return tengo.TrueValue, nil
	}}

	values["spawn_effect"] = &tengo.UserFunction{Name: "spawn_effect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		pos := agent.Position()
		if len(args) >= 3 {
			x, okX := objectAsFloat(args[1])
			y, okY := objectAsFloat(args[2])
			if okX && okY {
				pos = boss.Vec2{X: x, Y: y}
			}
		}
		spawnEffect(w, s.arena, name, pos.X, pos.Y)
		return tengo.TrueValue, nil
	}}

	values["shake"] = &tengo.UserFunction{Name: "shake", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		intensity, ok := objectAsFloat(args[0])
		if !ok || intensity <= 0 {
			return tengo.FalseValue, nil
		}
		entity.RequestShake(w, intensity, 0)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("boss script: %s: %s", agent.Config().Name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
}
