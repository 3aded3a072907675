package boss

import (
	"bytes"
	"image/color"
	"log"
	"math/rand/v2"
	"testing"
)

type fakeTarget struct {
	id      uint64
	pos     Vec2
	vel     Vec2
	alive   bool
	evading bool
	hits    []int
}

func newTarget(id uint64, x, y float64) *fakeTarget {
	return &fakeTarget{id: id, pos: Vec2{X: x, Y: y}, alive: true}
}

func (t *fakeTarget) ID() uint64 { return t.id }
func (t *fakeTarget) Position() Vec2 { return t.pos }
func (t *fakeTarget) IsAlive() bool { return t.alive }
func (t *fakeTarget) Velocity() Vec2 { return t.vel }
func (t *fakeTarget) IsEvading() bool { return t.evading }
func (t *fakeTarget) DealDamage(amount int) {
	t.hits = append(t.hits, amount)
}

func (t *fakeTarget) total() int {
	sum := 0
	for _, h := range t.hits {
		sum += h
	}
	return sum
}

type spawn struct {
	id string
	at Vec2
}

// recorder implements every fire-and-forget port.
type recorder struct {
	anims   []string
	effects []spawn
	sounds  []string
	tints   []color.Color
	items   []spawn
	events  []Event
}

func (r *recorder) Play(id string, loop bool) { r.anims = append(r.anims, id) }
func (r *recorder) Spawn(id string, at Vec2) { r.effects = append(r.effects, spawn{id, at}) }
func (r *recorder) PlaySFX(id string) { r.sounds = append(r.sounds, id) }
func (r *recorder) SetTint(c color.Color) { r.tints = append(r.tints, c) }
func (r *recorder) SpawnItem(item string, at Vec2) { r.items = append(r.items, spawn{item, at}) }
func (r *recorder) OnAgentEvent(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// fakeQuery returns the targets within radius of center.
type fakeQuery struct {
	targets []*fakeTarget
}

func (q *fakeQuery) FindInRadius(center Vec2, radius float64) []TargetHandle {
	var out []TargetHandle
	for _, t := range q.targets {
		if t.pos.Distance(center) <= radius {
			out = append(out, t)
		}
	}
	return out
}

type fakeGround struct {
	grounded bool
}

func (g *fakeGround) IsGrounded() bool { return g.grounded }

type harness struct {
	agent  *Agent
	rec    *recorder
	query  *fakeQuery
	ground *fakeGround
	logs   *bytes.Buffer
}

// testConfig is DefaultConfig with delays removed so scenarios are easy to
// count in ticks.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.HealDelay = 0
	cfg.HitReactDuration = 0
	cfg.Drops = DropTable{}
	return cfg
}

func newHarness(t *testing.T, cfg Config, pos Vec2) *harness {
	t.Helper()
	h := &harness{
		rec:    &recorder{},
		query:  &fakeQuery{},
		ground: &fakeGround{grounded: true},
		logs:   &bytes.Buffer{},
	}
	a, err := New(cfg, pos, Deps{
		Animation: h.rec,
		Effects:   h.rec,
		Audio:     h.rec,
		Query:     h.query,
		Ground:    h.ground,
		Tint:      h.rec,
		Items:     h.rec,
		Listener:  h.rec,
		Logger:    log.New(h.logs, "", 0),
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.agent = a
	return h
}

func (h *harness) ticks(n int, dt float64) {
	for i := 0; i < n; i++ {
		h.agent.Tick(dt)
	}
}
