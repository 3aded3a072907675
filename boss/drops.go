package boss

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Drop is one line of a drop table. Chance only applies to random drops.
type Drop struct {
	Item   string
	Chance float64
	Min    int
	Max    int
}

// DropTable describes the loot scattered after the agent dies: guaranteed
// drops always roll, random drops roll against their chance. Items fall from
// Height above a random point within Radius, one every Interval after Delay.
type DropTable struct {
	Guaranteed []Drop
	Random     []Drop
	Delay      float64
	Interval   float64
	Radius     float64
	Height     float64
}

func (t DropTable) validate() error {
	for _, d := range append(append([]Drop(nil), t.Guaranteed...), t.Random...) {
		if d.Item == "" {
			return fmt.Errorf("drop without item: %w", ErrInvalidConfig)
		}
		if d.Min < 0 || (d.Max != 0 && d.Max < d.Min) {
			return fmt.Errorf("drop %q quantity %d..%d: %w", d.Item, d.Min, d.Max, ErrInvalidConfig)
		}
		if d.Chance < 0 || d.Chance > 1 {
			return fmt.Errorf("drop %q chance %v outside [0,1]: %w", d.Item, d.Chance, ErrInvalidConfig)
		}
	}
	if t.Delay < 0 || t.Interval < 0 || t.Radius < 0 {
		return fmt.Errorf("drop timing must not be negative: %w", ErrInvalidConfig)
	}
	return nil
}

// Roll returns the items to spawn, in spawn order.
func (t DropTable) Roll(r *rand.Rand) []string {
	var items []string
	for _, d := range t.Guaranteed {
		items = appendN(items, d.Item, d.quantity(r))
	}
	for _, d := range t.Random {
		if r.Float64() <= d.Chance {
			items = appendN(items, d.Item, d.quantity(r))
		}
	}
	return items
}

func (d Drop) quantity(r *rand.Rand) int {
	lo, hi := d.Min, d.Max
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo + r.IntN(hi-lo+1)
}

func appendN(items []string, item string, n int) []string {
	for i := 0; i < n; i++ {
		items = append(items, item)
	}
	return items
}

// dropTimeline spawns rolled items over time once the agent is dead.
type dropTimeline struct {
	queue   []string
	origin  Vec2
	elapsed float64
	waiting bool
}

func (d *dropTimeline) schedule(items []string, origin Vec2) {
	*d = dropTimeline{queue: items, origin: origin, waiting: len(items) > 0}
}

func (d *dropTimeline) done() bool {
	return len(d.queue) == 0
}

func (d *dropTimeline) step(a *Agent, dt float64) {
	if d.done() {
		return
	}
	d.elapsed += dt
	if d.waiting {
		if d.elapsed+timeEpsilon < a.cfg.Drops.Delay {
			return
		}
		d.waiting = false
		d.elapsed = 0
		d.spawnNext(a)
	}
	for !d.done() && d.elapsed+timeEpsilon >= a.cfg.Drops.Interval {
		d.elapsed -= a.cfg.Drops.Interval
		d.spawnNext(a)
	}
}

func (d *dropTimeline) spawnNext(a *Agent) {
	item := d.queue[0]
	d.queue = d.queue[1:]

	r := a.deps.Rand
	radius := a.cfg.Drops.Radius
	dist := radius
	if radius > 0.5 {
		dist = 0.5 + r.Float64()*(radius-0.5)
	}
	dir := math.Cos(r.Float64() * 2 * math.Pi)
	at := Vec2{X: d.origin.X + dir*dist, Y: d.origin.Y - a.cfg.Drops.Height}

	a.deps.Items.SpawnItem(item, at)
	a.emitAt(Event{Kind: EventDrop, Item: item}, at)
}
