package system

import (
	"math"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

// PickupCollectSystem moves pickups the player touches into its inventory.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
		return
	}
	inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind())
	if !ok {
		return
	}

	halfW, halfH := 0.5, 0.5
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		halfW, halfH = body.Width/2, body.Height/2
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		// distance from the pickup to the player's box
		dx := math.Max(math.Abs(t.X-pt.X)-halfW, 0)
		dy := math.Max(math.Abs(t.Y-pt.Y)-halfH, 0)
		if math.Hypot(dx, dy) > pickup.Radius {
			return
		}

		inv.Add(pickup.Item, 1)
		queueSound(w, player, "pickup")
		w.Events().Push(ecs.Event{Type: EventItemCollected, Data: ItemCollected{
			Item:  pickup.Item,
			Total: inv.Items[pickup.Item],
		}})
		ecs.DestroyEntity(w, e)
	})
}
