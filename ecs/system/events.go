package system

// World event types pushed to the ecs event queue.
const (
	EventBossPrefix    = "boss."
	EventBossExpired   = "boss.expired"
	EventPlayerDied    = "player.died"
	EventItemCollected = "item.collected"
)

// ItemCollected is the payload of EventItemCollected.
type ItemCollected struct {
	Item  string
	Total int
}
