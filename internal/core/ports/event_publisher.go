package ports

import "context"

// Topics carried over the realtime channel. Subscribers join rooms named
// after the topic they care about.
const (
	TopicOrderClaimed   = "order:claimed"
	TopicOrderCompleted = "order:completed"
	TopicOrderCancelled = "order:cancelled"
	TopicPickUpdated    = "pick:updated"
	TopicZoneUpdated    = "zone:updated"
	TopicInventoryLow   = "inventory:low"
)

// EventPublisher pushes domain events to connected clients. Publishing is
// best effort: implementations must not fail the calling use case when no
// subscriber is listening or a connection is slow.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
