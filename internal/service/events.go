package service

// Event types pushed to back-office clients.
const (
	EventRequestSubmitted = "request_submitted"
	EventRequestDecided   = "request_decided"
	EventRequestCancelled = "request_cancelled"
	EventProductChanged   = "product_changed"
)

// EventPublisher fans events out to connected clients. Implementations must not block.
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) {}
