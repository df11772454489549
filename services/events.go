package services

import "log"

// EventPublisher fans booking events out to other systems.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

const (
	EventBatchSubmitted = "booking.batch.submitted"
	EventBookingCreated = "booking.created"
	EventNoTableMarked  = "stay.no_table.marked"
)

func publish(p EventPublisher, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(key, payload); err != nil {
		log.Printf("⚠️ publish %s: %v", key, err)
	}
}
