package infrastructure

import (
	"context"

	"gambler/arcade/domain/events"
	"gambler/arcade/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// NATSTransactionalPublisher holds events until the unit of work commits
type NATSTransactionalPublisher struct {
	realPublisher interfaces.EventPublisher
	pending       []events.Event
}

// NewNATSTransactionalPublisher creates a new transactional publisher
func NewNATSTransactionalPublisher(realPublisher interfaces.EventPublisher) *NATSTransactionalPublisher {
	return &NATSTransactionalPublisher{
		realPublisher: realPublisher,
	}
}

// Publish queues an event
func (p *NATSTransactionalPublisher) Publish(event events.Event) error {
	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"pendingCount": len(p.pending),
	}).Debug("Queueing event until commit")

	p.pending = append(p.pending, event)
	return nil
}

// Flush publishes every queued event in order. A failed event is logged and
// does not stop the rest.
func (p *NATSTransactionalPublisher) Flush(ctx context.Context) error {
	pending := p.pending
	p.pending = nil

	for _, event := range pending {
		if err := ctx.Err(); err != nil {
			log.WithField("dropped", len(pending)).Warn("Context done before events were flushed")
			return err
		}
		if err := p.realPublisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish event during flush")
		}
	}
	return nil
}

// Discard drops queued events after a rollback
func (p *NATSTransactionalPublisher) Discard() {
	if len(p.pending) > 0 {
		log.WithField("discardedEventCount", len(p.pending)).Debug("Discarding queued events")
	}
	p.pending = nil
}
