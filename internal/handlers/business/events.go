package business

import (
	"sync"
	"time"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

// Event kinds published on every successful core operation. Collaborators
// (UI refresh, reporting) subscribe in-process or via RabbitMQ; the engines
// never depend on who listens.
const (
	EventNodePlaced         = "node.placed"
	EventInvestmentRecorded = "investment.recorded"
	EventBonusComputed      = "bonus.computed"
)

// Queue names
const (
	EventsQueue  = "compensation_events"
	ComputeQueue = "commission_compute"
)

// DomainEvent is the envelope published for every core state change.
type DomainEvent struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    models.JSONMap `json:"payload"`
}

// ComputeRequest is the message consumed by the commission worker.
type ComputeRequest struct {
	NodeID uint `json:"node_id"`
}

var (
	subscribersMu sync.RWMutex
	subscribers   = make(map[chan DomainEvent]struct{})

	publisherMu sync.Mutex
	publisher   *dbconfig.Publisher
)

// SubscribeEvents registers an in-process subscriber and returns its channel
// plus an unsubscribe func. Slow subscribers drop events instead of blocking
// the engines.
func SubscribeEvents() (<-chan DomainEvent, func()) {
	ch := make(chan DomainEvent, 64)

	subscribersMu.Lock()
	subscribers[ch] = struct{}{}
	subscribersMu.Unlock()

	unsubscribe := func() {
		subscribersMu.Lock()
		delete(subscribers, ch)
		subscribersMu.Unlock()
		close(ch)
	}
	return ch, unsubscribe
}

func getPublisher() *dbconfig.Publisher {
	if dbconfig.RabbitMQ == nil {
		return nil
	}

	publisherMu.Lock()
	defer publisherMu.Unlock()

	if publisher == nil {
		p, err := dbconfig.NewPublisher()
		if err != nil {
			logrus.Warnf("Failed to create event publisher: %v", err)
			return nil
		}
		publisher = p
	}
	return publisher
}

// PublishEvent fans an event out to in-process subscribers and, when
// RabbitMQ is configured, to the compensation_events queue. Publishing is
// fire-and-forget: failures are logged, never retried here.
func PublishEvent(kind string, payload models.JSONMap) DomainEvent {
	evt := DomainEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	subscribersMu.RLock()
	for ch := range subscribers {
		select {
		case ch <- evt:
		default: // subscriber too slow, drop
		}
	}
	subscribersMu.RUnlock()

	if p := getPublisher(); p != nil {
		if err := p.Publish(EventsQueue, evt); err != nil {
			logrus.Warnf("Failed to publish %s event: %v", kind, err)
		}
	}

	return evt
}
