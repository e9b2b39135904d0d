package notify

import "context"

// Source emits tour change events. The in-memory implementation backs tests
// and broker-less local runs; production uses the AMQP consumer.
type Source interface {
	Publish(ctx context.Context, evt ChangeEvent)
	Events() <-chan ChangeEvent
}

type inMemory struct{ ch chan ChangeEvent }

func NewInMemorySource(buffer int) Source {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan ChangeEvent, buffer)}
}

func (m *inMemory) Publish(_ context.Context, evt ChangeEvent) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) Events() <-chan ChangeEvent { return m.ch }

// Pump drains a Source into the notifier until ctx is done.
func Pump(ctx context.Context, src Source, n *Notifier) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-src.Events():
			if err := n.HandleChange(ctx, evt); err != nil {
				n.log().Warn("event handling failed", "tour_id", evt.ID, "error", err)
			}
		}
	}
}
