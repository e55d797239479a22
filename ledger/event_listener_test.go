package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/l3montree-dev/partchain/ledger"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/stretchr/testify/mock"
)

// streamOf emits the given events and keeps the stream open until ctx is done.
func streamOf(events ...ledger.Event) func(ctx context.Context) (<-chan ledger.Event, error) {
	return func(ctx context.Context) (<-chan ledger.Event, error) {
		ch := make(chan ledger.Event)
		go func() {
			defer close(ch)
			for _, event := range events {
				select {
				case ch <- event:
				case <-ctx.Done():
					return
				}
			}
			<-ctx.Done()
		}()
		return ch, nil
	}
}

func newListener(t *testing.T, eventService shared.EventService, events ...ledger.Event) *ledger.EventListener {
	channel := mocks.NewLedgerChannel(t)
	channel.On("Name").Return("partchain-channel").Maybe()
	channel.On("Events", mock.Anything).Return(streamOf(events...))

	connector := mocks.NewLedgerConnector(t)
	connector.On("Connect", mock.Anything, mock.Anything, "partchain-channel").Return(channel, nil).Once()

	config := shared.ReconcilerConfig{DefaultChannelName: "partchain-channel", DefaultMspID: "Lion"}
	registry := ledger.NewConnectionRegistry(connector, ledger.Identities{"Lion": ledger.Identity{MspID: "Lion"}}, config)
	return ledger.NewEventListener(registry, eventService, config)
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event was not handled")
	}
}

func TestEventListener(t *testing.T) {
	t.Run("should hand chaincode events to the event service", func(t *testing.T) {
		done := make(chan struct{})
		eventService := mocks.NewEventService(t)
		eventService.On("HandleEvent", mock.Anything, "RequestEvent", []byte(`{"key":"k1"}`)).Return(nil).Run(func(args mock.Arguments) {
			close(done)
		}).Once()

		listener := newListener(t, eventService, ledger.Event{Name: "RequestEvent", Payload: []byte(`{"key":"k1"}`)})
		listener.Start()
		waitFor(t, done)
		listener.Stop()
	})

	t.Run("should keep listening if handling an event panics", func(t *testing.T) {
		done := make(chan struct{})
		eventService := mocks.NewEventService(t)
		eventService.On("HandleEvent", mock.Anything, "ExchangeEvent", mock.Anything).Run(func(args mock.Arguments) {
			panic("broken handler")
		}).Return(nil).Once()
		eventService.On("HandleEvent", mock.Anything, "RequestEvent", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			close(done)
		}).Once()

		listener := newListener(t, eventService,
			ledger.Event{Name: "ExchangeEvent", Payload: []byte(`{}`)},
			ledger.Event{Name: "RequestEvent", Payload: []byte(`{}`)},
		)
		listener.Start()
		waitFor(t, done)
		listener.Stop()
	})
}
