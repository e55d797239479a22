package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var errStreamClosed = errors.New("event stream closed")

// EventListener subscribes to the chaincode events of all channels of one organization
// and hands every event to the event service. Broken streams are reopened after a back-off.
type EventListener struct {
	registry     *ConnectionRegistry
	eventService shared.EventService
	orgID        string
	restarts     *rate.Limiter

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEventListener(registry *ConnectionRegistry, eventService shared.EventService, config shared.ReconcilerConfig) *EventListener {
	return &EventListener{
		registry:     registry,
		eventService: eventService,
		orgID:        config.DefaultMspID,
		restarts:     rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
}

func (l *EventListener) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(ctx)
	}()
}

func (l *EventListener) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	l.wg.Wait()
}

func (l *EventListener) run(ctx context.Context) {
	for {
		// at most one (re)connect every ten seconds
		if err := l.restarts.Wait(ctx); err != nil {
			return
		}
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		slog.Warn("chaincode event listener stopped, restarting", "org", l.orgID, "err", err)
	}
}

func (l *EventListener) listen(ctx context.Context) error {
	channels, err := l.registry.Channels(ctx, l.orgID)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, channel := range channels {
		g.Go(func() error {
			events, err := channel.Events(gCtx)
			if err != nil {
				return err
			}
			slog.Info("listening for chaincode events", "org", l.orgID, "channel", channel.Name())
			for event := range events {
				l.dispatch(gCtx, channel.Name(), event)
			}
			return errStreamClosed
		})
	}
	return g.Wait()
}

func (l *EventListener) dispatch(ctx context.Context, channelName string, event Event) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("panic while handling chaincode event", r)
		}
	}()

	monitoring.LedgerEventsReceived.WithLabelValues(event.Name).Inc()
	slog.Debug("received chaincode event", "event", event.Name, "channel", channelName, "block", event.BlockNumber, "tx", event.TransactionID)

	if err := l.eventService.HandleEvent(ctx, event.Name, event.Payload); err != nil {
		slog.Error("could not handle chaincode event", "event", event.Name, "channel", channelName, "err", err)
	}
}
