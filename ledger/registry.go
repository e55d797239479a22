package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"golang.org/x/sync/singleflight"
)

// ConnectionRegistry lazily connects an organization to all of its channels and keeps the
// connections for the lifetime of the process.
type ConnectionRegistry struct {
	connector      Connector
	identities     Identities
	defaultChannel string

	mu       sync.Mutex
	channels map[string][]Channel
	// one dial per organization, other organizations are never blocked by it
	connecting singleflight.Group
}

func NewConnectionRegistry(connector Connector, identities Identities, config shared.ReconcilerConfig) *ConnectionRegistry {
	return &ConnectionRegistry{
		connector:      connector,
		identities:     identities,
		defaultChannel: config.DefaultChannelName,
		channels:       make(map[string][]Channel),
	}
}

// Channels returns one connection per distinct channel of the organization.
// If a single channel cannot be connected, nothing is cached and the error is returned.
func (r *ConnectionRegistry) Channels(ctx context.Context, orgID string) ([]Channel, error) {
	if channels, ok := r.cached(orgID); ok {
		return channels, nil
	}

	v, err, _ := r.connecting.Do(orgID, func() (any, error) {
		if channels, ok := r.cached(orgID); ok {
			return channels, nil
		}
		channels, err := r.connect(ctx, orgID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		r.channels[orgID] = channels
		monitoring.LedgerConnections.Add(float64(len(channels)))
		return channels, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Channel), nil
}

func (r *ConnectionRegistry) cached(orgID string) ([]Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	channels, ok := r.channels[orgID]
	return channels, ok
}

func (r *ConnectionRegistry) connect(ctx context.Context, orgID string) ([]Channel, error) {
	identity, err := r.identities.Get(orgID)
	if err != nil {
		return nil, err
	}

	names := identity.ChannelNames(r.defaultChannel)
	channels := make([]Channel, 0, len(names))
	for _, name := range names {
		slog.Debug("connecting to channel", "org", orgID, "channel", name)
		channel, err := r.connector.Connect(ctx, identity, name)
		if err != nil {
			return nil, shared.LedgerError{Msg: "could not connect " + orgID + " to channel " + name, Err: err}
		}
		channels = append(channels, channel)
	}
	return channels, nil
}

func (r *ConnectionRegistry) Organizations() []string {
	return r.identities.MspIDs()
}

func (r *ConnectionRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for orgID, channels := range r.channels {
		monitoring.LedgerConnections.Sub(float64(len(channels)))
		delete(r.channels, orgID)
	}
	return r.connector.Close()
}
