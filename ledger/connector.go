package ledger

import (
	"context"
)

// Event is a chaincode event as emitted by a channel.
type Event struct {
	Name          string
	Payload       []byte
	BlockNumber   uint64
	TransactionID string
}

// Channel is a connection to the chaincode of one channel on behalf of one organization.
type Channel interface {
	Name() string
	Evaluate(ctx context.Context, function string, args ...string) ([]byte, error)
	Submit(ctx context.Context, function string, endorsingOrg string, transient map[string][]byte, args ...string) ([]byte, error)
	// Events streams chaincode events until ctx is done or the stream breaks.
	Events(ctx context.Context) (<-chan Event, error)
}

type Connector interface {
	Connect(ctx context.Context, identity Identity, channelName string) (Channel, error)
	Close() error
}
