package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/l3montree-dev/partchain/ledger"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ofOrg(mspID string) any {
	return mock.MatchedBy(func(identity ledger.Identity) bool {
		return identity.MspID == mspID
	})
}

func TestConnectionRegistry(t *testing.T) {
	ctx := context.Background()
	identities := ledger.Identities{
		"Lion":  ledger.Identity{MspID: "Lion", Channels: []string{"a"}},
		"Tiger": ledger.Identity{MspID: "Tiger", Channels: []string{"a"}},
	}

	t.Run("should not block other organizations while one is still connecting", func(t *testing.T) {
		connector := mocks.NewLedgerConnector(t)
		started := make(chan struct{})
		release := make(chan struct{})
		connector.On("Connect", mock.Anything, ofOrg("Lion"), "a").Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).Return(mocks.NewLedgerChannel(t), nil).Once()
		connector.On("Connect", mock.Anything, ofOrg("Tiger"), "a").Return(mocks.NewLedgerChannel(t), nil).Once()
		registry := ledger.NewConnectionRegistry(connector, identities, shared.ReconcilerConfig{})

		lion := make(chan error)
		go func() {
			_, err := registry.Channels(ctx, "Lion")
			lion <- err
		}()
		<-started

		tiger := make(chan error)
		go func() {
			_, err := registry.Channels(ctx, "Tiger")
			tiger <- err
		}()
		select {
		case err := <-tiger:
			assert.Nil(t, err)
		case <-time.After(time.Second):
			t.Fatal("connecting Tiger waited for Lion")
		}

		close(release)
		assert.Nil(t, <-lion)
	})

	t.Run("should connect once for concurrent callers", func(t *testing.T) {
		connector := mocks.NewLedgerConnector(t)
		connector.On("Connect", mock.Anything, ofOrg("Lion"), "a").Run(func(args mock.Arguments) {
			time.Sleep(20 * time.Millisecond)
		}).Return(mocks.NewLedgerChannel(t), nil).Once()
		registry := ledger.NewConnectionRegistry(connector, identities, shared.ReconcilerConfig{})

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				channels, err := registry.Channels(ctx, "Lion")
				assert.Nil(t, err)
				assert.Len(t, channels, 1)
			}()
		}
		wg.Wait()
	})
}
