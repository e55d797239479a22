package ledger

import (
	"context"
	"crypto/x509"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

type gateway struct {
	gw   *client.Gateway
	conn *grpc.ClientConn
}

// FabricConnector opens one gateway per organization and shares it between all channels.
type FabricConnector struct {
	mu       sync.Mutex
	gateways map[string]gateway
}

var _ Connector = (*FabricConnector)(nil)

func NewFabricConnector() *FabricConnector {
	return &FabricConnector{
		gateways: make(map[string]gateway),
	}
}

func (f *FabricConnector) Connect(ctx context.Context, id Identity, channelName string) (Channel, error) {
	gw, err := f.gateway(id)
	if err != nil {
		return nil, err
	}

	network := gw.GetNetwork(channelName)
	return &fabricChannel{
		name:      channelName,
		chaincode: id.ChaincodeID,
		network:   network,
		contract:  network.GetContract(id.ChaincodeID),
	}, nil
}

func (f *FabricConnector) gateway(id Identity) (*client.Gateway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if g, ok := f.gateways[id.MspID]; ok {
		return g.gw, nil
	}

	conn, err := newGrpcConnection(id)
	if err != nil {
		return nil, err
	}

	x509Identity, sign, err := newSigner(id)
	if err != nil {
		conn.Close()
		return nil, err
	}

	gw, err := client.Connect(
		x509Identity,
		client.WithSign(sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(30*time.Second),
		client.WithEndorseTimeout(30*time.Second),
		client.WithSubmitTimeout(30*time.Second),
		client.WithCommitStatusTimeout(2*time.Minute),
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "could not connect gateway of %s", id.MspID)
	}

	slog.Info("created gateway", "org", id.MspID, "peer", id.PeerEndpoint)
	f.gateways[id.MspID] = gateway{gw: gw, conn: conn}
	return gw, nil
}

func (f *FabricConnector) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for mspID, g := range f.gateways {
		if err := g.gw.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "could not close gateway of %s", mspID))
		}
		if err := g.conn.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "could not close connection of %s", mspID))
		}
		delete(f.gateways, mspID)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func newGrpcConnection(id Identity) (*grpc.ClientConn, error) {
	pem, err := os.ReadFile(id.PeerTLSCertPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read tls certificate of %s", id.MspID)
	}
	certificate, err := identity.CertificateFromPEM(pem)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse tls certificate of %s", id.MspID)
	}

	pool := x509.NewCertPool()
	pool.AddCert(certificate)
	transportCredentials := credentials.NewClientTLSFromCert(pool, id.PeerHostOverride)

	conn, err := grpc.NewClient(id.PeerEndpoint, grpc.WithTransportCredentials(transportCredentials))
	if err != nil {
		return nil, errors.Wrapf(err, "could not create grpc connection to %s", id.PeerEndpoint)
	}
	return conn, nil
}

func newSigner(id Identity) (*identity.X509Identity, identity.Sign, error) {
	certPEM, err := os.ReadFile(id.CertPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read certificate of %s", id.MspID)
	}
	certificate, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not parse certificate of %s", id.MspID)
	}
	x509Identity, err := identity.NewX509Identity(id.MspID, certificate)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not create identity of %s", id.MspID)
	}

	keyPEM, err := os.ReadFile(id.KeyPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read private key of %s", id.MspID)
	}
	privateKey, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not parse private key of %s", id.MspID)
	}
	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not create signer of %s", id.MspID)
	}
	return x509Identity, sign, nil
}

type fabricChannel struct {
	name      string
	chaincode string
	network   *client.Network
	contract  *client.Contract
}

func (c *fabricChannel) Name() string {
	return c.name
}

func (c *fabricChannel) Evaluate(ctx context.Context, function string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.contract.Evaluate(function, client.WithArguments(args...))
}

func (c *fabricChannel) Submit(ctx context.Context, function string, endorsingOrg string, transient map[string][]byte, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.contract.Submit(function,
		client.WithArguments(args...),
		client.WithTransient(transient),
		client.WithEndorsingOrganizations(endorsingOrg),
	)
}

func (c *fabricChannel) Events(ctx context.Context) (<-chan Event, error) {
	events, err := c.network.ChaincodeEvents(ctx, c.chaincode)
	if err != nil {
		return nil, errors.Wrapf(err, "could not subscribe to chaincode events on %s", c.name)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for event := range events {
			select {
			case out <- Event{
				Name:          event.EventName,
				Payload:       event.Payload,
				BlockNumber:   event.BlockNumber,
				TransactionID: event.TransactionID,
			}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
