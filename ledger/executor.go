package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const privatePayloadKey = "privatePayload"

// Executor runs a chaincode function on every channel of an organization.
type Executor struct {
	registry *ConnectionRegistry
}

var _ shared.LedgerExecutor = (*Executor)(nil)

func NewExecutor(registry *ConnectionRegistry) *Executor {
	return &Executor{registry: registry}
}

func (e *Executor) Organizations() []string {
	return e.registry.Organizations()
}

// Execute invokes the transaction once per payload on each channel.
// The outer result list is indexed by channel. Empty ledger answers are skipped.
func (e *Executor) Execute(ctx context.Context, kind dtos.TransactionKind, orgID string, payloads []any, mode dtos.Mode) ([][]dtos.LedgerResponse, error) {
	channels, err := e.registry.Channels(ctx, orgID)
	if err != nil {
		return nil, err
	}

	// marshal once, the same bytes go to every channel
	encoded := make([][]byte, len(payloads))
	for i, payload := range payloads {
		encoded[i], err = json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "could not marshal payload of %s", kind)
		}
	}

	results := make([][]dtos.LedgerResponse, len(channels))
	g, gCtx := errgroup.WithContext(ctx)
	for i, channel := range channels {
		g.Go(func() error {
			slog.Info("executing transaction", "org", orgID, "tx", kind.Name(), "mode", mode, "channel", channel.Name(), "payloads", len(payloads))
			responses := make([]dtos.LedgerResponse, 0, len(payloads))
			for j, payload := range payloads {
				response, ok := e.invoke(gCtx, channel, kind, orgID, payload, encoded[j], mode)
				if ok {
					responses = append(responses, response)
				}
			}
			results[i] = responses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// invoke returns false if the ledger answered with an empty payload.
func (e *Executor) invoke(ctx context.Context, channel Channel, kind dtos.TransactionKind, orgID string, payload any, encoded []byte, mode dtos.Mode) (dtos.LedgerResponse, bool) {
	start := time.Now()
	defer func() {
		monitoring.LedgerTransactionDuration.WithLabelValues(kind.Name(), mode.String()).Observe(time.Since(start).Seconds())
	}()

	args := []string{kind.Name(), RemoveExtraComma(string(encoded))}

	var raw []byte
	var err error
	switch mode {
	case dtos.ModeSubmit:
		endorser := endorsingOrg(kind, orgID, payload)
		if endorser == "" {
			slog.Warn("could not resolve endorsing organization", "org", orgID, "tx", kind.Name())
			return record(kind, dtos.LedgerResponse{
				Status:  http.StatusInternalServerError,
				Message: dtos.InvalidFunctionCallErrorMessage,
			}), true
		}
		raw, err = channel.Submit(ctx, kind.Name(), endorser, map[string][]byte{privatePayloadKey: encoded}, args...)
	case dtos.ModeEvaluate:
		raw, err = channel.Evaluate(ctx, kind.Name(), args...)
	}

	if err != nil {
		slog.Error("transaction failed", "org", orgID, "tx", kind.Name(), "channel", channel.Name(), "err", err)
		return record(kind, dtos.LedgerResponse{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}), true
	}

	if len(raw) == 0 {
		return dtos.LedgerResponse{}, false
	}

	var response dtos.LedgerResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		slog.Error("could not decode ledger response", "org", orgID, "tx", kind.Name(), "err", err)
		return record(kind, dtos.LedgerResponse{
			Status:  http.StatusInternalServerError,
			Message: "could not decode ledger response",
		}), true
	}
	return record(kind, response), true
}

func record(kind dtos.TransactionKind, response dtos.LedgerResponse) dtos.LedgerResponse {
	monitoring.LedgerTransactionStatus.WithLabelValues(kind.Name(), strconv.Itoa(response.Status)).Inc()
	return response
}
