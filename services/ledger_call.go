package services

import (
	"context"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/reconciler"
	"github.com/l3montree-dev/partchain/shared"
)

var (
	// every element, including the data of channels which answered successfully if another one failed
	collectAll = reconciler.Options{ReturnArray: true, AllowDataOnError: true}
	firstOnly  = reconciler.Options{}
)

// execute runs a transaction on every channel of the organization and reconciles the answers.
func execute[T any](ctx context.Context, executor shared.LedgerExecutor, kind dtos.TransactionKind, orgID string, payloads []any, mode dtos.Mode, opts reconciler.Options) (reconciler.Response[T], error) {
	results, err := executor.Execute(ctx, kind, orgID, payloads, mode)
	if err != nil {
		return reconciler.Response[T]{}, err
	}
	return reconciler.Reconcile[T](results, opts), nil
}

func toPayloads[T any](items []T) []any {
	payloads := make([]any, len(items))
	for i, item := range items {
		payloads[i] = item
	}
	return payloads
}
