// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var LedgerTransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "partchain_ledger_transaction_duration_seconds",
	Help:    "Duration of a single chaincode invocation in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"transaction", "mode"})

var LedgerTransactionStatus = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partchain_ledger_transaction_status_total",
	Help: "The total number of chaincode answers by status code",
}, []string{"transaction", "status"})

var LedgerConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "partchain_ledger_open_connections",
	Help: "The number of cached channel connections",
})

var LedgerEventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partchain_ledger_events_received_total",
	Help: "The total number of chaincode events received",
}, []string{"event"})

var OrgDatabasesOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "partchain_org_databases_open",
	Help: "The number of organization databases with an open connection pool",
})
