// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DaemonJobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "partchain_daemon_job_duration_minutes",
	Help:    "Duration of a reconciliation job over all organizations in minutes",
	Buckets: prometheus.DefBuckets,
}, []string{"job"})

var DaemonJobFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partchain_daemon_job_failures_total",
	Help: "The total number of reconciliation jobs which failed for an organization",
}, []string{"job"})

var RelationshipsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partchain_daemon_relationships_processed_total",
	Help: "The total number of relationships picked up by a reconciliation job",
}, []string{"job"})

var RelationshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partchain_daemon_relationship_transitions_total",
	Help: "The total number of relationship status changes",
}, []string{"from", "to"})

var UnexpectedRelationshipTransitions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "partchain_daemon_unexpected_relationship_transitions_total",
	Help: "The total number of status changes which are not part of the relationship state machine",
})
