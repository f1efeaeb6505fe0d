// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"context"

	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricNamespace = "gridsearch"
	metricSubsystem = "grid"

	labelGrid   = "grid"
	labelKind   = "kind"
	labelReason = "reason"
	labelStatus = "status"
)

// Metrics are the collectors a Repository updates while searching.
type Metrics struct {
	predicates *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the search collectors and registers them with r. A nil
// r leaves them unregistered.
func NewMetrics(ctx context.Context, r prometheus.Registerer) (*Metrics, error) {
	const op = "grid.NewMetrics"
	m := &Metrics{
		predicates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Subsystem: metricSubsystem,
				Name:      "search_predicates_total",
				Help:      "Count of search predicates applied, by grid and predicate kind.",
			},
			[]string{labelGrid, labelKind},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Subsystem: metricSubsystem,
				Name:      "search_dropped_tokens_total",
				Help:      "Count of search tokens ignored, by grid and reason.",
			},
			[]string{labelGrid, labelReason},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Subsystem: metricSubsystem,
				Name:      "search_duration_seconds",
				Help:      "Histogram of search latencies, by grid and outcome.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{labelGrid, labelStatus},
		),
	}
	if r == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.predicates, m.dropped, m.duration} {
		if err := r.Register(c); err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Internal))
		}
	}
	return m, nil
}

func (m *Metrics) observe(grid string, st *Statement, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.duration.WithLabelValues(grid, status).Observe(seconds)
	if st == nil {
		return
	}
	for _, p := range st.Predicates {
		m.predicates.WithLabelValues(grid, p.Kind.String()).Inc()
	}
	for _, d := range st.Dropped {
		m.dropped.WithLabelValues(grid, d.Reason.String()).Inc()
	}
}
