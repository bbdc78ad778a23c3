// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

const (
	defaultHealthCheckInterval = 15 * time.Second
	pingTimeout                = 3 * time.Second
)

// dbHealthProbe pings the database on an interval and feeds the result to
// the gRPC health service.
type dbHealthProbe struct {
	pinger   store.Pinger
	reporter HealthReporter
	interval time.Duration
	logger   *logger.Logger
}

func newDBHealthProbe(pinger store.Pinger, reporter HealthReporter, interval time.Duration, logger *logger.Logger) *dbHealthProbe {
	if interval <= 0 {
		interval = defaultHealthCheckInterval
	}
	return &dbHealthProbe{pinger: pinger, reporter: reporter, interval: interval, logger: logger}
}

// Run probes once immediately, then on every tick until ctx is done.
func (p *dbHealthProbe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	healthy := p.probe(ctx, false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healthy = p.probe(ctx, healthy)
		}
	}
}

// probe reports the ping result and logs only transitions.
func (p *dbHealthProbe) probe(ctx context.Context, wasHealthy bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := p.pinger.PingContext(pingCtx)
	healthy := err == nil
	p.reporter.SetServing(healthy)

	switch {
	case !healthy && wasHealthy:
		p.logger.Err(err).Str("func", "dbHealthProbe.probe").Msg("database became unreachable")
	case !healthy:
		p.logger.Warn().Err(err).Str("func", "dbHealthProbe.probe").Msg("database unreachable")
	case !wasHealthy:
		p.logger.Info().Str("func", "dbHealthProbe.probe").Msg("database reachable")
	}
	return healthy
}
