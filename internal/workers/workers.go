package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns the server's workers. The database probe is only added
// when there is someone to report to.
func NewWorkers(pinger store.Pinger, reporter HealthReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if reporter != nil && pinger != nil {
		w.workers = append(w.workers, newDBHealthProbe(pinger, reporter, cfg.HealthCheckInterval, logger))
	}
	return w
}

// Run starts every worker and blocks until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
