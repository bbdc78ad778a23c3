// Package workers runs the server's background jobs.
package workers

import "context"

// Worker runs until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// HealthReporter receives the outcome of each database probe.
type HealthReporter interface {
	SetServing(serving bool)
}
