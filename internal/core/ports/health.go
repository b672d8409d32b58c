package ports

import "context"

// HealthChecker verifies that an external dependency is reachable.
type HealthChecker interface {
	// Ping returns nil when the dependency answers.
	Ping(ctx context.Context) error
	// Name identifies the dependency in health output ("postgresql", "redis").
	Name() string
}
