package ports

import "context"

// HealthChecker verifies connectivity to one infrastructure dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
