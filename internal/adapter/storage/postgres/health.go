package postgres

import (
	"context"
	"fmt"
)

// HealthCheck probes the baseline catalog table rather than the bare
// connection, so a database without the schema reports as unhealthy.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, "SELECT 1 FROM baseline_events LIMIT 1"); err != nil {
		return fmt.Errorf("baseline catalog unavailable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string { return "baseline-postgres" }
