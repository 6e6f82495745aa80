package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports whether the read cache and rate limit store are reachable.
// An unreachable cache only slows reads down, so the health endpoint reports
// it as degraded rather than failing requests.
type HealthCheck struct {
	client goredis.UniversalClient
}

func NewHealthCheck(client goredis.UniversalClient) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("read cache unreachable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string { return "redis" }
