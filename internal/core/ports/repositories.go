package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"crosschain-donation/internal/core/domain"
)

// BaselineRepository serves the locally known event catalog.
type BaselineRepository interface {
	ListEvents(ctx context.Context) ([]domain.BaselineEvent, error)
	// GetEvent returns nil, nil when the id is unknown.
	GetEvent(ctx context.Context, id uint64) (*domain.BaselineEvent, error)
	ListDonations(ctx context.Context, eventID uint64) ([]domain.BaselineDonation, error)
}

// ReadCache stores encoded chain read results for a short TTL.
type ReadCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
