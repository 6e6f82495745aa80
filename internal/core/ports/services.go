package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// SessionService owns the wallet session.
type SessionService interface {
	Connect(ctx context.Context) (domain.WalletSession, error)
	Restore(ctx context.Context) (domain.WalletSession, error)
	SwitchNetwork(ctx context.Context, id domain.ChainID) error
	Disconnect() domain.WalletSession
	Snapshot() domain.WalletSession
	// Subscribe returns a channel of session snapshots and a cancel func.
	Subscribe() (<-chan domain.WalletSession, func())
	// Watch applies provider notifications until ctx is done.
	Watch(ctx context.Context)
}

// DonationService sequences approve-then-donate against the wallet.
type DonationService interface {
	// Submit runs the whole sequence and returns the terminal attempt.
	Submit(ctx context.Context, intent domain.DonationIntent) (*domain.DonationAttempt, error)
	// Start claims the lifecycle and continues the sequence in the background.
	Start(ctx context.Context, intent domain.DonationIntent) (*domain.DonationAttempt, error)
	// Wait blocks until the current attempt is terminal.
	Wait(ctx context.Context) (*domain.DonationAttempt, error)
	// Current returns a copy of the latest attempt, or nil.
	Current() *domain.DonationAttempt
	Subscribe() (<-chan *domain.DonationAttempt, func())
}

// ChainQueryService reads the target chain's vault. Reads never fail; an
// unobtainable value comes back with Available false.
type ChainQueryService interface {
	FetchEvent(ctx context.Context, id uint64) domain.ReadResult[domain.OnChainEventRecord]
	FetchDonations(ctx context.Context, id uint64) domain.ReadResult[[]domain.OnChainDonationRecord]
	FetchBalance(ctx context.Context, addr common.Address) domain.ReadResult[*big.Int]
	FetchFlowerRatio(ctx context.Context) domain.ReadResult[*big.Int]
}

// TokenService handles JWT token operations for the control API.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}
