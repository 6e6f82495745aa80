package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"crosschain-donation/internal/core/ports"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/time/rate"
)

// Reader implements ports.ContractCaller for one fixed chain. Calls are
// throttled with a token bucket and bounded by a per-call timeout.
type Reader struct {
	backend Backend
	limiter *rate.Limiter
	timeout time.Duration
	name    string
}

// NewReader wraps backend. A non-positive perSecond disables throttling.
func NewReader(backend Backend, perSecond float64, burst int, timeout time.Duration, name string) *Reader {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Reader{
		backend: backend,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		name:    name,
	}
}

// CallContract runs a stateless eth_call at the latest block.
func (r *Reader) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: throttled: %w", ports.ErrRPCUnavailable, err)
	}
	out, err := r.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Ping checks that the endpoint answers eth_chainId.
func (r *Reader) Ping(ctx context.Context) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	_, err := r.ChainID(ctx)
	return err
}

// ChainID returns the id the endpoint reports.
func (r *Reader) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := r.backend.ChainID(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return id, nil
}

// Name identifies the reader in health reports.
func (r *Reader) Name() string { return r.name }

// Close releases the underlying client.
func (r *Reader) Close() { closeBackend(r.backend) }

func (r *Reader) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
