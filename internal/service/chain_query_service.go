package service

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"crosschain-donation/internal/contracts"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/observability"
	"crosschain-donation/internal/registry"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// errEventNotFound marks a getEvent tuple that is all zero values.
var errEventNotFound = errors.New("event does not exist on chain")

// ChainQueryService implements ports.ChainQueryService against the target
// chain's donation vault. It holds no state shared with the orchestrator.
type ChainQueryService struct {
	caller   ports.ContractCaller
	vault    common.Address
	cache    ports.ReadCache // nil disables caching
	cacheTTL time.Duration
	metrics  *observability.ReadMetrics
	log      zerolog.Logger
}

// NewChainQueryService creates a reader for reg's target vault.
func NewChainQueryService(
	caller ports.ContractCaller,
	reg *registry.Registry,
	cache ports.ReadCache,
	cacheTTL time.Duration,
	metrics *observability.ReadMetrics,
	log zerolog.Logger,
) *ChainQueryService {
	if cacheTTL <= 0 {
		cache = nil
	}
	return &ChainQueryService{
		caller:   caller,
		vault:    reg.Target().Contracts.DonationVault,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      log.With().Str("component", "reads").Logger(),
	}
}

// FetchEvent reads getEvent(id). A missing event is unavailable.
func (s *ChainQueryService) FetchEvent(ctx context.Context, id uint64) domain.ReadResult[domain.OnChainEventRecord] {
	data, err := contracts.PackGetEvent(id)
	if err != nil {
		return domain.Unavailable[domain.OnChainEventRecord](err)
	}
	return read(ctx, s, "getEvent", data, func(out []byte) (domain.OnChainEventRecord, error) {
		rec, err := contracts.UnpackGetEvent(out)
		if err != nil {
			return rec, err
		}
		if rec.IsZero() {
			return rec, errEventNotFound
		}
		return rec, nil
	})
}

// FetchDonations reads getEventDonations(id) in contract order.
func (s *ChainQueryService) FetchDonations(ctx context.Context, id uint64) domain.ReadResult[[]domain.OnChainDonationRecord] {
	data, err := contracts.PackGetEventDonations(id)
	if err != nil {
		return domain.Unavailable[[]domain.OnChainDonationRecord](err)
	}
	return read(ctx, s, "getEventDonations", data, contracts.UnpackGetEventDonations)
}

// FetchBalance reads the reward token balance of addr. The zero address is
// answered locally with zero.
func (s *ChainQueryService) FetchBalance(ctx context.Context, addr common.Address) domain.ReadResult[*big.Int] {
	if addr == (common.Address{}) {
		return domain.Available(new(big.Int))
	}
	data, err := contracts.PackVaultBalanceOf(addr)
	if err != nil {
		return domain.Unavailable[*big.Int](err)
	}
	return read(ctx, s, "balanceOf", data, contracts.UnpackVaultBalanceOf)
}

// FetchFlowerRatio reads FLOWER_RATIO().
func (s *ChainQueryService) FetchFlowerRatio(ctx context.Context) domain.ReadResult[*big.Int] {
	data, err := contracts.PackFlowerRatio()
	if err != nil {
		return domain.Unavailable[*big.Int](err)
	}
	return read(ctx, s, "FLOWER_RATIO", data, contracts.UnpackFlowerRatio)
}

// read runs one eth_call, consulting the cache first. Raw return data is
// cached so decoding stays in one place.
func read[T any](ctx context.Context, s *ChainQueryService, method string, calldata []byte, decode func([]byte) (T, error)) domain.ReadResult[T] {
	start := time.Now()
	key := s.cacheKey(calldata)

	out := s.cached(ctx, key)
	fromCache := out != nil
	if !fromCache {
		var err error
		out, err = s.caller.CallContract(ctx, s.vault, calldata)
		if err != nil {
			s.metrics.Observe(method, false, time.Since(start))
			s.log.Warn().Err(err).Str("method", method).Msg("vault read failed")
			return domain.Unavailable[T](err)
		}
	}

	value, err := decode(out)
	if err != nil {
		s.metrics.Observe(method, false, time.Since(start))
		s.log.Debug().Err(err).Str("method", method).Msg("vault read unusable")
		return domain.Unavailable[T](err)
	}

	if !fromCache {
		s.store(ctx, key, out)
	}
	s.metrics.Observe(method, true, time.Since(start))
	return domain.Available(value)
}

func (s *ChainQueryService) cacheKey(calldata []byte) string {
	return s.vault.Hex() + ":" + hex.EncodeToString(calldata)
}

func (s *ChainQueryService) cached(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	out, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.Cache("error")
		s.log.Warn().Err(err).Msg("read cache get failed")
		return nil
	case out == nil:
		s.metrics.Cache("miss")
		return nil
	default:
		s.metrics.Cache("hit")
		return out
	}
}

func (s *ChainQueryService) store(ctx context.Context, key string, out []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("read cache set failed")
	}
}
