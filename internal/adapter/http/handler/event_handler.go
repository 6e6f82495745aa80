package handler

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"crosschain-donation/internal/adapter/http/dto"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/reconcile"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"
	"crosschain-donation/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the chain reads one event listing fans out.
const maxConcurrentReads = 4

// EventHandler serves merged event and donation views.
type EventHandler struct {
	baseline ports.BaselineRepository
	reads    ports.ChainQueryService
	reg      *registry.Registry
	decimals uint8
	now      func() time.Time
}

// NewEventHandler creates a new EventHandler. decimals renders amounts for display.
func NewEventHandler(baseline ports.BaselineRepository, reads ports.ChainQueryService, reg *registry.Registry, decimals uint8) *EventHandler {
	return &EventHandler{
		baseline: baseline,
		reads:    reads,
		reg:      reg,
		decimals: decimals,
		now:      time.Now,
	}
}

// List handles GET /api/v1/events.
func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.baseline.ListEvents(ctx)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	fetched := make([]domain.ReadResult[domain.OnChainEventRecord], len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, ev := range events {
		g.Go(func() error {
			fetched[i] = h.reads.FetchEvent(gctx, ev.ID)
			return nil
		})
	}
	_ = g.Wait() // reads never fail

	now := h.now()
	out := make([]dto.EventResponse, 0, len(events))
	for i, ev := range events {
		out = append(out, h.render(reconcile.MergeEventView(ev, fetched[i]), now))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/events/:id. The baseline record and the chain
// record are fetched concurrently.
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var (
		base    *domain.BaselineEvent
		fetched domain.ReadResult[domain.OnChainEventRecord]
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		base, err = h.baseline.GetEvent(gctx, id)
		return err
	})
	g.Go(func() error {
		fetched = h.reads.FetchEvent(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	if base == nil {
		if !fetched.Available {
			response.Error(c, apperror.ErrNotFound("Event"))
			return
		}
		base = baselineFromChain(id, fetched.Value)
	}
	response.OK(c, h.render(reconcile.MergeEventView(*base, fetched), h.now()))
}

// Donations handles GET /api/v1/events/:id/donations.
func (h *EventHandler) Donations(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var (
		base    []domain.BaselineDonation
		onChain domain.ReadResult[[]domain.OnChainDonationRecord]
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		base, err = h.baseline.ListDonations(gctx, id)
		return err
	})
	g.Go(func() error {
		onChain = h.reads.FetchDonations(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	// An unavailable read carries no records, so the baseline is used.
	merged := reconcile.MergeDonationList(id, onChain.Value, base)
	response.OK(c, dto.NewDonationListResponse(id, merged, h.decimals))
}

// Balance handles GET /api/v1/balances/:address.
func (h *EventHandler) Balance(c *gin.Context) {
	raw := c.Param("address")
	if !common.IsHexAddress(raw) {
		response.Error(c, apperror.Validation("invalid address"))
		return
	}
	addr := common.HexToAddress(raw)

	res := h.reads.FetchBalance(c.Request.Context(), addr)
	resp := dto.BalanceResponse{Address: addr.Hex(), Available: res.Available}
	if res.Available {
		amt := dto.NewAmount(res.Value, h.decimals)
		resp.Balance = &amt
	}
	response.OK(c, resp)
}

// RewardPreview handles GET /api/v1/rewards/preview?amount=. It prices the
// reward with the vault's ratio and falls back to the configured default.
func (h *EventHandler) RewardPreview(c *gin.Context) {
	amount, err := domain.ParseUnits(c.Query("amount"), h.decimals)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(err))
		return
	}

	ratio, origin := h.flowerRatio(c.Request.Context())
	response.OK(c, dto.RewardPreviewResponse{
		Amount:  dto.NewAmount(amount, h.decimals),
		Flowers: dto.NewAmount(reconcile.RewardPreview(amount, ratio), h.decimals),
		Ratio:   ratio.String(),
		Origin:  origin,
	})
}

func (h *EventHandler) flowerRatio(ctx context.Context) (*big.Int, string) {
	res := h.reads.FetchFlowerRatio(ctx)
	if res.Available && res.Value != nil && res.Value.Sign() > 0 {
		return res.Value, string(reconcile.OriginChain)
	}
	return h.reg.FlowerRatio(), "default"
}

func (h *EventHandler) render(v reconcile.EventView, now time.Time) dto.EventResponse {
	return dto.NewEventResponse(v, h.decimals, now, h.reg.Target().AddressURL)
}

// baselineFromChain stands in for a missing baseline record so an event
// that exists only on chain is still shown with its on-chain description.
func baselineFromChain(id uint64, rec domain.OnChainEventRecord) *domain.BaselineEvent {
	return &domain.BaselineEvent{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Beneficiary: rec.Beneficiary,
	}
}

func eventID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("event id must be a non-negative integer"))
		return 0, false
	}
	return id, true
}
