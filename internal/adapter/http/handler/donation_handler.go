package handler

import (
	"crosschain-donation/internal/adapter/http/dto"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"
	"crosschain-donation/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DonationHandler starts donations and reports their lifecycle.
type DonationHandler struct {
	svc ports.DonationService
	reg *registry.Registry
	log zerolog.Logger
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(svc ports.DonationService, reg *registry.Registry, log zerolog.Logger) *DonationHandler {
	return &DonationHandler{svc: svc, reg: reg, log: log}
}

// Start handles POST /api/v1/donations. The sequence continues in the
// background; the response is the attempt as of acceptance.
func (h *DonationHandler) Start(c *gin.Context) {
	var req dto.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	attempt, err := h.svc.Start(c.Request.Context(), domain.DonationIntent{
		Amount:        req.Amount,
		SourceNetwork: h.reg.Source().ID,
		TargetNetwork: h.reg.Target().ID,
		EventID:       req.EventID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, dto.NewAttemptResponse(attempt, h.txURL))
}

// Current handles GET /api/v1/donations/current.
func (h *DonationHandler) Current(c *gin.Context) {
	a := h.svc.Current()
	if a == nil {
		response.Error(c, apperror.ErrNotFound("Donation attempt"))
		return
	}
	response.OK(c, dto.NewAttemptResponse(a, h.txURL))
}

// Stream handles GET /api/v1/donations/stream, pushing a snapshot after every
// lifecycle transition. The first frame is the current attempt or null.
func (h *DonationHandler) Stream(c *gin.Context) {
	updates, cancel := h.svc.Subscribe()
	streamJSON(c, updates, cancel, func(a *domain.DonationAttempt) any {
		return dto.NewAttemptResponse(a, h.txURL)
	}, h.log)
}

func (h *DonationHandler) txURL(hash common.Hash) string {
	return h.reg.Source().TxURL(hash)
}
