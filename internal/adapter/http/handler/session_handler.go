package handler

import (
	"crosschain-donation/internal/adapter/http/dto"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"
	"crosschain-donation/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionHandler exposes the wallet session.
type SessionHandler struct {
	svc ports.SessionService
	reg *registry.Registry
	log zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc ports.SessionService, reg *registry.Registry, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, reg: reg, log: log}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(c *gin.Context) {
	response.OK(c, dto.NewSessionResponse(h.svc.Snapshot(), h.reg))
}

// Connect handles POST /api/v1/session/connect.
func (h *SessionHandler) Connect(c *gin.Context) {
	s, err := h.svc.Connect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(s, h.reg))
}

// Disconnect handles POST /api/v1/session/disconnect.
func (h *SessionHandler) Disconnect(c *gin.Context) {
	response.OK(c, dto.NewSessionResponse(h.svc.Disconnect(), h.reg))
}

// Switch handles POST /api/v1/session/switch.
func (h *SessionHandler) Switch(c *gin.Context) {
	var req dto.SwitchNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	id, err := domain.ParseChainID(req.ChainID)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.svc.SwitchNetwork(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(h.svc.Snapshot(), h.reg))
}

// Stream handles GET /api/v1/session/stream, pushing every session change.
func (h *SessionHandler) Stream(c *gin.Context) {
	updates, cancel := h.svc.Subscribe()
	streamJSON(c, updates, cancel, func(s domain.WalletSession) any {
		return dto.NewSessionResponse(s, h.reg)
	}, h.log)
}

// Networks handles GET /api/v1/networks, listing the source and target chains.
func (h *SessionHandler) Networks(c *gin.Context) {
	response.OK(c, h.reg.Chains())
}
