package dto

import (
	"math/big"
	"time"

	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/reconcile"
	"crosschain-donation/internal/registry"

	"github.com/ethereum/go-ethereum/common"
)

// SwitchNetworkRequest is the request body for a network switch. ChainID may
// be decimal or 0x-prefixed hex.
type SwitchNetworkRequest struct {
	ChainID string `json:"chain_id" binding:"required,chain_id"`
}

// DonateRequest is the request body for starting a donation.
type DonateRequest struct {
	Amount  string  `json:"amount" binding:"required,decimal_amount"`
	EventID *uint64 `json:"event_id,omitempty"`
}

// IssueTokenResponse is returned when a control-API token is minted.
type IssueTokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// Amount carries a smallest-unit integer and its display form.
type Amount struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
}

// NewAmount renders v at decimals. A nil value renders as zero.
func NewAmount(v *big.Int, decimals uint8) Amount {
	if v == nil {
		v = new(big.Int)
	}
	return Amount{Raw: v.String(), Display: domain.FormatUnits(v, decimals)}
}

// SessionResponse is the wallet session as the UI shows it.
type SessionResponse struct {
	State           domain.ConnectionState `json:"state"`
	Address         *string                `json:"address,omitempty"`
	NetworkID       uint64                 `json:"network_id"`
	NetworkName     string                 `json:"network_name,omitempty"`
	RequiredNetwork uint64                 `json:"required_network"`
	OnRequired      bool                   `json:"on_required_network"`
}

// NewSessionResponse maps a session snapshot.
func NewSessionResponse(s domain.WalletSession, reg *registry.Registry) SessionResponse {
	required := reg.Source().ID
	resp := SessionResponse{
		State:           s.State,
		NetworkID:       uint64(s.NetworkID),
		RequiredNetwork: uint64(required),
		OnRequired:      s.OnNetwork(required),
	}
	if s.Address != nil {
		addr := s.Address.Hex()
		resp.Address = &addr
	}
	if c, ok := reg.Lookup(s.NetworkID); ok {
		resp.NetworkName = c.Name
	}
	return resp
}

// TxLink is a transaction hash with its explorer link.
type TxLink struct {
	Hash string `json:"hash"`
	URL  string `json:"url,omitempty"`
}

// AttemptResponse is one donation attempt.
type AttemptResponse struct {
	ID          string                 `json:"id"`
	State       domain.LifecycleState  `json:"state"`
	Amount      string                 `json:"amount,omitempty"`
	EventID     *uint64                `json:"event_id,omitempty"`
	Transitions []domain.Transition    `json:"transitions"`
	ApproveTx   *TxLink                `json:"approve_tx,omitempty"`
	DonateTx    *TxLink                `json:"donate_tx,omitempty"`
	Error       *domain.LifecycleError `json:"error,omitempty"`
	StartedAt   time.Time              `json:"started_at"`
	FinishedAt  *time.Time             `json:"finished_at,omitempty"`
}

// NewAttemptResponse maps an attempt. link renders explorer URLs and may be nil.
func NewAttemptResponse(a *domain.DonationAttempt, link func(common.Hash) string) *AttemptResponse {
	if a == nil {
		return nil
	}
	resp := &AttemptResponse{
		ID:          a.ID.String(),
		State:       a.State,
		Amount:      a.Intent.Amount,
		EventID:     a.Intent.EventID,
		Transitions: a.Transitions,
		Error:       a.Error,
		StartedAt:   a.StartedAt,
		FinishedAt:  a.FinishedAt,
	}
	resp.ApproveTx = txLink(a.ApproveTx, link)
	resp.DonateTx = txLink(a.DonateTx, link)
	return resp
}

func txLink(h *common.Hash, link func(common.Hash) string) *TxLink {
	if h == nil {
		return nil
	}
	out := &TxLink{Hash: h.Hex()}
	if link != nil {
		out.URL = link(*h)
	}
	return out
}

// EventResponse is a merged event view.
type EventResponse struct {
	ID              uint64                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Category        string                   `json:"category"`
	BeneficiaryName string                   `json:"beneficiary_name"`
	Beneficiary     string                   `json:"beneficiary"`
	BeneficiaryURL  string                   `json:"beneficiary_url,omitempty"`
	ImageURLs       []string                 `json:"image_urls"`
	DonorCount      uint64                   `json:"donor_count"`
	TargetAmount    Amount                   `json:"target_amount"`
	CurrentAmount   Amount                   `json:"current_amount"`
	Deadline        time.Time                `json:"deadline"`
	IsActive        bool                     `json:"is_active"`
	IsCompleted     bool                     `json:"is_completed"`
	Progress        int                      `json:"progress"`
	DeadlineStatus  reconcile.DeadlineStatus `json:"deadline_status"`
	Origin          reconcile.Origin         `json:"origin"`
}

// NewEventResponse maps a merged view. Completion and progress are derived
// from the merged amounts here and nowhere else.
func NewEventResponse(v reconcile.EventView, decimals uint8, now time.Time, addressURL func(common.Address) string) EventResponse {
	resp := EventResponse{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		Category:        v.Category,
		BeneficiaryName: v.BeneficiaryName,
		Beneficiary:     v.Beneficiary.Hex(),
		ImageURLs:       v.ImageURLs,
		DonorCount:      v.DonorCount,
		TargetAmount:    NewAmount(v.TargetAmount, decimals),
		CurrentAmount:   NewAmount(v.CurrentAmount, decimals),
		Deadline:        v.Deadline,
		IsActive:        v.IsActive,
		IsCompleted:     v.IsCompleted(),
		Progress:        v.Progress(),
		DeadlineStatus:  v.DeadlineStatus(now),
		Origin:          v.Origin,
	}
	if resp.ImageURLs == nil {
		resp.ImageURLs = []string{}
	}
	if addressURL != nil {
		resp.BeneficiaryURL = addressURL(v.Beneficiary)
	}
	return resp
}

// DonationResponse is one merged donation row.
type DonationResponse struct {
	EventID         uint64           `json:"event_id"`
	Donor           string           `json:"donor"`
	Amount          Amount           `json:"amount"`
	FlowersReceived Amount           `json:"flowers_received"`
	Timestamp       time.Time        `json:"timestamp"`
	TxHash          string           `json:"tx_hash,omitempty"`
	Status          string           `json:"status,omitempty"`
	SourceChain     string           `json:"source_chain,omitempty"`
	TargetChain     string           `json:"target_chain,omitempty"`
	Origin          reconcile.Origin `json:"origin"`
}

// NewDonationResponses maps a merged donation list, keeping its order.
func NewDonationResponses(list []reconcile.DonationView, decimals uint8) []DonationResponse {
	out := make([]DonationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, DonationResponse{
			EventID:         d.EventID,
			Donor:           d.Donor.Hex(),
			Amount:          NewAmount(d.Amount, decimals),
			FlowersReceived: NewAmount(d.FlowersReceived, decimals),
			Timestamp:       d.Timestamp,
			TxHash:          d.TxHash,
			Status:          d.Status,
			SourceChain:     d.SourceChain,
			TargetChain:     d.TargetChain,
			Origin:          d.Origin,
		})
	}
	return out
}

// DonationListResponse wraps an event's donations with aggregate stats.
type DonationListResponse struct {
	EventID      uint64             `json:"event_id"`
	Donations    []DonationResponse `json:"donations"`
	TotalAmount  Amount             `json:"total_amount"`
	TotalFlowers Amount             `json:"total_flowers"`
	UniqueDonors int                `json:"unique_donors"`
}

// NewDonationListResponse maps list and sums it.
func NewDonationListResponse(eventID uint64, list []reconcile.DonationView, decimals uint8) DonationListResponse {
	total, flowers := new(big.Int), new(big.Int)
	donors := make(map[common.Address]struct{}, len(list))
	for _, d := range list {
		if d.Amount != nil {
			total.Add(total, d.Amount)
		}
		if d.FlowersReceived != nil {
			flowers.Add(flowers, d.FlowersReceived)
		}
		donors[d.Donor] = struct{}{}
	}
	return DonationListResponse{
		EventID:      eventID,
		Donations:    NewDonationResponses(list, decimals),
		TotalAmount:  NewAmount(total, decimals),
		TotalFlowers: NewAmount(flowers, decimals),
		UniqueDonors: len(donors),
	}
}

// BalanceResponse is an account's reward token balance on the target chain.
type BalanceResponse struct {
	Address   string  `json:"address"`
	Balance   *Amount `json:"balance,omitempty"`
	Available bool    `json:"available"`
}

// RewardPreviewResponse estimates the reward for a donation amount.
type RewardPreviewResponse struct {
	Amount  Amount `json:"amount"`
	Flowers Amount `json:"flowers"`
	Ratio   string `json:"ratio"`
	Origin  string `json:"origin"`
}
