// Package reconcile merges authoritative on-chain reads with the locally known
// baseline catalog. Every function is pure: inputs are never mutated and the
// result shares no pointers with them.
package reconcile

import (
	"math"
	"math/big"
	"sort"
	"time"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// Origin tells a reader where a view's authoritative numbers came from.
type Origin string

const (
	OriginChain    Origin = "chain"
	OriginBaseline Origin = "baseline"
)

// EventView is a baseline event overlaid with on-chain amounts and status.
type EventView struct {
	ID              uint64         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	BeneficiaryName string         `json:"beneficiary_name"`
	Beneficiary     common.Address `json:"beneficiary"`
	ImageURLs       []string       `json:"image_urls"`
	DonorCount      uint64         `json:"donor_count"`
	TargetAmount    *big.Int       `json:"target_amount"`
	CurrentAmount   *big.Int       `json:"current_amount"`
	Deadline        time.Time      `json:"deadline"`
	IsActive        bool           `json:"is_active"`
	Origin          Origin         `json:"origin"`
}

// MergeEventView overlays an available on-chain record onto baseline.
// Only target, current, deadline and active status are taken from the chain;
// descriptive fields always come from baseline.
func MergeEventView(baseline domain.BaselineEvent, fetched domain.ReadResult[domain.OnChainEventRecord]) EventView {
	view := EventView{
		ID:              baseline.ID,
		Title:           baseline.Title,
		Description:     baseline.Description,
		Category:        baseline.Category,
		BeneficiaryName: baseline.BeneficiaryName,
		Beneficiary:     baseline.Beneficiary,
		ImageURLs:       append([]string(nil), baseline.ImageURLs...),
		DonorCount:      baseline.DonorCount,
		TargetAmount:    copyInt(baseline.TargetAmount),
		CurrentAmount:   copyInt(baseline.CurrentAmount),
		Deadline:        baseline.Deadline,
		IsActive:        baseline.IsActive,
		Origin:          OriginBaseline,
	}
	if !fetched.Available {
		return view
	}

	rec := fetched.Value
	view.TargetAmount = copyInt(rec.TargetAmount)
	view.CurrentAmount = copyInt(rec.CurrentAmount)
	view.Deadline = unixToTime(rec.Deadline)
	view.IsActive = rec.IsActive
	view.Origin = OriginChain
	return view
}

// IsCompleted reports whether the merged current amount reached the target.
func (v EventView) IsCompleted() bool {
	return intOrZero(v.CurrentAmount).Cmp(intOrZero(v.TargetAmount)) >= 0
}

// Progress is the rounded funding percentage, capped at 100.
func (v EventView) Progress() int {
	target := intOrZero(v.TargetAmount)
	current := intOrZero(v.CurrentAmount)
	if target.Sign() <= 0 {
		if current.Sign() > 0 {
			return 100
		}
		return 0
	}
	// round(current*100/target) == (current*200 + target) / (2*target)
	num := new(big.Int).Mul(current, big.NewInt(200))
	num.Add(num, target)
	den := new(big.Int).Mul(target, big.NewInt(2))
	pct := new(big.Int).Quo(num, den)
	if pct.Cmp(big.NewInt(100)) > 0 {
		return 100
	}
	return int(pct.Int64())
}

// DeadlineState buckets the time left before an event closes.
type DeadlineState string

const (
	DeadlineEnded    DeadlineState = "ENDED"
	DeadlineDueToday DeadlineState = "DUE_TODAY"
	DeadlineUrgent   DeadlineState = "URGENT"
	DeadlineOpen     DeadlineState = "OPEN"
)

// DeadlineStatus is the countdown shown next to an event.
type DeadlineStatus struct {
	State    DeadlineState `json:"state"`
	DaysLeft int           `json:"days_left"`
	IsUrgent bool          `json:"is_urgent"`
}

// urgentDays is the countdown at and below which an event is flagged urgent.
const urgentDays = 3

// DeadlineStatus computes whole days left at now, rounding down.
func (v EventView) DeadlineStatus(now time.Time) DeadlineStatus {
	days := int(math.Floor(v.Deadline.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return DeadlineStatus{State: DeadlineEnded}
	case days == 0:
		return DeadlineStatus{State: DeadlineDueToday, IsUrgent: true}
	case days <= urgentDays:
		return DeadlineStatus{State: DeadlineUrgent, DaysLeft: days, IsUrgent: true}
	default:
		return DeadlineStatus{State: DeadlineOpen, DaysLeft: days}
	}
}

// DonationView is one donation row, from either source.
type DonationView struct {
	EventID         uint64         `json:"event_id"`
	Donor           common.Address `json:"donor"`
	Amount          *big.Int       `json:"amount"`
	FlowersReceived *big.Int       `json:"flowers_received"`
	Timestamp       time.Time      `json:"timestamp"`
	TxHash          string         `json:"tx_hash,omitempty"`
	Status          string         `json:"status,omitempty"`
	SourceChain     string         `json:"source_chain,omitempty"`
	TargetChain     string         `json:"target_chain,omitempty"`
	Origin          Origin         `json:"origin"`
}

// MergeDonationList picks one source wholesale: a non-empty on-chain list,
// otherwise the baseline list. Rows are never interleaved. The result is
// ordered newest first.
func MergeDonationList(eventID uint64, onChain []domain.OnChainDonationRecord, baseline []domain.BaselineDonation) []DonationView {
	var out []DonationView
	if len(onChain) > 0 {
		out = make([]DonationView, 0, len(onChain))
		for _, d := range onChain {
			out = append(out, DonationView{
				EventID:         eventID,
				Donor:           d.Donor,
				Amount:          copyInt(d.Amount),
				FlowersReceived: copyInt(d.FlowersReceived),
				Timestamp:       unixToTime(d.Timestamp),
				Status:          "completed",
				Origin:          OriginChain,
			})
		}
	} else {
		out = make([]DonationView, 0, len(baseline))
		for _, d := range baseline {
			out = append(out, DonationView{
				EventID:         d.EventID,
				Donor:           d.Donor,
				Amount:          copyInt(d.Amount),
				FlowersReceived: copyInt(d.FlowersReceived),
				Timestamp:       d.Timestamp,
				TxHash:          d.TxHash,
				Status:          d.Status,
				SourceChain:     d.SourceChain,
				TargetChain:     d.TargetChain,
				Origin:          OriginBaseline,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// RewardPreview estimates the reward for a donation of amount at ratio reward
// tokens per payment token. The result is in the same units as amount.
func RewardPreview(amount, ratio *big.Int) *big.Int {
	if amount == nil || ratio == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(amount, ratio)
}

func unixToTime(sec uint64) time.Time {
	if sec > math.MaxInt64 {
		sec = math.MaxInt64
	}
	return time.Unix(int64(sec), 0).UTC()
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func intOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
