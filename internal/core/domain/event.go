package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// OnChainEventRecord is the vault's getEvent tuple, decoded.
type OnChainEventRecord struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	TargetAmount  *big.Int       `json:"target_amount"`
	CurrentAmount *big.Int       `json:"current_amount"`
	Deadline      uint64         `json:"deadline"`
	Beneficiary   common.Address `json:"beneficiary"`
	IsActive      bool           `json:"is_active"`
}

// IsZero reports whether the record is the all-zero tuple a vault returns
// for an id it never stored.
func (r OnChainEventRecord) IsZero() bool {
	return r.Title == "" &&
		r.Description == "" &&
		isZeroInt(r.TargetAmount) &&
		isZeroInt(r.CurrentAmount) &&
		r.Deadline == 0 &&
		r.Beneficiary == (common.Address{}) &&
		!r.IsActive
}

// OnChainDonationRecord is one entry of getEventDonations.
type OnChainDonationRecord struct {
	Donor           common.Address `json:"donor"`
	Amount          *big.Int       `json:"amount"`
	Timestamp       uint64         `json:"timestamp"`
	FlowersReceived *big.Int       `json:"flowers_received"`
}

// BaselineEvent is the locally known description of a fundraising event.
// Amounts are in smallest units.
type BaselineEvent struct {
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
}

// BaselineDonation is a locally known donation used when the chain has none.
type BaselineDonation struct {
	ID              string         `json:"id"`
	EventID         uint64         `json:"event_id"`
	Donor           common.Address `json:"donor"`
	Amount          *big.Int       `json:"amount"`
	FlowersReceived *big.Int       `json:"flowers_received"`
	Timestamp       time.Time      `json:"timestamp"`
	SourceChain     string         `json:"source_chain"`
	TargetChain     string         `json:"target_chain"`
	Status          string         `json:"status"`
	TxHash          string         `json:"tx_hash"`
}

// ReadResult is the outcome of a chain read. Available is false when the
// value could not be obtained; Value is then the zero value.
type ReadResult[T any] struct {
	Value     T
	Available bool
	Err       error
}

// Available wraps a successfully read value.
func Available[T any](v T) ReadResult[T] {
	return ReadResult[T]{Value: v, Available: true}
}

// Unavailable records a failed read with its cause.
func Unavailable[T any](err error) ReadResult[T] {
	return ReadResult[T]{Err: err}
}

func isZeroInt(v *big.Int) bool {
	return v == nil || v.Sign() == 0
}
