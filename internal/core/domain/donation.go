package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// DonationIntent is what the user asked to donate. Amount is a positive
// decimal string in the payment token's display units.
type DonationIntent struct {
	Amount        string  `json:"amount"`
	SourceNetwork ChainID `json:"source_network"`
	TargetNetwork ChainID `json:"target_network"`
	EventID       *uint64 `json:"event_id,omitempty"`
}

// Clone returns a deep copy of the intent.
func (i DonationIntent) Clone() DonationIntent {
	out := i
	if i.EventID != nil {
		id := *i.EventID
		out.EventID = &id
	}
	return out
}

// LifecycleState is the donation transaction state machine.
type LifecycleState string

const (
	LifecycleIdle      LifecycleState = "IDLE"
	LifecycleApproving LifecycleState = "APPROVING"
	LifecycleDonating  LifecycleState = "DONATING"
	LifecycleSucceeded LifecycleState = "SUCCEEDED"
	LifecycleFailed    LifecycleState = "FAILED"
)

// IsTerminal returns true for Succeeded and Failed.
func (s LifecycleState) IsTerminal() bool {
	return s == LifecycleSucceeded || s == LifecycleFailed
}

// IsInFlight returns true while a transaction sequence owns the lifecycle.
func (s LifecycleState) IsInFlight() bool {
	return s == LifecycleApproving || s == LifecycleDonating
}

// ErrorKind classifies why an attempt failed.
type ErrorKind string

const (
	ErrorKindUserRejected        ErrorKind = "USER_REJECTED"
	ErrorKindOnChainCallReverted ErrorKind = "ON_CHAIN_CALL_REVERTED"
	ErrorKindRPCUnavailable      ErrorKind = "RPC_UNAVAILABLE"
	ErrorKindStillPending        ErrorKind = "STILL_PENDING"
	ErrorKindProviderFailure     ErrorKind = "PROVIDER_FAILURE"
	ErrorKindInvalidAmount       ErrorKind = "INVALID_AMOUNT"
)

// LifecycleError is the user-facing failure recorded on a Failed attempt.
type LifecycleError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *LifecycleError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Transition is one recorded state change.
type Transition struct {
	State LifecycleState `json:"state"`
	At    time.Time      `json:"at"`
}

// DonationAttempt is one run of the approve-then-donate sequence.
type DonationAttempt struct {
	ID          uuid.UUID       `json:"id"`
	Intent      DonationIntent  `json:"intent"`
	State       LifecycleState  `json:"state"`
	Transitions []Transition    `json:"transitions"`
	ApproveTx   *common.Hash    `json:"approve_tx,omitempty"`
	DonateTx    *common.Hash    `json:"donate_tx,omitempty"`
	Error       *LifecycleError `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
}

// NewDonationAttempt returns an Idle attempt carrying its own copy of intent.
func NewDonationAttempt(intent DonationIntent, now time.Time) *DonationAttempt {
	return &DonationAttempt{
		ID:          uuid.New(),
		Intent:      intent.Clone(),
		State:       LifecycleIdle,
		Transitions: []Transition{{State: LifecycleIdle, At: now}},
		StartedAt:   now,
	}
}

// Advance moves the attempt to state and records the transition.
func (a *DonationAttempt) Advance(state LifecycleState, now time.Time) {
	a.State = state
	a.Transitions = append(a.Transitions, Transition{State: state, At: now})
	if state.IsTerminal() {
		t := now
		a.FinishedAt = &t
	}
}

// States returns the ordered list of states the attempt passed through.
func (a *DonationAttempt) States() []LifecycleState {
	out := make([]LifecycleState, len(a.Transitions))
	for i, t := range a.Transitions {
		out[i] = t.State
	}
	return out
}

// LastTx returns the most recent transaction hash, donation first.
func (a *DonationAttempt) LastTx() *common.Hash {
	if a.DonateTx != nil {
		return a.DonateTx
	}
	return a.ApproveTx
}

// Clone returns a deep copy safe to hand to other goroutines.
func (a *DonationAttempt) Clone() *DonationAttempt {
	if a == nil {
		return nil
	}
	out := *a
	out.Intent = a.Intent.Clone()
	out.Transitions = append([]Transition(nil), a.Transitions...)
	if a.ApproveTx != nil {
		h := *a.ApproveTx
		out.ApproveTx = &h
	}
	if a.DonateTx != nil {
		h := *a.DonateTx
		out.DonateTx = &h
	}
	if a.Error != nil {
		e := *a.Error
		out.Error = &e
	}
	if a.FinishedAt != nil {
		t := *a.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
