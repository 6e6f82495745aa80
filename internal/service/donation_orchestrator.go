package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"
	"time"

	"crosschain-donation/config"
	"crosschain-donation/internal/contracts"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/observability"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

const defaultConfirmationTimeout = 5 * time.Minute

// DonationOrchestrator implements ports.DonationService. It owns the donation
// lifecycle and runs at most one approve-then-donate sequence at a time.
type DonationOrchestrator struct {
	session  ports.SessionService
	provider ports.WalletProvider
	registry *registry.Registry
	timeout  time.Duration
	msgLimit int
	metrics  *observability.DonationMetrics
	log      zerolog.Logger

	mu      sync.Mutex
	busy    bool
	current *domain.DonationAttempt
	done    chan struct{}
	subs    *broadcaster[*domain.DonationAttempt]
}

// NewDonationOrchestrator creates the orchestrator. metrics may be nil.
func NewDonationOrchestrator(
	session ports.SessionService,
	provider ports.WalletProvider,
	reg *registry.Registry,
	cfg config.DonationConfig,
	metrics *observability.DonationMetrics,
	log zerolog.Logger,
) *DonationOrchestrator {
	timeout := cfg.ConfirmationTimeout
	if timeout <= 0 {
		timeout = defaultConfirmationTimeout
	}
	limit := cfg.ErrorMessageLimit
	if limit <= 0 {
		limit = apperror.DefaultMessageLimit
	}
	return &DonationOrchestrator{
		session:  session,
		provider: provider,
		registry: reg,
		timeout:  timeout,
		msgLimit: limit,
		metrics:  metrics,
		log:      log.With().Str("component", "donation").Logger(),
		subs:     newBroadcaster[*domain.DonationAttempt](),
	}
}

// Submit runs the whole sequence and returns the terminal attempt. If ctx
// ends first the sequence keeps running and the in-flight attempt is returned
// with ctx's error.
func (o *DonationOrchestrator) Submit(ctx context.Context, intent domain.DonationIntent) (*domain.DonationAttempt, error) {
	attempt, done, err := o.start(ctx, intent)
	if err != nil {
		return nil, err
	}

	select {
	case <-done:
		err = nil
	case <-ctx.Done():
		err = ctx.Err()
	}
	// Later attempts replace o.current, so read this one directly.
	o.mu.Lock()
	defer o.mu.Unlock()
	return attempt.Clone(), err
}

// Start checks the preconditions, claims the lifecycle and continues the
// sequence in the background. The returned attempt is in Approving.
func (o *DonationOrchestrator) Start(ctx context.Context, intent domain.DonationIntent) (*domain.DonationAttempt, error) {
	attempt, _, err := o.start(ctx, intent)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return attempt.Clone(), nil
}

// start returns the live attempt and the channel closed when it is terminal.
// Both stay tied to this attempt even after another one begins.
func (o *DonationOrchestrator) start(ctx context.Context, intent domain.DonationIntent) (*domain.DonationAttempt, <-chan struct{}, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, nil, apperror.ErrSubmitInFlight()
	}
	o.busy = true
	o.mu.Unlock()

	intent, err := o.prepare(ctx, intent)
	if err != nil {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
		return nil, nil, err
	}

	now := time.Now()
	attempt := domain.NewDonationAttempt(intent, now)
	attempt.Advance(domain.LifecycleApproving, now)
	done := make(chan struct{})

	o.mu.Lock()
	o.current = attempt
	o.done = done
	o.publishLocked()
	o.mu.Unlock()

	o.metrics.Transition(string(domain.LifecycleIdle))
	o.metrics.Transition(string(domain.LifecycleApproving))
	o.log.Info().
		Str("attempt_id", attempt.ID.String()).
		Str("amount", intent.Amount).
		Msg("donation started")

	// A submitted transaction cannot be unsent, so the run outlives the caller.
	go o.run(context.WithoutCancel(ctx), attempt.ID.String(), intent)

	return attempt, done, nil
}

// Wait blocks until the current attempt is terminal or ctx ends.
func (o *DonationOrchestrator) Wait(ctx context.Context) (*domain.DonationAttempt, error) {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()

	if done == nil {
		return o.Current(), nil
	}
	select {
	case <-done:
		return o.Current(), nil
	case <-ctx.Done():
		return o.Current(), ctx.Err()
	}
}

// Current returns a copy of the latest attempt, or nil before the first one.
func (o *DonationOrchestrator) Current() *domain.DonationAttempt {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current.Clone()
}

// Subscribe streams attempt snapshots after every transition. The first value
// is the current attempt, which may be nil.
func (o *DonationOrchestrator) Subscribe() (<-chan *domain.DonationAttempt, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.subs.subscribe(o.current.Clone())
}

// ExplorerURL links a transaction on the source chain's explorer.
func (o *DonationOrchestrator) ExplorerURL(hash common.Hash) string {
	return o.registry.Source().TxURL(hash)
}

// prepare validates the intent and makes sure the wallet is connected to the
// source network. Failing checks trigger the corrective wallet request and
// abort; the caller resubmits once the wallet has caught up.
func (o *DonationOrchestrator) prepare(ctx context.Context, intent domain.DonationIntent) (domain.DonationIntent, error) {
	intent = intent.Clone()
	intent.Amount = strings.TrimSpace(intent.Amount)

	source, target := o.registry.Source().ID, o.registry.Target().ID
	if intent.SourceNetwork == 0 {
		intent.SourceNetwork = source
	}
	if intent.TargetNetwork == 0 {
		intent.TargetNetwork = target
	}
	if intent.SourceNetwork != source || intent.TargetNetwork != target {
		return intent, apperror.Validation(fmt.Sprintf("donations go from chain %s to chain %s", source, target))
	}
	// Syntax and sign only; the token's decimals are checked once read from chain.
	if _, err := domain.ParseUnits(intent.Amount, math.MaxUint8); err != nil {
		return intent, apperror.ErrInvalidAmount(err)
	}

	if o.provider == nil {
		return intent, apperror.ErrNoProviderFound()
	}

	session := o.session.Snapshot()
	if !session.IsConnected() {
		o.log.Info().Msg("wallet not connected, requesting connection")
		if _, err := o.session.Connect(ctx); err != nil {
			if errors.Is(err, apperror.ErrNoProviderFound()) {
				return intent, err
			}
			o.log.Warn().Err(err).Msg("connection request failed")
		}
		return intent, apperror.ErrWalletNotConnected()
	}

	if !session.OnNetwork(source) {
		o.log.Info().
			Stringer("current", session.NetworkID).
			Stringer("required", source).
			Msg("wallet on wrong network, requesting switch")
		err := o.session.SwitchNetwork(ctx, source)
		if err != nil {
			o.log.Warn().Err(err).Msg("network switch failed")
		}
		return intent, apperror.ErrNetworkMismatch(err)
	}

	return intent, nil
}

func (o *DonationOrchestrator) run(ctx context.Context, attemptID string, intent domain.DonationIntent) {
	log := o.log.With().Str("attempt_id", attemptID).Logger()
	chain := o.registry.Source()
	token, bridge := chain.Contracts.PaymentToken, chain.Contracts.TokenBridge

	amount, err := o.parseAmount(ctx, token, intent.Amount)
	if err != nil {
		o.fail(log, err)
		return
	}

	approveData, err := contracts.PackApprove(bridge, amount)
	if err != nil {
		o.fail(log, apperror.InternalError(err))
		return
	}
	approveTx, err := o.provider.SendTransaction(ctx, ports.TxRequest{To: token, Data: approveData})
	if err != nil {
		o.fail(log, err)
		return
	}
	o.update(func(a *domain.DonationAttempt) { a.ApproveTx = &approveTx })
	log.Info().Str("tx", approveTx.Hex()).Str("explorer", chain.TxURL(approveTx)).Msg("approval submitted")

	if err := o.confirm(ctx, approveTx); err != nil {
		o.fail(log, err)
		return
	}

	o.advance(domain.LifecycleDonating)

	donateData, err := contracts.PackDonate(token, amount, intent.EventID)
	if err != nil {
		o.fail(log, apperror.InternalError(err))
		return
	}
	donateTx, err := o.provider.SendTransaction(ctx, ports.TxRequest{To: bridge, Data: donateData})
	if err != nil {
		o.fail(log, err)
		return
	}
	o.update(func(a *domain.DonationAttempt) { a.DonateTx = &donateTx })
	log.Info().Str("tx", donateTx.Hex()).Str("explorer", chain.TxURL(donateTx)).Msg("donation submitted")

	if err := o.confirm(ctx, donateTx); err != nil {
		o.fail(log, err)
		return
	}

	o.finish(func(a *domain.DonationAttempt) {
		a.Intent.Amount = ""
		a.Advance(domain.LifecycleSucceeded, time.Now())
	})
	log.Info().Msg("donation succeeded")
}

// parseAmount converts the display amount using the token's own decimals.
func (o *DonationOrchestrator) parseAmount(ctx context.Context, token common.Address, amount string) (*big.Int, error) {
	data, err := contracts.PackDecimals()
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	out, err := o.provider.Call(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("read token decimals: %w", err)
	}
	decimals, err := contracts.UnpackDecimals(out)
	if err != nil {
		return nil, fmt.Errorf("decode token decimals: %w", err)
	}
	value, err := domain.ParseUnits(amount, decimals)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(err)
	}
	return value, nil
}

// confirm waits for hash to be mined, bounded by the confirmation timeout.
func (o *DonationOrchestrator) confirm(ctx context.Context, hash common.Hash) error {
	waitCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	receipt, err := o.provider.WaitReceipt(waitCtx, hash)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || waitCtx.Err() != nil {
			return apperror.ErrStillPending(fmt.Errorf("tx %s: %w", hash.Hex(), err))
		}
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return apperror.ErrOnChainCallReverted("", fmt.Errorf("tx %s failed in block %v", hash.Hex(), receipt.BlockNumber))
	}
	return nil
}

func (o *DonationOrchestrator) advance(state domain.LifecycleState) {
	o.update(func(a *domain.DonationAttempt) { a.Advance(state, time.Now()) })
	o.metrics.Transition(string(state))
}

func (o *DonationOrchestrator) update(fn func(a *domain.DonationAttempt)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.current)
	o.publishLocked()
}

func (o *DonationOrchestrator) fail(log zerolog.Logger, err error) {
	lerr := o.lifecycleError(err)
	log.Warn().Err(err).Str("kind", string(lerr.Kind)).Msg("donation failed")
	o.finish(func(a *domain.DonationAttempt) {
		a.Error = lerr
		a.Advance(domain.LifecycleFailed, time.Now())
	})
}

// finish applies the terminal mutation, releases the flight and wakes waiters.
func (o *DonationOrchestrator) finish(fn func(a *domain.DonationAttempt)) {
	o.mu.Lock()
	fn(o.current)
	attempt := o.current
	o.busy = false
	close(o.done)
	o.publishLocked()
	o.mu.Unlock()

	kind := ""
	if attempt.Error != nil {
		kind = string(attempt.Error.Kind)
	}
	o.metrics.Transition(string(attempt.State))
	o.metrics.Finished(strings.ToLower(string(attempt.State)), kind, time.Since(attempt.StartedAt))
}

func (o *DonationOrchestrator) lifecycleError(err error) *domain.LifecycleError {
	kind := errorKind(err)

	var msg string
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		msg = appErr.Message
		if appErr.Err != nil && (kind == domain.ErrorKindProviderFailure || kind == domain.ErrorKindRPCUnavailable) {
			msg += ": " + appErr.Err.Error()
		}
	case kind == domain.ErrorKindOnChainCallReverted:
		msg = apperror.ErrOnChainCallReverted(revertReason(err), err).Message
	default:
		msg = err.Error()
	}

	return &domain.LifecycleError{Kind: kind, Message: apperror.Truncate(msg, o.msgLimit)}
}

func (o *DonationOrchestrator) publishLocked() {
	o.subs.publish(o.current.Clone())
}
