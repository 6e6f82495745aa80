package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// SessionManager implements ports.SessionService. It is the only writer of
// the wallet session; everyone else reads snapshots.
type SessionManager struct {
	provider ports.WalletProvider // nil when no wallet is available
	registry *registry.Registry
	required domain.ChainID
	log      zerolog.Logger

	mu         sync.Mutex
	session    domain.WalletSession
	connecting bool
	switching  bool

	subs *broadcaster[domain.WalletSession]
}

// NewSessionManager creates the session manager. provider may be nil.
// The required network is the registry's source chain.
func NewSessionManager(provider ports.WalletProvider, reg *registry.Registry, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		provider: provider,
		registry: reg,
		required: reg.Source().ID,
		log:      log.With().Str("component", "session").Logger(),
		session:  domain.DisconnectedSession(),
		subs:     newBroadcaster[domain.WalletSession](),
	}
}

// Connect asks the wallet for account access and moves it to the donation network.
func (s *SessionManager) Connect(ctx context.Context) (domain.WalletSession, error) {
	if s.provider == nil {
		return s.Snapshot(), apperror.ErrNoProviderFound()
	}

	s.mu.Lock()
	if s.connecting {
		s.mu.Unlock()
		return s.Snapshot(), apperror.ErrConnectInFlight()
	}
	s.connecting = true
	prev := s.session.Clone()
	// A connected session stays connected while the wallet is re-prompted.
	if prev.State != domain.ConnectionConnected {
		s.session = domain.WalletSession{NetworkID: prev.NetworkID, State: domain.ConnectionConnecting}
		s.publishLocked()
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.connecting = false
		s.mu.Unlock()
	}()

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		s.restore(prev)
		s.log.Warn().Err(err).Msg("account request failed")
		return s.Snapshot(), walletError(err)
	}
	if len(accounts) == 0 {
		s.restore(prev)
		return s.Snapshot(), apperror.ErrUserRejected(errors.New("wallet returned no accounts"))
	}

	s.setConnected(accounts[0])
	s.log.Info().Str("address", accounts[0].Hex()).Msg("wallet connected")

	network, err := s.provider.CurrentNetwork(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read wallet network")
	} else {
		s.setNetwork(network)
	}

	if network != s.required {
		s.log.Info().
			Stringer("current", network).
			Stringer("required", s.required).
			Msg("wallet on wrong network, requesting switch")
		if err := s.SwitchNetwork(ctx, s.required); err != nil {
			return s.Snapshot(), apperror.ErrNetworkMismatch(err)
		}
	}

	return s.Snapshot(), nil
}

// Restore adopts already-authorized accounts without prompting the user.
func (s *SessionManager) Restore(ctx context.Context) (domain.WalletSession, error) {
	if s.provider == nil {
		return s.Snapshot(), apperror.ErrNoProviderFound()
	}

	s.mu.Lock()
	if s.connecting {
		s.mu.Unlock()
		return s.Snapshot(), apperror.ErrConnectInFlight()
	}
	s.connecting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.connecting = false
		s.mu.Unlock()
	}()

	accounts, err := s.provider.Accounts(ctx)
	if err != nil {
		return s.Snapshot(), walletError(err)
	}
	if len(accounts) == 0 {
		return s.Snapshot(), nil
	}

	s.setConnected(accounts[0])
	if network, err := s.provider.CurrentNetwork(ctx); err != nil {
		s.log.Warn().Err(err).Msg("could not read wallet network")
	} else {
		s.setNetwork(network)
	}

	s.log.Info().Str("address", accounts[0].Hex()).Msg("wallet session restored")
	return s.Snapshot(), nil
}

// SwitchNetwork asks the wallet to change network. A wallet that does not
// know the network gets it registered from the registry, then one more switch.
func (s *SessionManager) SwitchNetwork(ctx context.Context, id domain.ChainID) error {
	if s.provider == nil {
		return apperror.ErrNoProviderFound()
	}

	s.mu.Lock()
	if s.switching {
		s.mu.Unlock()
		return apperror.ErrSwitchInFlight()
	}
	s.switching = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.switching = false
		s.mu.Unlock()
	}()

	err := s.provider.SwitchNetwork(ctx, id)
	if errors.Is(err, ports.ErrUnknownNetwork) {
		desc, ok := s.registry.Descriptor(id)
		if !ok {
			return apperror.ErrUnknownNetwork(fmt.Errorf("chain %s is not registered", id))
		}
		s.log.Info().Stringer("chain_id", id).Msg("wallet does not know network, adding it")
		if addErr := s.provider.AddNetwork(ctx, desc); addErr != nil {
			if errors.Is(addErr, ports.ErrUserRejected) {
				return apperror.ErrUserRejected(addErr)
			}
			return apperror.ErrUnknownNetwork(addErr)
		}
		err = s.provider.SwitchNetwork(ctx, id)
	}
	if err != nil {
		s.log.Warn().Err(err).Stringer("chain_id", id).Msg("network switch failed")
		return walletError(err)
	}

	s.setNetwork(id)
	s.log.Info().Stringer("chain_id", id).Msg("wallet network switched")
	return nil
}

// Disconnect forgets the session locally. The wallet itself is not told.
func (s *SessionManager) Disconnect() domain.WalletSession {
	s.reset()
	s.log.Info().Msg("wallet disconnected")
	return s.Snapshot()
}

// Snapshot returns a copy of the current session.
func (s *SessionManager) Snapshot() domain.WalletSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Subscribe streams session snapshots, starting with the current one.
func (s *SessionManager) Subscribe() (<-chan domain.WalletSession, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs.subscribe(s.session.Clone())
}

// Watch applies the wallet's account and network notifications one at a
// time until ctx ends or both streams close. A network change only records
// the new id; it never triggers a switch back.
func (s *SessionManager) Watch(ctx context.Context) {
	if s.provider == nil {
		return
	}
	accounts, networks := s.provider.Subscribe()

	for accounts != nil || networks != nil {
		select {
		case <-ctx.Done():
			return
		case accs, ok := <-accounts:
			if !ok {
				accounts = nil
				continue
			}
			s.applyAccounts(accs)
		case id, ok := <-networks:
			if !ok {
				networks = nil
				continue
			}
			s.log.Info().Stringer("chain_id", id).Msg("wallet network changed")
			s.setNetwork(id)
		}
	}
}

func (s *SessionManager) applyAccounts(accs []common.Address) {
	if len(accs) == 0 {
		s.log.Info().Msg("wallet revoked all accounts")
		s.reset()
		return
	}

	addr := accs[0]
	s.setConnected(addr)
	s.log.Info().Str("address", addr.Hex()).Msg("wallet account changed")
}

func (s *SessionManager) setConnected(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Address = &addr
	s.session.State = domain.ConnectionConnected
	s.publishLocked()
}

func (s *SessionManager) setNetwork(id domain.ChainID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.NetworkID = id
	s.publishLocked()
}

// restore puts back a session captured before a failed connect. A session
// that was already connected is kept rather than torn down.
func (s *SessionManager) restore(prev domain.WalletSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev.State != domain.ConnectionConnected {
		prev = domain.DisconnectedSession()
	}
	s.session = prev
	s.publishLocked()
}

func (s *SessionManager) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.DisconnectedSession()
	s.publishLocked()
}

func (s *SessionManager) publishLocked() {
	s.subs.publish(s.session.Clone())
}
