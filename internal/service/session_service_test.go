package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/core/ports/mocks"
	"crosschain-donation/internal/registry"
	"crosschain-donation/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	sourceChain = domain.ChainID(11155111)
	targetChain = domain.ChainID(421614)
)

var (
	donorAddr   = common.HexToAddress("0x00000000000000000000000000000000000000d0")
	otherAddr   = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	bridgeAddr  = common.HexToAddress("0x5fB3B402CeB562AEd0BBC93a2dAE7ec87F9587A3")
	tokenAddr   = common.HexToAddress("0xEabab8DA6dcfFC511579Cd1e43357B9A68842BD8")
	vaultAddr   = common.HexToAddress("0x1c6D6663B2667fE282680a8c36E05FA73ADB85f7")
	errProvider = errors.New("provider exploded")
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		registry.Chain{
			ID:          sourceChain,
			Name:        "Ethereum Sepolia",
			RPCURL:      "https://sepolia.example",
			ExplorerURL: "https://sepolia.etherscan.io",
			NativeCurrency: domain.Currency{
				Name: "Sepolia ETH", Symbol: "ETH", Decimals: 18,
			},
			Contracts: registry.Contracts{TokenBridge: bridgeAddr, PaymentToken: tokenAddr},
		},
		registry.Chain{
			ID:          targetChain,
			Name:        "Arbitrum Sepolia",
			RPCURL:      "https://arbitrum-sepolia.example",
			ExplorerURL: "https://sepolia.arbiscan.io",
			Contracts:   registry.Contracts{DonationVault: vaultAddr},
		},
		100,
	)
	require.NoError(t, err)
	return reg
}

func setupSession(t *testing.T) (*SessionManager, *mocks.MockWalletProvider) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockWalletProvider(ctrl)
	return NewSessionManager(provider, testRegistry(t), zerolog.Nop()), provider
}

// ==================== Connect Tests ====================

func TestSessionManager_Connect_OnRequiredNetwork(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().RequestAccounts(ctx).Return([]common.Address{donorAddr, otherAddr}, nil)
	provider.EXPECT().CurrentNetwork(ctx).Return(sourceChain, nil)

	session, err := svc.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionConnected, session.State)
	assert.Equal(t, donorAddr, *session.Address)
	assert.Equal(t, sourceChain, session.NetworkID)
	assert.True(t, session.OnNetwork(sourceChain))
}

func TestSessionManager_Connect_WrongNetworkSwitchesOnce(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().RequestAccounts(ctx).Return([]common.Address{donorAddr}, nil)
	provider.EXPECT().CurrentNetwork(ctx).Return(domain.ChainID(1), nil)
	provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(nil).Times(1)

	session, err := svc.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, sourceChain, session.NetworkID)
}

func TestSessionManager_Connect_SwitchRejected(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().RequestAccounts(ctx).Return([]common.Address{donorAddr}, nil)
	provider.EXPECT().CurrentNetwork(ctx).Return(domain.ChainID(1), nil)
	provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(ports.ErrUserRejected).Times(1)

	session, err := svc.Connect(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNetworkMismatch(nil))
	assert.ErrorIs(t, err, ports.ErrUserRejected)
	// Still connected, just on the wrong network.
	assert.Equal(t, domain.ConnectionConnected, session.State)
	assert.Equal(t, domain.ChainID(1), session.NetworkID)
}

func TestSessionManager_Connect_UnknownNetworkAddsThenSwitches(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	gomock.InOrder(
		provider.EXPECT().RequestAccounts(ctx).Return([]common.Address{donorAddr}, nil),
		provider.EXPECT().CurrentNetwork(ctx).Return(domain.ChainID(1), nil),
		provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(ports.ErrUnknownNetwork),
		provider.EXPECT().AddNetwork(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, desc domain.NetworkDescriptor) error {
				assert.Equal(t, sourceChain, desc.ChainID)
				assert.Equal(t, "Ethereum Sepolia", desc.Name)
				assert.Equal(t, []string{"https://sepolia.example"}, desc.RPCURLs)
				assert.Equal(t, uint8(18), desc.NativeCurrency.Decimals)
				return nil
			}),
		provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(nil),
	)

	session, err := svc.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, sourceChain, session.NetworkID)
}

func TestSessionManager_Connect_Rejected(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().RequestAccounts(ctx).Return(nil, ports.ErrUserRejected)

	session, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, apperror.ErrUserRejected(nil))
	assert.Equal(t, domain.ConnectionDisconnected, session.State)
	assert.Nil(t, session.Address)
}

func TestSessionManager_Connect_NoAccounts(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().RequestAccounts(ctx).Return([]common.Address{}, nil)

	session, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, apperror.ErrUserRejected(nil))
	assert.Equal(t, domain.ConnectionDisconnected, session.State)
}

func TestSessionManager_Connect_NoProvider(t *testing.T) {
	svc := NewSessionManager(nil, testRegistry(t), zerolog.Nop())

	session, err := svc.Connect(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNoProviderFound())
	assert.Equal(t, domain.ConnectionDisconnected, session.State)
}

func TestSessionManager_Connect_InFlight(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	release := make(chan struct{})
	entered := make(chan struct{})
	provider.EXPECT().RequestAccounts(ctx).DoAndReturn(func(context.Context) ([]common.Address, error) {
		close(entered)
		<-release
		return []common.Address{donorAddr}, nil
	}).Times(1)
	provider.EXPECT().CurrentNetwork(ctx).Return(sourceChain, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Connect(ctx)
		assert.NoError(t, err)
	}()

	<-entered
	assert.Equal(t, domain.ConnectionConnecting, svc.Snapshot().State)

	_, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, apperror.ErrConnectInFlight())

	close(release)
	wg.Wait()
	assert.Equal(t, domain.ConnectionConnected, svc.Snapshot().State)
}

func TestSessionManager_Connect_WhileConnectedKeepsSession(t *testing.T) {
	svc, provider := setupSession(t)
	connected(t, svc, provider)

	updates, cancel := svc.Subscribe()
	defer cancel()
	<-updates

	entered := make(chan struct{})
	release := make(chan struct{})
	provider.EXPECT().RequestAccounts(gomock.Any()).DoAndReturn(func(context.Context) ([]common.Address, error) {
		close(entered)
		<-release
		return []common.Address{otherAddr}, nil
	})
	provider.EXPECT().CurrentNetwork(gomock.Any()).Return(sourceChain, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Connect(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	mid := svc.Snapshot()
	assert.Equal(t, domain.ConnectionConnected, mid.State)
	require.NotNil(t, mid.Address)
	assert.Equal(t, donorAddr, *mid.Address)
	select {
	case s := <-updates:
		t.Fatalf("unexpected snapshot while re-prompting: %+v", s)
	default:
	}

	close(release)
	wg.Wait()
	assert.Equal(t, otherAddr, *svc.Snapshot().Address)
}

func TestSessionManager_Connect_RejectedWhileConnectedKeepsSession(t *testing.T) {
	svc, provider := setupSession(t)
	connected(t, svc, provider)

	provider.EXPECT().RequestAccounts(gomock.Any()).Return(nil, ports.ErrUserRejected)

	session, err := svc.Connect(context.Background())
	assert.ErrorIs(t, err, apperror.ErrUserRejected(nil))
	assert.Equal(t, domain.ConnectionConnected, session.State)
	require.NotNil(t, session.Address)
	assert.Equal(t, donorAddr, *session.Address)
	assert.Equal(t, sourceChain, session.NetworkID)
}

func TestSessionManager_Snapshots_AddressOnlyWhenConnected(t *testing.T) {
	svc, provider := setupSession(t)

	updates, cancel := svc.Subscribe()
	defer cancel()

	var (
		mu   sync.Mutex
		seen []domain.WalletSession
	)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for s := range updates {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		}
	}()

	connected(t, svc, provider)
	provider.EXPECT().RequestAccounts(gomock.Any()).Return(nil, errProvider)
	_, _ = svc.Connect(context.Background())
	svc.Disconnect()

	cancel()
	<-collected

	mu.Lock()
	defer mu.Unlock()
	for _, s := range seen {
		assert.Equal(t, s.State == domain.ConnectionConnected, s.Address != nil, "snapshot %+v", s)
	}
}

// ==================== Restore Tests ====================

func TestSessionManager_Restore(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().Accounts(ctx).Return([]common.Address{donorAddr}, nil)
	provider.EXPECT().CurrentNetwork(ctx).Return(domain.ChainID(1), nil)

	session, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionConnected, session.State)
	assert.Equal(t, domain.ChainID(1), session.NetworkID)
}

func TestSessionManager_Restore_NothingAuthorized(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().Accounts(ctx).Return(nil, nil)

	session, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionDisconnected, session.State)
}

// ==================== SwitchNetwork Tests ====================

func TestSessionManager_SwitchNetwork_UnregisteredChain(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().SwitchNetwork(ctx, domain.ChainID(5)).Return(ports.ErrUnknownNetwork)

	err := svc.SwitchNetwork(ctx, domain.ChainID(5))
	assert.ErrorIs(t, err, apperror.ErrUnknownNetwork(nil))
}

func TestSessionManager_SwitchNetwork_AddFails(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(ports.ErrUnknownNetwork).Times(1)
	provider.EXPECT().AddNetwork(ctx, gomock.Any()).Return(errProvider)

	err := svc.SwitchNetwork(ctx, sourceChain)
	assert.ErrorIs(t, err, apperror.ErrUnknownNetwork(nil))
}

func TestSessionManager_SwitchNetwork_ProviderFailure(t *testing.T) {
	svc, provider := setupSession(t)
	ctx := context.Background()

	provider.EXPECT().SwitchNetwork(ctx, sourceChain).Return(errProvider)

	err := svc.SwitchNetwork(ctx, sourceChain)
	assert.ErrorIs(t, err, apperror.ErrProviderFailure(nil))
	assert.ErrorIs(t, err, errProvider)
}

// ==================== Disconnect / Watch Tests ====================

func connected(t *testing.T, svc *SessionManager, provider *mocks.MockWalletProvider) {
	t.Helper()
	provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{donorAddr}, nil)
	provider.EXPECT().CurrentNetwork(gomock.Any()).Return(sourceChain, nil)
	_, err := svc.Connect(context.Background())
	require.NoError(t, err)
}

func TestSessionManager_Disconnect(t *testing.T) {
	svc, provider := setupSession(t)
	connected(t, svc, provider)

	session := svc.Disconnect()
	assert.Equal(t, domain.DisconnectedSession(), session)
	assert.False(t, session.IsConnected())
}

func TestSessionManager_Watch(t *testing.T) {
	svc, provider := setupSession(t)
	connected(t, svc, provider)

	accounts := make(chan []common.Address)
	networks := make(chan domain.ChainID)
	provider.EXPECT().Subscribe().Return(accounts, networks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Watch(ctx)
		close(done)
	}()

	accounts <- []common.Address{otherAddr}
	networks <- domain.ChainID(1)
	// The next send only completes once the previous one was applied.
	networks <- domain.ChainID(2)

	require.Eventually(t, func() bool {
		return svc.Snapshot().NetworkID == domain.ChainID(2)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, otherAddr, *svc.Snapshot().Address)
	assert.Equal(t, domain.ConnectionConnected, svc.Snapshot().State)

	accounts <- nil
	require.Eventually(t, func() bool {
		return svc.Snapshot().State == domain.ConnectionDisconnected
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestSessionManager_Watch_AccountsWhileDisconnectedConnects(t *testing.T) {
	svc, provider := setupSession(t)

	accounts := make(chan []common.Address, 1)
	networks := make(chan domain.ChainID)
	provider.EXPECT().Subscribe().Return(accounts, networks)

	accounts <- []common.Address{otherAddr}
	close(accounts)
	close(networks)

	svc.Watch(context.Background())
	session := svc.Snapshot()
	require.NotNil(t, session.Address)
	assert.Equal(t, otherAddr, *session.Address)
	assert.Equal(t, domain.ConnectionConnected, session.State)
	assert.True(t, session.IsConnected())
}

func TestSessionManager_Subscribe(t *testing.T) {
	svc, provider := setupSession(t)

	updates, cancel := svc.Subscribe()
	defer cancel()

	first := <-updates
	assert.Equal(t, domain.ConnectionDisconnected, first.State)

	connected(t, svc, provider)

	latest := <-updates
	assert.Equal(t, domain.ConnectionConnected, latest.State)
	assert.Equal(t, sourceChain, latest.NetworkID)
}
