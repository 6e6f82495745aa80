package integration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"crosschain-donation/internal/contracts"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// --- In-Memory Chain ---
//
// inMemoryChain plays both sides of the client: the user's wallet on the
// source chain and the donation vault on the target chain. A confirmed
// donate call is credited to the vault immediately, as if the bridge message
// had already been delivered.

type vaultEvent struct {
	Title         string
	Description   string
	TargetAmount  *big.Int
	CurrentAmount *big.Int
	Deadline      *big.Int
	Beneficiary   common.Address
	IsActive      bool
}

type vaultDonation struct {
	Donor           common.Address
	Amount          *big.Int
	Timestamp       *big.Int
	FlowersReceived *big.Int
}

type inMemoryChain struct {
	account  common.Address
	decimals uint8
	ratio    *big.Int

	mu        sync.Mutex
	network   domain.ChainID
	known     map[domain.ChainID]bool
	added     []domain.ChainID
	events    map[uint64]*vaultEvent
	donations map[uint64][]vaultDonation
	balances  map[common.Address]*big.Int
	receipts  map[common.Hash]*types.Receipt
	approved  *big.Int
	nonce     int64

	down       atomic.Bool
	rejectNext atomic.Bool
	reads      atomic.Int64
	sent       atomic.Int64

	// gate, when set, holds every receipt until it is closed.
	gate chan struct{}

	accounts chan []common.Address
	networks chan domain.ChainID
}

func newInMemoryChain(account common.Address, start domain.ChainID, decimals uint8, ratio int64, events []domain.BaselineEvent) *inMemoryChain {
	c := &inMemoryChain{
		account:   account,
		decimals:  decimals,
		ratio:     big.NewInt(ratio),
		network:   start,
		known:     map[domain.ChainID]bool{start: true},
		events:    make(map[uint64]*vaultEvent),
		donations: make(map[uint64][]vaultDonation),
		balances:  make(map[common.Address]*big.Int),
		receipts:  make(map[common.Hash]*types.Receipt),
		accounts:  make(chan []common.Address, 1),
		networks:  make(chan domain.ChainID, 1),
	}
	for _, ev := range events {
		c.events[ev.ID] = &vaultEvent{
			Title:         ev.Title,
			Description:   ev.Description,
			TargetAmount:  new(big.Int).Set(ev.TargetAmount),
			CurrentAmount: new(big.Int).Set(ev.CurrentAmount),
			Deadline:      big.NewInt(ev.Deadline.Unix()),
			Beneficiary:   ev.Beneficiary,
			IsActive:      ev.IsActive,
		}
	}
	return c
}

// ---- ports.WalletProvider ----

func (c *inMemoryChain) RequestAccounts(context.Context) ([]common.Address, error) {
	return []common.Address{c.account}, nil
}

func (c *inMemoryChain) Accounts(context.Context) ([]common.Address, error) {
	return []common.Address{c.account}, nil
}

func (c *inMemoryChain) CurrentNetwork(context.Context) (domain.ChainID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.network, nil
}

func (c *inMemoryChain) SwitchNetwork(_ context.Context, id domain.ChainID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.known[id] {
		return fmt.Errorf("%w: %s", ports.ErrUnknownNetwork, id)
	}
	c.network = id
	return nil
}

func (c *inMemoryChain) AddNetwork(_ context.Context, desc domain.NetworkDescriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known[desc.ChainID] = true
	c.added = append(c.added, desc.ChainID)
	return nil
}

func (c *inMemoryChain) Call(_ context.Context, to common.Address, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errors.New("short calldata")
	}
	m, err := contracts.TokenABI().MethodById(data[:4])
	if err != nil || m.Name != "decimals" {
		return nil, fmt.Errorf("%w: unsupported token call", ports.ErrExecutionReverted)
	}
	return m.Outputs.Pack(c.decimals)
}

func (c *inMemoryChain) SendTransaction(_ context.Context, req ports.TxRequest) (common.Hash, error) {
	if c.rejectNext.CompareAndSwap(true, false) {
		return common.Hash{}, ports.ErrUserRejected
	}
	if len(req.Data) < 4 {
		return common.Hash{}, errors.New("short calldata")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, err := contracts.TokenABI().MethodById(req.Data[:4]); err == nil && m.Name == "approve" {
		args, err := m.Inputs.Unpack(req.Data[4:])
		if err != nil {
			return common.Hash{}, err
		}
		c.approved = args[1].(*big.Int)
		return c.mineLocked(), nil
	}

	m, err := contracts.BridgeABI().MethodById(req.Data[:4])
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: unknown selector", ports.ErrExecutionReverted)
	}
	args, err := m.Inputs.Unpack(req.Data[4:])
	if err != nil {
		return common.Hash{}, err
	}
	amount := args[1].(*big.Int)
	eventID := uint64(1)
	if len(args) == 3 {
		eventID = args[2].(*big.Int).Uint64()
	}
	if c.approved == nil || c.approved.Cmp(amount) < 0 {
		return common.Hash{}, &ports.RevertError{Reason: "ERC20: insufficient allowance", Err: ports.ErrExecutionReverted}
	}
	c.approved = nil

	flowers := new(big.Int).Mul(amount, c.ratio)
	if ev, ok := c.events[eventID]; ok {
		ev.CurrentAmount = new(big.Int).Add(ev.CurrentAmount, amount)
	}
	c.donations[eventID] = append(c.donations[eventID], vaultDonation{
		Donor:           c.account,
		Amount:          new(big.Int).Set(amount),
		Timestamp:       big.NewInt(time.Now().Unix()),
		FlowersReceived: flowers,
	})
	bal, ok := c.balances[c.account]
	if !ok {
		bal = new(big.Int)
	}
	c.balances[c.account] = new(big.Int).Add(bal, flowers)
	return c.mineLocked(), nil
}

func (c *inMemoryChain) mineLocked() common.Hash {
	c.nonce++
	hash := crypto.Keccak256Hash([]byte(fmt.Sprintf("tx-%d", c.nonce)))
	c.receipts[hash] = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: big.NewInt(c.nonce),
	}
	c.sent.Add(1)
	return hash
}

func (c *inMemoryChain) WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[hash]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transaction %s", ports.ErrRPCUnavailable, hash.Hex())
	}
	return r, nil
}

func (c *inMemoryChain) Subscribe() (<-chan []common.Address, <-chan domain.ChainID) {
	return c.accounts, c.networks
}

// emitAccounts simulates the wallet's accountsChanged notification.
func (c *inMemoryChain) emitAccounts(accs []common.Address) {
	c.accounts <- accs
}

// ---- ports.ContractCaller (target vault) ----

func (c *inMemoryChain) CallContract(_ context.Context, _ common.Address, data []byte) ([]byte, error) {
	c.reads.Add(1)
	if c.down.Load() {
		return nil, fmt.Errorf("%w: dial tcp: connection refused", ports.ErrRPCUnavailable)
	}
	if len(data) < 4 {
		return nil, errors.New("short calldata")
	}
	m, err := contracts.VaultABI().MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown selector", ports.ErrExecutionReverted)
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch m.Name {
	case "getEvent":
		ev, ok := c.events[args[0].(*big.Int).Uint64()]
		if !ok {
			ev = &vaultEvent{TargetAmount: new(big.Int), CurrentAmount: new(big.Int), Deadline: new(big.Int)}
		}
		return m.Outputs.Pack(*ev)
	case "getEventDonations":
		list := append([]vaultDonation{}, c.donations[args[0].(*big.Int).Uint64()]...)
		return m.Outputs.Pack(list)
	case "balanceOf":
		bal, ok := c.balances[args[0].(common.Address)]
		if !ok {
			bal = new(big.Int)
		}
		return m.Outputs.Pack(bal)
	case "FLOWER_RATIO":
		return m.Outputs.Pack(c.ratio)
	default:
		return nil, fmt.Errorf("%w: %s not supported", ports.ErrExecutionReverted, m.Name)
	}
}

// ---- ports.HealthChecker ----

func (c *inMemoryChain) Ping(context.Context) error {
	if c.down.Load() {
		return ports.ErrRPCUnavailable
	}
	return nil
}

func (c *inMemoryChain) Name() string { return "arbitrum-sepolia" }

func (c *inMemoryChain) addedNetworks() []domain.ChainID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ChainID(nil), c.added...)
}

func (c *inMemoryChain) donationCount(eventID uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.donations[eventID])
}
