package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

const defaultPollInterval = 2 * time.Second

// KeyedProvider implements ports.WalletProvider with a local private key. It
// behaves like an injected wallet: it only knows the networks it was created
// with or was asked to add, and switching to any other one fails with
// ports.ErrUnknownNetwork.
type KeyedProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address
	dial    Dialer
	poll    time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	known   map[domain.ChainID]string // rpc url
	clients map[domain.ChainID]Backend
	sentOn  map[common.Hash]domain.ChainID
	active  domain.ChainID

	accounts chan []common.Address
	networks chan domain.ChainID
}

// NewKeyedProvider creates a provider that knows networks and starts on the
// first one. privateKeyHex may carry a 0x prefix.
func NewKeyedProvider(privateKeyHex string, networks []domain.NetworkDescriptor, dial Dialer, poll time.Duration, log zerolog.Logger) (*KeyedProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	if len(networks) == 0 {
		return nil, errors.New("keyed provider needs at least one network")
	}
	if dial == nil {
		dial = Dial
	}
	if poll <= 0 {
		poll = defaultPollInterval
	}

	p := &KeyedProvider{
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		dial:     dial,
		poll:     poll,
		log:      log.With().Str("component", "keyed_wallet").Logger(),
		known:    make(map[domain.ChainID]string),
		clients:  make(map[domain.ChainID]Backend),
		sentOn:   make(map[common.Hash]domain.ChainID),
		active:   networks[0].ChainID,
		accounts: make(chan []common.Address, 1),
		networks: make(chan domain.ChainID, 1),
	}
	for _, n := range networks {
		if err := p.register(n); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Address is the signing account.
func (p *KeyedProvider) Address() common.Address { return p.address }

// RequestAccounts returns the signing account. A local key never prompts.
func (p *KeyedProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

// Accounts returns the signing account; a local key is always authorized.
func (p *KeyedProvider) Accounts(context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *KeyedProvider) CurrentNetwork(context.Context) (domain.ChainID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, nil
}

// SwitchNetwork activates a known network after checking that its endpoint
// serves the expected chain id.
func (p *KeyedProvider) SwitchNetwork(ctx context.Context, id domain.ChainID) error {
	backend, err := p.client(ctx, id)
	if err != nil {
		return err
	}
	got, err := backend.ChainID(ctx)
	if err != nil {
		return classify(err)
	}
	if !got.IsUint64() || domain.ChainID(got.Uint64()) != id {
		return fmt.Errorf("endpoint for chain %s reports chain id %s", id, got)
	}

	p.mu.Lock()
	changed := p.active != id
	p.active = id
	p.mu.Unlock()

	if changed {
		p.notifyNetwork(id)
	}
	return nil
}

// AddNetwork registers desc so a later switch can reach it.
func (p *KeyedProvider) AddNetwork(_ context.Context, desc domain.NetworkDescriptor) error {
	if err := p.register(desc); err != nil {
		return err
	}
	p.log.Info().Stringer("chain_id", desc.ChainID).Str("name", desc.Name).Msg("network added")
	return nil
}

// Call runs eth_call on the active network.
func (p *KeyedProvider) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	backend, _, err := p.activeClient(ctx)
	if err != nil {
		return nil, err
	}
	out, err := backend.CallContract(ctx, ethereum.CallMsg{From: p.address, To: &to, Data: data}, nil)
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// SendTransaction signs an EIP-1559 transaction on the active network and
// broadcasts it. Gas is estimated, so reverting calls fail here.
func (p *KeyedProvider) SendTransaction(ctx context.Context, req ports.TxRequest) (common.Hash, error) {
	backend, chainID, err := p.activeClient(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To
	msg := ethereum.CallMsg{From: p.address, To: &to, Data: req.Data, Value: value}

	gas, err := backend.EstimateGas(ctx, msg)
	if err != nil {
		return common.Hash{}, classify(err)
	}
	nonce, err := backend.PendingNonceAt(ctx, p.address)
	if err != nil {
		return common.Hash{}, classify(err)
	}
	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, classify(err)
	}
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, classify(err)
	}
	feeCap := new(big.Int).Set(tip)
	if head != nil && head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	chain := new(big.Int).SetUint64(uint64(chainID))
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chain,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})
	signed, err := types.SignTx(tx, types.NewLondonSigner(chain), p.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}
	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, classify(err)
	}

	hash := signed.Hash()
	p.mu.Lock()
	p.sentOn[hash] = chainID
	p.mu.Unlock()

	p.log.Debug().Str("tx", hash.Hex()).Stringer("chain_id", chainID).Uint64("nonce", nonce).Msg("transaction sent")
	return hash, nil
}

// WaitReceipt polls for the receipt on the network the transaction was sent
// on until it is mined or ctx ends. Transient RPC errors keep polling.
func (p *KeyedProvider) WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	p.mu.Lock()
	chainID, ok := p.sentOn[hash]
	if !ok {
		chainID = p.active
	}
	p.mu.Unlock()

	backend, err := p.client(ctx, chainID)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			p.mu.Lock()
			delete(p.sentOn, hash)
			p.mu.Unlock()
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.Warn().Err(err).Str("tx", hash.Hex()).Msg("receipt poll failed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Subscribe returns the account and network change streams. There is one
// consumer; a slow consumer sees only the latest value.
func (p *KeyedProvider) Subscribe() (<-chan []common.Address, <-chan domain.ChainID) {
	return p.accounts, p.networks
}

// Close releases dialed clients.
func (p *KeyedProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, c := range p.clients {
		closeBackend(c)
		delete(p.clients, id)
	}
}

func (p *KeyedProvider) register(desc domain.NetworkDescriptor) error {
	if !desc.ChainID.IsKnown() {
		return errors.New("network chain id is required")
	}
	if len(desc.RPCURLs) == 0 || strings.TrimSpace(desc.RPCURLs[0]) == "" {
		return fmt.Errorf("network %s has no rpc url", desc.ChainID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if old, ok := p.known[desc.ChainID]; ok && old != desc.RPCURLs[0] {
		if c, dialed := p.clients[desc.ChainID]; dialed {
			closeBackend(c)
			delete(p.clients, desc.ChainID)
		}
	}
	p.known[desc.ChainID] = desc.RPCURLs[0]
	return nil
}

func (p *KeyedProvider) activeClient(ctx context.Context) (Backend, domain.ChainID, error) {
	p.mu.Lock()
	id := p.active
	p.mu.Unlock()
	b, err := p.client(ctx, id)
	return b, id, err
}

// client returns the dialed backend for id, dialing on first use.
func (p *KeyedProvider) client(ctx context.Context, id domain.ChainID) (Backend, error) {
	p.mu.Lock()
	if c, ok := p.clients[id]; ok {
		p.mu.Unlock()
		return c, nil
	}
	url, ok := p.known[id]
	p.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: chain %s (code %d)", ports.ErrUnknownNetwork, id, codeUnknownNetwork)
	}

	c, err := p.dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrRPCUnavailable, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.clients[id]; ok {
		closeBackend(c)
		return existing, nil
	}
	p.clients[id] = c
	return c, nil
}

func (p *KeyedProvider) notifyNetwork(id domain.ChainID) {
	select {
	case p.networks <- id:
	default:
		select {
		case <-p.networks:
		default:
		}
		select {
		case p.networks <- id:
		default:
		}
	}
}
