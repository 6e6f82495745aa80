// Package registry is the static table of networks the client knows about:
// where to reach them, which contracts live there and how to link to them.
package registry

import (
	"fmt"
	"math/big"
	"strings"

	"crosschain-donation/config"
	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// Contracts are the addresses the client calls on a chain. Unused ones are zero.
type Contracts struct {
	TokenBridge   common.Address `json:"token_bridge"`
	PaymentToken  common.Address `json:"payment_token"`
	DonationVault common.Address `json:"donation_vault"`
}

// Chain is one registered network.
type Chain struct {
	ID             domain.ChainID  `json:"chain_id"`
	Name           string          `json:"name"`
	RPCURL         string          `json:"rpc_url"`
	ExplorerURL    string          `json:"explorer_url"`
	NativeCurrency domain.Currency `json:"native_currency"`
	Contracts      Contracts       `json:"contracts"`
}

// Descriptor returns what a wallet needs to add this chain.
func (c Chain) Descriptor() domain.NetworkDescriptor {
	var explorers []string
	if c.ExplorerURL != "" {
		explorers = []string{c.ExplorerURL}
	}
	return domain.NetworkDescriptor{
		ChainID:        c.ID,
		Name:           c.Name,
		RPCURLs:        []string{c.RPCURL},
		NativeCurrency: c.NativeCurrency,
		ExplorerURLs:   explorers,
	}
}

// TxURL links a transaction hash on this chain's explorer.
func (c Chain) TxURL(hash common.Hash) string {
	if c.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(c.ExplorerURL, "/") + "/tx/" + hash.Hex()
}

// AddressURL links an account on this chain's explorer.
func (c Chain) AddressURL(addr common.Address) string {
	if c.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(c.ExplorerURL, "/") + "/address/" + addr.Hex()
}

// Registry maps chain ids to chains. It is immutable after construction.
type Registry struct {
	chains      map[domain.ChainID]Chain
	source      domain.ChainID
	target      domain.ChainID
	flowerRatio int64
}

// New builds a registry of a donation source chain and a tally target chain.
func New(source, target Chain, flowerRatio int64) (*Registry, error) {
	if !source.ID.IsKnown() || !target.ID.IsKnown() {
		return nil, fmt.Errorf("registry: chain ids are required")
	}
	if source.ID == target.ID {
		return nil, fmt.Errorf("registry: source and target are both chain %s", source.ID)
	}
	if source.Contracts.TokenBridge == (common.Address{}) || source.Contracts.PaymentToken == (common.Address{}) {
		return nil, fmt.Errorf("registry: source chain %s needs token_bridge and payment_token", source.ID)
	}
	if target.Contracts.DonationVault == (common.Address{}) {
		return nil, fmt.Errorf("registry: target chain %s needs donation_vault", target.ID)
	}
	if target.RPCURL == "" {
		return nil, fmt.Errorf("registry: target chain %s needs rpc_url", target.ID)
	}
	if flowerRatio <= 0 {
		flowerRatio = DefaultFlowerRatio
	}
	return &Registry{
		chains:      map[domain.ChainID]Chain{source.ID: source, target.ID: target},
		source:      source.ID,
		target:      target.ID,
		flowerRatio: flowerRatio,
	}, nil
}

// DefaultFlowerRatio is the reward tokens minted per whole payment token
// when the vault cannot be asked.
const DefaultFlowerRatio = 100

// FromConfig builds the registry from the chains section.
func FromConfig(cfg config.ChainsConfig) (*Registry, error) {
	source, err := chainFromConfig(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("chains.source: %w", err)
	}
	target, err := chainFromConfig(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("chains.target: %w", err)
	}
	return New(source, target, cfg.FlowerRatio)
}

func chainFromConfig(c config.ChainConfig) (Chain, error) {
	contracts := Contracts{}
	for _, f := range []struct {
		name string
		raw  string
		dst  *common.Address
	}{
		{"token_bridge", c.TokenBridge, &contracts.TokenBridge},
		{"payment_token", c.PaymentToken, &contracts.PaymentToken},
		{"donation_vault", c.DonationVault, &contracts.DonationVault},
	} {
		if f.raw == "" {
			continue
		}
		if !common.IsHexAddress(f.raw) {
			return Chain{}, fmt.Errorf("%s %q is not an address", f.name, f.raw)
		}
		*f.dst = common.HexToAddress(f.raw)
	}
	return Chain{
		ID:          domain.ChainID(c.ID),
		Name:        c.Name,
		RPCURL:      c.RPCURL,
		ExplorerURL: c.ExplorerURL,
		NativeCurrency: domain.Currency{
			Name:     c.CurrencyName,
			Symbol:   c.CurrencySymbol,
			Decimals: c.CurrencyDecimals,
		},
		Contracts: contracts,
	}, nil
}

// Lookup returns the chain registered under id.
func (r *Registry) Lookup(id domain.ChainID) (Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

// Source is the chain donations are sent on.
func (r *Registry) Source() Chain { return r.chains[r.source] }

// Target is the chain donations are tallied on.
func (r *Registry) Target() Chain { return r.chains[r.target] }

// Descriptor returns the add-network descriptor for id.
func (r *Registry) Descriptor(id domain.ChainID) (domain.NetworkDescriptor, bool) {
	c, ok := r.chains[id]
	if !ok {
		return domain.NetworkDescriptor{}, false
	}
	return c.Descriptor(), true
}

// TxURL links hash on the explorer of chain id, or "" when unknown.
func (r *Registry) TxURL(id domain.ChainID, hash common.Hash) string {
	c, ok := r.chains[id]
	if !ok {
		return ""
	}
	return c.TxURL(hash)
}

// FlowerRatio returns the configured fallback reward ratio.
func (r *Registry) FlowerRatio() *big.Int {
	return big.NewInt(r.flowerRatio)
}

// Chains lists the registered chains, source first.
func (r *Registry) Chains() []Chain {
	return []Chain{r.Source(), r.Target()}
}
