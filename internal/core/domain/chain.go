package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ChainID identifies an EVM network. Zero means "unknown".
type ChainID uint64

// Hex returns the 0x-prefixed form wallets exchange (e.g. "0xaa36a7").
func (c ChainID) Hex() string {
	return "0x" + strconv.FormatUint(uint64(c), 16)
}

// IsKnown reports whether the id carries a value.
func (c ChainID) IsKnown() bool {
	return c != 0
}

func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// ParseChainID accepts either a 0x-prefixed hex id or a decimal id.
func ParseChainID(raw string) (ChainID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty chain id")
	}
	var (
		v   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("parse chain id %q: %w", raw, err)
	}
	return ChainID(v), nil
}

// Currency describes a network's native currency.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// NetworkDescriptor is what a wallet needs to register a network it does not know.
type NetworkDescriptor struct {
	ChainID        ChainID  `json:"chain_id"`
	Name           string   `json:"chain_name"`
	RPCURLs        []string `json:"rpc_urls"`
	NativeCurrency Currency `json:"native_currency"`
	ExplorerURLs   []string `json:"block_explorer_urls"`
}
