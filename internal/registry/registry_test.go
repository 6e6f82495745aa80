package registry

import (
	"testing"

	"crosschain-donation/config"
	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChainsConfig() config.ChainsConfig {
	return config.ChainsConfig{
		Source: config.ChainConfig{
			ID:               11155111,
			Name:             "Ethereum Sepolia",
			RPCURL:           "https://sepolia.example",
			ExplorerURL:      "https://sepolia.etherscan.io",
			CurrencyName:     "Sepolia ETH",
			CurrencySymbol:   "ETH",
			CurrencyDecimals: 18,
			TokenBridge:      "0x5fB3B402CeB562AEd0BBC93a2dAE7ec87F9587A3",
			PaymentToken:     "0xEabab8DA6dcfFC511579Cd1e43357B9A68842BD8",
		},
		Target: config.ChainConfig{
			ID:            421614,
			Name:          "Arbitrum Sepolia",
			RPCURL:        "https://arbitrum-sepolia.example",
			ExplorerURL:   "https://sepolia.arbiscan.io/",
			DonationVault: "0x1c6D6663B2667fE282680a8c36E05FA73ADB85f7",
		},
		FlowerRatio: 100,
	}
}

func TestFromConfig(t *testing.T) {
	reg, err := FromConfig(testChainsConfig())
	require.NoError(t, err)

	src := reg.Source()
	assert.Equal(t, domain.ChainID(11155111), src.ID)
	assert.Equal(t, common.HexToAddress("0x5fB3B402CeB562AEd0BBC93a2dAE7ec87F9587A3"), src.Contracts.TokenBridge)
	assert.Equal(t, "ETH", src.NativeCurrency.Symbol)

	tgt := reg.Target()
	assert.Equal(t, domain.ChainID(421614), tgt.ID)
	assert.Equal(t, common.HexToAddress("0x1c6D6663B2667fE282680a8c36E05FA73ADB85f7"), tgt.Contracts.DonationVault)
	assert.Equal(t, common.Address{}, tgt.Contracts.TokenBridge)

	assert.Len(t, reg.Chains(), 2)
	assert.Equal(t, int64(100), reg.FlowerRatio().Int64())
}

func TestFromConfig_BadAddress(t *testing.T) {
	cfg := testChainsConfig()
	cfg.Source.TokenBridge = "not-an-address"

	_, err := FromConfig(cfg)
	assert.ErrorContains(t, err, "token_bridge")
}

func TestNew_Validation(t *testing.T) {
	base, err := FromConfig(testChainsConfig())
	require.NoError(t, err)
	src, tgt := base.Source(), base.Target()

	tests := []struct {
		name   string
		source Chain
		target Chain
	}{
		{"same chain", src, func() Chain { c := tgt; c.ID = src.ID; return c }()},
		{"missing id", func() Chain { c := src; c.ID = 0; return c }(), tgt},
		{"missing bridge", func() Chain { c := src; c.Contracts.TokenBridge = common.Address{}; return c }(), tgt},
		{"missing vault", src, func() Chain { c := tgt; c.Contracts.DonationVault = common.Address{}; return c }()},
		{"missing target rpc", src, func() Chain { c := tgt; c.RPCURL = ""; return c }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.source, tt.target, 100)
			assert.Error(t, err)
		})
	}
}

func TestNew_DefaultFlowerRatio(t *testing.T) {
	base, err := FromConfig(testChainsConfig())
	require.NoError(t, err)

	reg, err := New(base.Source(), base.Target(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultFlowerRatio), reg.FlowerRatio().Int64())
}

func TestLookupAndDescriptor(t *testing.T) {
	reg, err := FromConfig(testChainsConfig())
	require.NoError(t, err)

	_, ok := reg.Lookup(1)
	assert.False(t, ok)

	desc, ok := reg.Descriptor(11155111)
	require.True(t, ok)
	assert.Equal(t, "Ethereum Sepolia", desc.Name)
	assert.Equal(t, []string{"https://sepolia.example"}, desc.RPCURLs)
	assert.Equal(t, []string{"https://sepolia.etherscan.io"}, desc.ExplorerURLs)
	assert.Equal(t, uint8(18), desc.NativeCurrency.Decimals)

	_, ok = reg.Descriptor(1)
	assert.False(t, ok)
}

func TestTxURL(t *testing.T) {
	reg, err := FromConfig(testChainsConfig())
	require.NoError(t, err)
	hash := common.HexToHash("0x652c834974d400ffd7178c5dbae0494fbd96594eab0c06d23ee389294da8f044")

	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+hash.Hex(), reg.TxURL(11155111, hash))
	assert.Equal(t, "https://sepolia.arbiscan.io/tx/"+hash.Hex(), reg.TxURL(421614, hash), "trailing slash trimmed")
	assert.Empty(t, reg.TxURL(1, hash))

	addr := common.HexToAddress("0xF344DC8d71f752D87Ef1c8662aF671973010249f")
	assert.Equal(t, "https://sepolia.arbiscan.io/address/"+addr.Hex(), reg.Target().AddressURL(addr))
}
