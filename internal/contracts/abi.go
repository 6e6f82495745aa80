// Package contracts holds the ABIs the client talks to and typed
// pack/unpack helpers around them.
package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// tokenABIJSON is the ERC-20 subset used for approvals and balances.
const tokenABIJSON = `[
{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

// bridgeABIJSON is the source-chain donation entrypoint. donate is overloaded;
// go-ethereum names the second definition donate0.
const bridgeABIJSON = `[
{"type":"function","name":"donate","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"},{"name":"eventId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"donate","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"defaultEventId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getFeeTokenBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"event","name":"DonationInitiated","anonymous":false,"inputs":[{"name":"donor","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"eventId","type":"uint256","indexed":true},{"name":"messageId","type":"bytes32","indexed":false}]}
]`

// vaultABIJSON is the target-chain vault that tallies donations and mints rewards.
const vaultABIJSON = `[
{"type":"function","name":"eventCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getEvent","stateMutability":"view","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[{"name":"","type":"tuple","internalType":"struct DonationVault.DonationEvent","components":[
  {"name":"title","type":"string"},
  {"name":"description","type":"string"},
  {"name":"targetAmount","type":"uint256"},
  {"name":"currentAmount","type":"uint256"},
  {"name":"deadline","type":"uint256"},
  {"name":"beneficiary","type":"address"},
  {"name":"isActive","type":"bool"}]}]},
{"type":"function","name":"getEventDonations","stateMutability":"view","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[{"name":"","type":"tuple[]","internalType":"struct DonationVault.DonationRecord[]","components":[
  {"name":"donor","type":"address"},
  {"name":"amount","type":"uint256"},
  {"name":"timestamp","type":"uint256"},
  {"name":"flowersReceived","type":"uint256"}]}]},
{"type":"function","name":"getDonorFlowers","stateMutability":"view","inputs":[{"name":"donor","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"FLOWER_RATIO","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	tokenABI  = mustParse("token", tokenABIJSON)
	bridgeABI = mustParse("bridge", bridgeABIJSON)
	vaultABI  = mustParse("vault", vaultABIJSON)
)

func mustParse(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse %s abi: %v", name, err))
	}
	return parsed
}

// TokenABI returns the parsed ERC-20 ABI.
func TokenABI() abi.ABI { return tokenABI }

// BridgeABI returns the parsed bridge ABI.
func BridgeABI() abi.ABI { return bridgeABI }

// VaultABI returns the parsed vault ABI.
func VaultABI() abi.ABI { return vaultABI }
