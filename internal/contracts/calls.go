package contracts

import (
	"fmt"
	"math/big"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	donateWithEventSig = "donate(address,uint256,uint256)"
	donateSig          = "donate(address,uint256)"
)

// vaultEvent mirrors the getEvent tuple; field names follow the ABI components.
type vaultEvent struct {
	Title         string
	Description   string
	TargetAmount  *big.Int
	CurrentAmount *big.Int
	Deadline      *big.Int
	Beneficiary   common.Address
	IsActive      bool
}

// vaultDonation mirrors one getEventDonations tuple.
type vaultDonation struct {
	Donor           common.Address
	Amount          *big.Int
	Timestamp       *big.Int
	FlowersReceived *big.Int
}

// ---- ERC-20 ----

// PackApprove encodes approve(spender, amount).
func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return tokenABI.Pack("approve", spender, amount)
}

// PackDecimals encodes decimals().
func PackDecimals() ([]byte, error) {
	return tokenABI.Pack("decimals")
}

// UnpackDecimals decodes the uint8 returned by decimals().
func UnpackDecimals(data []byte) (uint8, error) {
	out, err := tokenABI.Unpack("decimals", data)
	if err != nil {
		return 0, fmt.Errorf("unpack decimals: %w", err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("unpack decimals: got %d values", len(out))
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

// PackTokenBalanceOf encodes balanceOf(account) on the payment token.
func PackTokenBalanceOf(account common.Address) ([]byte, error) {
	return tokenABI.Pack("balanceOf", account)
}

// UnpackTokenBalanceOf decodes the payment token's balanceOf result.
func UnpackTokenBalanceOf(data []byte) (*big.Int, error) {
	return unpackUint256(tokenABI, "balanceOf", data)
}

// ---- Bridge ----

// PackDonate encodes the bridge donation call. With a nil eventID it targets
// the bridge's default event via the two-argument overload.
func PackDonate(token common.Address, amount *big.Int, eventID *uint64) ([]byte, error) {
	if eventID == nil {
		m, err := methodBySig(bridgeABI, donateSig)
		if err != nil {
			return nil, err
		}
		return packMethod(m, token, amount)
	}
	m, err := methodBySig(bridgeABI, donateWithEventSig)
	if err != nil {
		return nil, err
	}
	return packMethod(m, token, amount, new(big.Int).SetUint64(*eventID))
}

// ---- Vault ----

// PackGetEvent encodes getEvent(eventId).
func PackGetEvent(id uint64) ([]byte, error) {
	return vaultABI.Pack("getEvent", new(big.Int).SetUint64(id))
}

// UnpackGetEvent decodes the getEvent tuple.
func UnpackGetEvent(data []byte) (domain.OnChainEventRecord, error) {
	out, err := vaultABI.Unpack("getEvent", data)
	if err != nil {
		return domain.OnChainEventRecord{}, fmt.Errorf("unpack getEvent: %w", err)
	}
	if len(out) != 1 {
		return domain.OnChainEventRecord{}, fmt.Errorf("unpack getEvent: got %d values", len(out))
	}
	ev := *abi.ConvertType(out[0], new(vaultEvent)).(*vaultEvent)
	if ev.Deadline != nil && !ev.Deadline.IsUint64() {
		return domain.OnChainEventRecord{}, fmt.Errorf("unpack getEvent: deadline %s overflows uint64", ev.Deadline)
	}
	return domain.OnChainEventRecord{
		Title:         ev.Title,
		Description:   ev.Description,
		TargetAmount:  orZero(ev.TargetAmount),
		CurrentAmount: orZero(ev.CurrentAmount),
		Deadline:      orZero(ev.Deadline).Uint64(),
		Beneficiary:   ev.Beneficiary,
		IsActive:      ev.IsActive,
	}, nil
}

// PackGetEventDonations encodes getEventDonations(eventId).
func PackGetEventDonations(id uint64) ([]byte, error) {
	return vaultABI.Pack("getEventDonations", new(big.Int).SetUint64(id))
}

// UnpackGetEventDonations decodes the donation tuple array, keeping contract order.
func UnpackGetEventDonations(data []byte) ([]domain.OnChainDonationRecord, error) {
	out, err := vaultABI.Unpack("getEventDonations", data)
	if err != nil {
		return nil, fmt.Errorf("unpack getEventDonations: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unpack getEventDonations: got %d values", len(out))
	}
	raw := *abi.ConvertType(out[0], new([]vaultDonation)).(*[]vaultDonation)

	records := make([]domain.OnChainDonationRecord, 0, len(raw))
	for i, d := range raw {
		if d.Timestamp != nil && !d.Timestamp.IsUint64() {
			return nil, fmt.Errorf("unpack getEventDonations: record %d timestamp overflows uint64", i)
		}
		records = append(records, domain.OnChainDonationRecord{
			Donor:           d.Donor,
			Amount:          orZero(d.Amount),
			Timestamp:       orZero(d.Timestamp).Uint64(),
			FlowersReceived: orZero(d.FlowersReceived),
		})
	}
	return records, nil
}

// PackVaultBalanceOf encodes balanceOf(account) on the vault's reward token.
func PackVaultBalanceOf(account common.Address) ([]byte, error) {
	return vaultABI.Pack("balanceOf", account)
}

// UnpackVaultBalanceOf decodes the vault's balanceOf result.
func UnpackVaultBalanceOf(data []byte) (*big.Int, error) {
	return unpackUint256(vaultABI, "balanceOf", data)
}

// PackFlowerRatio encodes FLOWER_RATIO().
func PackFlowerRatio() ([]byte, error) {
	return vaultABI.Pack("FLOWER_RATIO")
}

// UnpackFlowerRatio decodes FLOWER_RATIO().
func UnpackFlowerRatio(data []byte) (*big.Int, error) {
	return unpackUint256(vaultABI, "FLOWER_RATIO", data)
}

// UnpackRevertReason extracts the Error(string) reason from revert data.
func UnpackRevertReason(data []byte) (string, bool) {
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return "", false
	}
	return reason, true
}

func unpackUint256(contract abi.ABI, method string, data []byte) (*big.Int, error) {
	out, err := contract.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unpack %s: got %d values", method, len(out))
	}
	return orZero(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)), nil
}

func methodBySig(contract abi.ABI, sig string) (abi.Method, error) {
	for _, m := range contract.Methods {
		if m.Sig == sig {
			return m, nil
		}
	}
	return abi.Method{}, fmt.Errorf("method %s not in abi", sig)
}

func packMethod(m abi.Method, args ...interface{}) ([]byte, error) {
	input, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", m.Sig, err)
	}
	return append(append([]byte{}, m.ID...), input...), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
