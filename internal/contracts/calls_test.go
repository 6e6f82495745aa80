package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBridge = common.HexToAddress("0x5fB3B402CeB562AEd0BBC93a2dAE7ec87F9587A3")
	testToken  = common.HexToAddress("0xEabab8DA6dcfFC511579Cd1e43357B9A68842BD8")
	testDonor  = common.HexToAddress("0xF344DC8d71f752D87Ef1c8662aF671973010249f")
)

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

func TestPackApprove(t *testing.T) {
	amount := big.NewInt(100_000_000)
	data, err := PackApprove(testBridge, amount)
	require.NoError(t, err)

	assert.Equal(t, selector("approve(address,uint256)"), data[:4])
	assert.Len(t, data, 4+32*2)
	assert.Equal(t, testBridge.Bytes(), data[4+12:4+32])
	assert.Zero(t, amount.Cmp(new(big.Int).SetBytes(data[4+32:])))
}

func TestPackDonate_Overloads(t *testing.T) {
	amount := big.NewInt(5)

	t.Run("default event", func(t *testing.T) {
		data, err := PackDonate(testToken, amount, nil)
		require.NoError(t, err)
		assert.Equal(t, selector("donate(address,uint256)"), data[:4])
		assert.Len(t, data, 4+32*2)
	})

	t.Run("explicit event", func(t *testing.T) {
		id := uint64(3)
		data, err := PackDonate(testToken, amount, &id)
		require.NoError(t, err)
		assert.Equal(t, selector("donate(address,uint256,uint256)"), data[:4])
		require.Len(t, data, 4+32*3)
		assert.Equal(t, uint64(3), new(big.Int).SetBytes(data[4+64:]).Uint64())
	})
}

func TestUnpackDecimals(t *testing.T) {
	encoded, err := tokenABI.Methods["decimals"].Outputs.Pack(uint8(6))
	require.NoError(t, err)

	got, err := UnpackDecimals(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), got)

	_, err = UnpackDecimals(nil)
	assert.Error(t, err)
}

func TestUnpackGetEvent(t *testing.T) {
	target := new(big.Int).Mul(big.NewInt(50000), big.NewInt(1e18))
	current := new(big.Int).Mul(big.NewInt(32500), big.NewInt(1e18))
	encoded, err := vaultABI.Methods["getEvent"].Outputs.Pack(vaultEvent{
		Title:         "Medical aid",
		Description:   "Treatment fund",
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      big.NewInt(1771113600),
		Beneficiary:   testDonor,
		IsActive:      true,
	})
	require.NoError(t, err)

	rec, err := UnpackGetEvent(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Medical aid", rec.Title)
	assert.Zero(t, target.Cmp(rec.TargetAmount))
	assert.Zero(t, current.Cmp(rec.CurrentAmount))
	assert.Equal(t, uint64(1771113600), rec.Deadline)
	assert.Equal(t, testDonor, rec.Beneficiary)
	assert.True(t, rec.IsActive)
	assert.False(t, rec.IsZero())
}

func TestUnpackGetEvent_ZeroTuple(t *testing.T) {
	encoded, err := vaultABI.Methods["getEvent"].Outputs.Pack(vaultEvent{
		TargetAmount:  new(big.Int),
		CurrentAmount: new(big.Int),
		Deadline:      new(big.Int),
	})
	require.NoError(t, err)

	rec, err := UnpackGetEvent(encoded)
	require.NoError(t, err)
	assert.True(t, rec.IsZero())
}

func TestUnpackGetEvent_Garbage(t *testing.T) {
	_, err := UnpackGetEvent([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestUnpackGetEventDonations_KeepsOrder(t *testing.T) {
	other := common.HexToAddress("0x01")
	encoded, err := vaultABI.Methods["getEventDonations"].Outputs.Pack([]vaultDonation{
		{Donor: testDonor, Amount: big.NewInt(100), Timestamp: big.NewInt(10), FlowersReceived: big.NewInt(10000)},
		{Donor: other, Amount: big.NewInt(50), Timestamp: big.NewInt(20), FlowersReceived: big.NewInt(5000)},
	})
	require.NoError(t, err)

	recs, err := UnpackGetEventDonations(encoded)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, testDonor, recs[0].Donor)
	assert.Equal(t, uint64(10), recs[0].Timestamp)
	assert.Equal(t, other, recs[1].Donor)
	assert.Zero(t, big.NewInt(5000).Cmp(recs[1].FlowersReceived))
}

func TestUnpackGetEventDonations_Empty(t *testing.T) {
	encoded, err := vaultABI.Methods["getEventDonations"].Outputs.Pack([]vaultDonation{})
	require.NoError(t, err)

	recs, err := UnpackGetEventDonations(encoded)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestUint256Readers(t *testing.T) {
	encoded, err := vaultABI.Methods["FLOWER_RATIO"].Outputs.Pack(big.NewInt(100))
	require.NoError(t, err)

	ratio, err := UnpackFlowerRatio(encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(100), ratio.Int64())

	bal, err := UnpackVaultBalanceOf(encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal.Int64())

	call, err := PackVaultBalanceOf(testDonor)
	require.NoError(t, err)
	assert.Equal(t, selector("balanceOf(address)"), call[:4])
}

func TestUnpackRevertReason(t *testing.T) {
	errorSel := selector("Error(string)")
	payload, err := tokenABI.Methods["symbol"].Outputs.Pack("ERC20: insufficient allowance")
	require.NoError(t, err)

	reason, ok := UnpackRevertReason(append(errorSel, payload...))
	assert.True(t, ok)
	assert.Equal(t, "ERC20: insufficient allowance", reason)

	_, ok = UnpackRevertReason([]byte{0xde, 0xad})
	assert.False(t, ok)
}
