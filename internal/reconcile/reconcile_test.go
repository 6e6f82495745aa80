package reconcile

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), domain.Pow10(18))
}

func baselineEvent() domain.BaselineEvent {
	return domain.BaselineEvent{
		ID:              1,
		Title:           "Leukemia treatment for Xiaoming",
		Description:     "Medical aid",
		Category:        "medical",
		BeneficiaryName: "Xiaoming's family",
		Beneficiary:     common.HexToAddress("0xF344DC8d71f752D87Ef1c8662aF671973010249f"),
		ImageURLs:       []string{"a.jpg"},
		DonorCount:      156,
		TargetAmount:    units(50000),
		CurrentAmount:   units(32500),
		Deadline:        time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func TestMergeEventView_UnavailableIsIdentity(t *testing.T) {
	base := baselineEvent()

	view := MergeEventView(base, domain.Unavailable[domain.OnChainEventRecord](errors.New("rpc down")))

	assert.Equal(t, OriginBaseline, view.Origin)
	assert.Equal(t, base.Title, view.Title)
	assert.Equal(t, base.Description, view.Description)
	assert.Equal(t, base.Category, view.Category)
	assert.Equal(t, base.BeneficiaryName, view.BeneficiaryName)
	assert.Equal(t, base.Beneficiary, view.Beneficiary)
	assert.Equal(t, base.ImageURLs, view.ImageURLs)
	assert.Equal(t, base.DonorCount, view.DonorCount)
	assert.Zero(t, base.TargetAmount.Cmp(view.TargetAmount))
	assert.Zero(t, base.CurrentAmount.Cmp(view.CurrentAmount))
	assert.Equal(t, base.Deadline, view.Deadline)
	assert.Equal(t, base.IsActive, view.IsActive)
}

func TestMergeEventView_OverlaysAuthoritativeFields(t *testing.T) {
	base := baselineEvent()
	rec := domain.OnChainEventRecord{
		Title:         "on-chain title",
		Description:   "on-chain description",
		TargetAmount:  units(60000),
		CurrentAmount: units(61000),
		Deadline:      1772323200, // 2026-03-01
		Beneficiary:   common.HexToAddress("0x01"),
		IsActive:      false,
	}

	view := MergeEventView(base, domain.Available(rec))

	assert.Equal(t, OriginChain, view.Origin)
	assert.Zero(t, units(60000).Cmp(view.TargetAmount))
	assert.Zero(t, units(61000).Cmp(view.CurrentAmount))
	assert.Equal(t, time.Unix(1772323200, 0).UTC(), view.Deadline)
	assert.False(t, view.IsActive)

	assert.Equal(t, base.Title, view.Title, "descriptive fields stay baseline")
	assert.Equal(t, base.Description, view.Description)
	assert.Equal(t, base.Beneficiary, view.Beneficiary)
	assert.True(t, view.IsCompleted())
}

func TestMergeEventView_DoesNotMutateInputs(t *testing.T) {
	base := baselineEvent()
	rec := domain.OnChainEventRecord{TargetAmount: units(10), CurrentAmount: units(5), Deadline: 1}

	view := MergeEventView(base, domain.Available(rec))
	view.TargetAmount.SetInt64(0)
	view.CurrentAmount.SetInt64(0)

	assert.Zero(t, units(10).Cmp(rec.TargetAmount))
	assert.Zero(t, units(5).Cmp(rec.CurrentAmount))

	unavailable := MergeEventView(base, domain.ReadResult[domain.OnChainEventRecord]{})
	unavailable.CurrentAmount.SetInt64(1)
	unavailable.ImageURLs[0] = "changed"
	assert.Zero(t, units(32500).Cmp(base.CurrentAmount))
	assert.Equal(t, "a.jpg", base.ImageURLs[0])
}

func TestEventView_IsCompleted(t *testing.T) {
	tests := []struct {
		name    string
		current *big.Int
		target  *big.Int
		want    bool
	}{
		{"below", units(14999), units(15000), false},
		{"equal", units(15000), units(15000), true},
		{"above", units(15001), units(15000), true},
		{"zero target", big.NewInt(0), big.NewInt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EventView{CurrentAmount: tt.current, TargetAmount: tt.target}
			assert.Equal(t, tt.want, v.IsCompleted())
		})
	}
}

func TestEventView_CompletionFollowsMergedAmounts(t *testing.T) {
	base := baselineEvent()
	base.CurrentAmount = units(50000) // baseline says complete

	view := MergeEventView(base, domain.Available(domain.OnChainEventRecord{
		TargetAmount:  units(50000),
		CurrentAmount: units(100),
		IsActive:      true,
	}))
	assert.False(t, view.IsCompleted())
}

func TestEventView_Progress(t *testing.T) {
	tests := []struct {
		name    string
		current *big.Int
		target  *big.Int
		want    int
	}{
		{"65 percent", units(32500), units(50000), 65},
		{"rounds half up", big.NewInt(5), big.NewInt(1000), 1},
		{"rounds down", big.NewInt(4), big.NewInt(1000), 0},
		{"capped", units(3), units(2), 100},
		{"zero target", big.NewInt(0), big.NewInt(0), 0},
		{"zero target with funds", big.NewInt(1), big.NewInt(0), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EventView{CurrentAmount: tt.current, TargetAmount: tt.target}
			assert.Equal(t, tt.want, v.Progress())
		})
	}
}

func TestEventView_DeadlineStatus(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		deadline time.Time
		want     DeadlineStatus
	}{
		{"ended", now.Add(-time.Hour), DeadlineStatus{State: DeadlineEnded}},
		{"due today", now.Add(5 * time.Hour), DeadlineStatus{State: DeadlineDueToday, IsUrgent: true}},
		{"urgent", now.Add(72 * time.Hour), DeadlineStatus{State: DeadlineUrgent, DaysLeft: 3, IsUrgent: true}},
		{"open", now.Add(10 * 24 * time.Hour), DeadlineStatus{State: DeadlineOpen, DaysLeft: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EventView{Deadline: tt.deadline}
			assert.Equal(t, tt.want, v.DeadlineStatus(now))
		})
	}
}

func TestMergeDonationList_OnChainWinsWholesale(t *testing.T) {
	onChain := []domain.OnChainDonationRecord{
		{Donor: common.HexToAddress("0x01"), Amount: units(1), Timestamp: 100, FlowersReceived: units(100)},
		{Donor: common.HexToAddress("0x02"), Amount: units(2), Timestamp: 300, FlowersReceived: units(200)},
		{Donor: common.HexToAddress("0x03"), Amount: units(3), Timestamp: 200, FlowersReceived: units(300)},
	}
	baseline := []domain.BaselineDonation{
		{ID: "1", EventID: 1, Donor: common.HexToAddress("0x09"), Amount: units(100), TxHash: "0xabc"},
	}

	out := MergeDonationList(1, onChain, baseline)

	require.Len(t, out, len(onChain))
	for _, d := range out {
		assert.Equal(t, OriginChain, d.Origin)
		assert.NotEqual(t, common.HexToAddress("0x09"), d.Donor)
	}
	assert.Equal(t, common.HexToAddress("0x02"), out[0].Donor, "newest first")
	assert.Equal(t, common.HexToAddress("0x03"), out[1].Donor)
	assert.Equal(t, common.HexToAddress("0x01"), out[2].Donor)

	assert.Equal(t, common.HexToAddress("0x01"), onChain[0].Donor, "input order untouched")
}

func TestMergeDonationList_EmptyOnChainUsesBaseline(t *testing.T) {
	baseline := []domain.BaselineDonation{
		{ID: "1", EventID: 1, Donor: common.HexToAddress("0x09"), Amount: units(100), FlowersReceived: units(10000),
			Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TxHash: "0xabc", Status: "completed"},
		{ID: "2", EventID: 1, Donor: common.HexToAddress("0x0a"), Amount: units(50), FlowersReceived: units(5000),
			Timestamp: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), TxHash: "0xdef", Status: "pending"},
	}

	for _, onChain := range [][]domain.OnChainDonationRecord{nil, {}} {
		out := MergeDonationList(1, onChain, baseline)
		require.Len(t, out, len(baseline))
		for _, d := range out {
			assert.Equal(t, OriginBaseline, d.Origin)
		}
		assert.Equal(t, "0xdef", out[0].TxHash)
		assert.Equal(t, "0xabc", out[1].TxHash)
	}

	assert.Equal(t, "1", baseline[0].ID, "input order untouched")
}

func TestMergeDonationList_BothEmpty(t *testing.T) {
	out := MergeDonationList(4, nil, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRewardPreview(t *testing.T) {
	assert.Zero(t, units(10000).Cmp(RewardPreview(units(100), big.NewInt(100))))
	assert.Equal(t, int64(0), RewardPreview(nil, big.NewInt(100)).Int64())
}
