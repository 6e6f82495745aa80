// Package seed serves the embedded baseline event catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

//go:embed baseline.yaml
var baselineYAML []byte

type file struct {
	Events    []eventRecord    `yaml:"events"`
	Donations []donationRecord `yaml:"donations"`
}

type eventRecord struct {
	ID              uint64    `yaml:"id"`
	Title           string    `yaml:"title"`
	Description     string    `yaml:"description"`
	Category        string    `yaml:"category"`
	BeneficiaryName string    `yaml:"beneficiary_name"`
	Beneficiary     string    `yaml:"beneficiary"`
	ImageURLs       []string  `yaml:"image_urls"`
	DonorCount      uint64    `yaml:"donor_count"`
	TargetAmount    string    `yaml:"target_amount"`
	CurrentAmount   string    `yaml:"current_amount"`
	Deadline        time.Time `yaml:"deadline"`
	IsActive        bool      `yaml:"is_active"`
}

type donationRecord struct {
	ID              string    `yaml:"id"`
	EventID         uint64    `yaml:"event_id"`
	Donor           string    `yaml:"donor"`
	Amount          string    `yaml:"amount"`
	FlowersReceived string    `yaml:"flowers_received"`
	Timestamp       time.Time `yaml:"timestamp"`
	SourceChain     string    `yaml:"source_chain"`
	TargetChain     string    `yaml:"target_chain"`
	Status          string    `yaml:"status"`
	TxHash          string    `yaml:"tx_hash"`
}

// Catalog is an in-memory ports.BaselineRepository. It is read-only after
// construction.
type Catalog struct {
	events    []domain.BaselineEvent
	byID      map[uint64]int
	donations map[uint64][]domain.BaselineDonation
}

// Load parses the embedded catalog, scaling amounts by decimals.
func Load(decimals uint8) (*Catalog, error) {
	return Parse(baselineYAML, decimals)
}

// Parse builds a catalog from YAML. Amounts in data are decimal token
// amounts and are converted to smallest units with decimals.
func Parse(data []byte, decimals uint8) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode baseline: %w", err)
	}

	c := &Catalog{
		byID:      make(map[uint64]int, len(f.Events)),
		donations: make(map[uint64][]domain.BaselineDonation),
	}
	for _, r := range f.Events {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate baseline event %d", r.ID)
		}
		if !common.IsHexAddress(r.Beneficiary) {
			return nil, fmt.Errorf("event %d: invalid beneficiary %q", r.ID, r.Beneficiary)
		}
		target, err := scale(r.TargetAmount, decimals)
		if err != nil {
			return nil, fmt.Errorf("event %d target_amount: %w", r.ID, err)
		}
		current, err := scale(r.CurrentAmount, decimals)
		if err != nil {
			return nil, fmt.Errorf("event %d current_amount: %w", r.ID, err)
		}
		c.byID[r.ID] = len(c.events)
		c.events = append(c.events, domain.BaselineEvent{
			ID:              r.ID,
			Title:           r.Title,
			Description:     r.Description,
			Category:        r.Category,
			BeneficiaryName: r.BeneficiaryName,
			Beneficiary:     common.HexToAddress(r.Beneficiary),
			ImageURLs:       r.ImageURLs,
			DonorCount:      r.DonorCount,
			TargetAmount:    target,
			CurrentAmount:   current,
			Deadline:        r.Deadline.UTC(),
			IsActive:        r.IsActive,
		})
	}
	sort.SliceStable(c.events, func(i, j int) bool { return c.events[i].ID < c.events[j].ID })
	for i, ev := range c.events {
		c.byID[ev.ID] = i
	}

	for _, r := range f.Donations {
		if _, ok := c.byID[r.EventID]; !ok {
			return nil, fmt.Errorf("donation %s references unknown event %d", r.ID, r.EventID)
		}
		if !common.IsHexAddress(r.Donor) {
			return nil, fmt.Errorf("donation %s: invalid donor %q", r.ID, r.Donor)
		}
		amount, err := domain.ParseUnits(r.Amount, decimals)
		if err != nil {
			return nil, fmt.Errorf("donation %s amount: %w", r.ID, err)
		}
		flowers, err := scale(r.FlowersReceived, decimals)
		if err != nil {
			return nil, fmt.Errorf("donation %s flowers_received: %w", r.ID, err)
		}
		c.donations[r.EventID] = append(c.donations[r.EventID], domain.BaselineDonation{
			ID:              r.ID,
			EventID:         r.EventID,
			Donor:           common.HexToAddress(r.Donor),
			Amount:          amount,
			FlowersReceived: flowers,
			Timestamp:       r.Timestamp.UTC(),
			SourceChain:     r.SourceChain,
			TargetChain:     r.TargetChain,
			Status:          r.Status,
			TxHash:          r.TxHash,
		})
	}
	for id := range c.donations {
		list := c.donations[id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	}
	return c, nil
}

func (c *Catalog) ListEvents(context.Context) ([]domain.BaselineEvent, error) {
	return c.Events(), nil
}

// GetEvent returns nil, nil for an unknown id.
func (c *Catalog) GetEvent(_ context.Context, id uint64) (*domain.BaselineEvent, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, nil
	}
	ev := cloneEvent(c.events[i])
	return &ev, nil
}

func (c *Catalog) ListDonations(_ context.Context, eventID uint64) ([]domain.BaselineDonation, error) {
	src := c.donations[eventID]
	out := make([]domain.BaselineDonation, len(src))
	for i, d := range src {
		out[i] = cloneDonation(d)
	}
	return out, nil
}

// Events returns copies of all events ordered by id.
func (c *Catalog) Events() []domain.BaselineEvent {
	out := make([]domain.BaselineEvent, len(c.events))
	for i, ev := range c.events {
		out[i] = cloneEvent(ev)
	}
	return out
}

// Donations returns copies of every donation, grouped by event id.
func (c *Catalog) Donations() []domain.BaselineDonation {
	var out []domain.BaselineDonation
	for _, ev := range c.events {
		for _, d := range c.donations[ev.ID] {
			out = append(out, cloneDonation(d))
		}
	}
	return out
}

func cloneEvent(ev domain.BaselineEvent) domain.BaselineEvent {
	if ev.TargetAmount != nil {
		ev.TargetAmount = new(big.Int).Set(ev.TargetAmount)
	}
	if ev.CurrentAmount != nil {
		ev.CurrentAmount = new(big.Int).Set(ev.CurrentAmount)
	}
	ev.ImageURLs = append([]string(nil), ev.ImageURLs...)
	return ev
}

func cloneDonation(d domain.BaselineDonation) domain.BaselineDonation {
	if d.Amount != nil {
		d.Amount = new(big.Int).Set(d.Amount)
	}
	if d.FlowersReceived != nil {
		d.FlowersReceived = new(big.Int).Set(d.FlowersReceived)
	}
	return d
}

// scale is ParseUnits that also accepts zero, which baseline records use for
// events nobody has donated to yet.
func scale(amount string, decimals uint8) (*big.Int, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(amount), ".")
	if strings.Trim(whole, "0") == "" && strings.Trim(frac, "0") == "" {
		return new(big.Int), nil
	}
	return domain.ParseUnits(amount, decimals)
}
