package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
)

// Schema creates the baseline tables. Amounts are smallest-unit integers, so
// they are stored as NUMERIC(78,0) to hold any uint256.
const Schema = `
CREATE TABLE IF NOT EXISTS baseline_events (
	id               BIGINT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL DEFAULT '',
	beneficiary_name TEXT NOT NULL DEFAULT '',
	beneficiary      TEXT NOT NULL DEFAULT '',
	image_urls       TEXT[] NOT NULL DEFAULT '{}',
	donor_count      BIGINT NOT NULL DEFAULT 0,
	target_amount    NUMERIC(78,0) NOT NULL DEFAULT 0,
	current_amount   NUMERIC(78,0) NOT NULL DEFAULT 0,
	deadline         TIMESTAMPTZ NOT NULL,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE TABLE IF NOT EXISTS baseline_donations (
	id               TEXT PRIMARY KEY,
	event_id         BIGINT NOT NULL REFERENCES baseline_events(id),
	donor            TEXT NOT NULL,
	amount           NUMERIC(78,0) NOT NULL,
	flowers_received NUMERIC(78,0) NOT NULL DEFAULT 0,
	donated_at       TIMESTAMPTZ NOT NULL,
	source_chain     TEXT NOT NULL DEFAULT '',
	target_chain     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT '',
	tx_hash          TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS baseline_donations_event_idx ON baseline_donations (event_id, donated_at DESC);
`

const eventColumns = `id, title, description, category, beneficiary_name, beneficiary, image_urls,
	donor_count, target_amount::text, current_amount::text, deadline, is_active`

const donationColumns = `id, event_id, donor, amount::text, flowers_received::text, donated_at,
	source_chain, target_chain, status, tx_hash`

// BaselineRepo implements ports.BaselineRepository on PostgreSQL.
type BaselineRepo struct {
	pool Pool
}

// NewBaselineRepo creates a new BaselineRepo.
func NewBaselineRepo(pool Pool) *BaselineRepo {
	return &BaselineRepo{pool: pool}
}

// EnsureSchema creates the baseline tables if they are missing.
func (r *BaselineRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create baseline schema: %w", err)
	}
	return nil
}

// ListEvents returns every baseline event ordered by id.
func (r *BaselineRepo) ListEvents(ctx context.Context) ([]domain.BaselineEvent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM baseline_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list baseline events: %w", err)
	}
	defer rows.Close()

	var events []domain.BaselineEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan baseline event: %w", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate baseline events: %w", err)
	}
	return events, nil
}

// GetEvent returns the event with id, or nil, nil if there is none.
func (r *BaselineRepo) GetEvent(ctx context.Context, id uint64) (*domain.BaselineEvent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM baseline_events WHERE id = $1`, int64(id))
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get baseline event %d: %w", id, err)
	}
	return ev, nil
}

// ListDonations returns the event's baseline donations, newest first.
func (r *BaselineRepo) ListDonations(ctx context.Context, eventID uint64) ([]domain.BaselineDonation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+` FROM baseline_donations WHERE event_id = $1 ORDER BY donated_at DESC, id`,
		int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("list baseline donations: %w", err)
	}
	defer rows.Close()

	var donations []domain.BaselineDonation
	for rows.Next() {
		var (
			d               domain.BaselineDonation
			eventID         int64
			donor           string
			amount, flowers string
		)
		if err := rows.Scan(&d.ID, &eventID, &donor, &amount, &flowers, &d.Timestamp,
			&d.SourceChain, &d.TargetChain, &d.Status, &d.TxHash); err != nil {
			return nil, fmt.Errorf("scan baseline donation: %w", err)
		}
		d.EventID = uint64(eventID)
		d.Donor = common.HexToAddress(donor)
		if d.Amount, err = parseNumeric(amount); err != nil {
			return nil, err
		}
		if d.FlowersReceived, err = parseNumeric(flowers); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate baseline donations: %w", err)
	}
	return donations, nil
}

// Import upserts events and donations in one transaction.
func (r *BaselineRepo) Import(ctx context.Context, events []domain.BaselineEvent, donations []domain.BaselineDonation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin baseline import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, ev := range events {
		_, err := tx.Exec(ctx, `INSERT INTO baseline_events (id, title, description, category, beneficiary_name,
				beneficiary, image_urls, donor_count, target_amount, current_amount, deadline, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10::numeric, $11, $12)
			ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description,
				category = EXCLUDED.category, beneficiary_name = EXCLUDED.beneficiary_name,
				beneficiary = EXCLUDED.beneficiary, image_urls = EXCLUDED.image_urls,
				donor_count = EXCLUDED.donor_count, target_amount = EXCLUDED.target_amount,
				current_amount = EXCLUDED.current_amount, deadline = EXCLUDED.deadline,
				is_active = EXCLUDED.is_active`,
			int64(ev.ID), ev.Title, ev.Description, ev.Category, ev.BeneficiaryName,
			ev.Beneficiary.Hex(), ev.ImageURLs, int64(ev.DonorCount),
			numericText(ev.TargetAmount), numericText(ev.CurrentAmount), ev.Deadline, ev.IsActive,
		)
		if err != nil {
			return fmt.Errorf("import baseline event %d: %w", ev.ID, err)
		}
	}

	for _, d := range donations {
		_, err := tx.Exec(ctx, `INSERT INTO baseline_donations (id, event_id, donor, amount, flowers_received,
				donated_at, source_chain, target_chain, status, tx_hash)
			VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			d.ID, int64(d.EventID), d.Donor.Hex(), numericText(d.Amount), numericText(d.FlowersReceived),
			d.Timestamp, d.SourceChain, d.TargetChain, d.Status, d.TxHash,
		)
		if err != nil {
			return fmt.Errorf("import baseline donation %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit baseline import: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.BaselineEvent, error) {
	var (
		ev              domain.BaselineEvent
		id, donors      int64
		beneficiary     string
		target, current string
		deadline        time.Time
	)
	if err := row.Scan(&id, &ev.Title, &ev.Description, &ev.Category, &ev.BeneficiaryName,
		&beneficiary, &ev.ImageURLs, &donors, &target, &current, &deadline, &ev.IsActive); err != nil {
		return nil, err
	}
	ev.ID = uint64(id)
	ev.DonorCount = uint64(donors)
	ev.Beneficiary = common.HexToAddress(beneficiary)
	ev.Deadline = deadline.UTC()

	var err error
	if ev.TargetAmount, err = parseNumeric(target); err != nil {
		return nil, err
	}
	if ev.CurrentAmount, err = parseNumeric(current); err != nil {
		return nil, err
	}
	return &ev, nil
}

func parseNumeric(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid numeric amount %q", s)
	}
	return v, nil
}

func numericText(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
