package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository implements the ledger repository interfaces using pgxpool.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PgxLedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

const ledgerEntryColumns = `
	entry_id, user_id, entry_type, entry_date, payment_method, category,
	amount, currency_code, amount_converted, converted_currency_code,
	created_at, updated_at
`

func scanLedgerEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	err := row.Scan(
		&entry.EntryID, &entry.UserID, &entry.EntryType, &entry.Date,
		&entry.PaymentMethod, &entry.Category,
		&entry.Amount, &entry.CurrencyCode,
		&entry.AmountConverted, &entry.ConvertedCurrencyCode,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

// SaveEntry inserts a new ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			entry_id, user_id, entry_type, entry_date, payment_method, category,
			amount, currency_code, amount_converted, converted_currency_code,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.EntryID, entry.UserID, entry.EntryType, entry.Date, entry.PaymentMethod, entry.Category,
		entry.Amount, entry.CurrencyCode, entry.AmountConverted, entry.ConvertedCurrencyCode,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// UpdateEntry overwrites an existing ledger entry.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries SET
			entry_type = $2, entry_date = $3, payment_method = $4, category = $5,
			amount = $6, currency_code = $7, amount_converted = $8,
			converted_currency_code = $9, updated_at = $10
		WHERE entry_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.EntryID, entry.EntryType, entry.Date, entry.PaymentMethod, entry.Category,
		entry.Amount, entry.CurrencyCode, entry.AmountConverted, entry.ConvertedCurrencyCode,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating ledger entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry hard-deletes a ledger entry.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("error deleting ledger entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID retrieves one ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	entry, err := scanLedgerEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding ledger entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// ListEntries retrieves a user's entries matching the filter, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, userID string, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.EntryType != nil {
		args = append(args, *filter.EntryType)
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", len(args)))
	}
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("entry_date < $%d", len(args)))
	}

	query := `SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY entry_date DESC, created_at DESC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing ledger entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		return scanLedgerEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning ledger entries: %w", err)
	}
	return entries, nil
}
