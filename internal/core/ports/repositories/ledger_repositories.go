package repositories

import (
	"context"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// LedgerEntryFilter narrows ledger listings. Nil fields are ignored.
type LedgerEntryFilter struct {
	EntryType  *domain.EntryType
	Categories []domain.Category
	DateFrom   *time.Time
	DateTo     *time.Time
}

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID returns a single entry, apperrors.ErrNotFound if absent.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	// ListEntries returns a user's entries matching the filter, ordered by
	// date descending then created_at descending.
	ListEntries(ctx context.Context, userID string, filter LedgerEntryFilter) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error
	// DeleteEntry hard-deletes an entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
