package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry with its lines.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of a user's entries without lines, newest first,
	// and returns a token for the next page.
	ListJournalEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveJournalEntry persists an entry with its lines and applies the balance changes
	// in one database transaction. The entry number is assigned here.
	SaveJournalEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// SaveJournalEntryInTx is SaveJournalEntry within the caller's transaction.
	SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// MarkReversedInTx sets an entry's status to reversed.
	MarkReversedInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
