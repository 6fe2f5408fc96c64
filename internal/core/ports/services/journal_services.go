package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves one of the user's entries with its lines.
	GetJournalEntryByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of the user's entries.
	ListJournalEntries(ctx context.Context, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateJournalEntry validates and posts a balanced entry.
	CreateJournalEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// ReverseJournalEntry posts the mirror image of an entry and marks the original reversed.
	ReverseJournalEntry(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error)

	// PostTransaction records a categorized bank transaction in the ledger.
	PostTransaction(ctx context.Context, userID, transactionID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
