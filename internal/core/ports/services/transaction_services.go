package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one of the user's transactions.
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction records a manual transaction.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction patches a transaction and recomputes its deductible.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction that is not posted to the ledger.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
