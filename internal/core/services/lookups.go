package services

import (
	"context"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
)

// loadCategory returns a system category or one of the user's own.
func loadCategory(ctx context.Context, repo portsrepo.CategoryReader, userID, categoryID string) (*domain.Category, error) {
	category, err := repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != nil && *category.UserID != userID {
		return nil, apperrors.NewNotFoundError("category", categoryID)
	}
	return category, nil
}

// loadTransaction returns one of the user's transactions.
func loadTransaction(ctx context.Context, repo portsrepo.TransactionReader, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.NewNotFoundError("transaction", transactionID)
	}
	return txn, nil
}
