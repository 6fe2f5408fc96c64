package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/utils/tax"
)

// applyTaxFields recomputes the deductible, substantiation flag and tax year of txn.
// Every path that changes a tax category or business-use percentage goes through here.
func applyTaxFields(txn *domain.Transaction, category *domain.TaxCategory) error {
	deductible, err := tax.DeductibleFor(txn.Amount, txn.BusinessUsePercentage, category)
	if err != nil {
		return err
	}
	txn.DeductibleAmount = deductible
	txn.RequiresSubstantiation = category != nil && category.RequiresSubstantiation()
	txn.TaxYear = txn.TransactionDate.Year()
	return nil
}

// loadTaxCategory returns nil for a nil id.
func loadTaxCategory(ctx context.Context, repo portsrepo.TaxCategoryReader, id *string) (*domain.TaxCategory, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	category, err := repo.FindTaxCategoryByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("invalid tax category: %w", err)
	}
	if !category.IsActive {
		return nil, apperrors.NewValidationError("tax category %s is inactive", category.Code)
	}
	return category, nil
}
