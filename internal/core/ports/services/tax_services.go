package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// TaxSvcFacade tracks tax categories and deductible amounts
type TaxSvcFacade interface {
	// GetTaxCategories lists the active tax categories of a year.
	GetTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error)

	// CategorizeSingle assigns a tax category to one transaction.
	CategorizeSingle(ctx context.Context, userID string, req dto.TaxCategorizeRequest) (*domain.Transaction, error)

	// CategorizeBulk assigns a tax category to many transactions in independent batches.
	CategorizeBulk(ctx context.Context, userID string, req dto.BulkTaxCategorizeRequest) (*dto.BulkCategorizationResult, error)

	// GetTaxSummary aggregates deductible amounts per tax category for a year.
	GetTaxSummary(ctx context.Context, userID string, taxYear int) (*domain.TaxSummary, error)
}
