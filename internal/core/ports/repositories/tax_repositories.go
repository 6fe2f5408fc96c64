package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// TaxCategoryReader defines read operations for the tax category reference data
type TaxCategoryReader interface {
	// FindTaxCategoryByID retrieves a tax category by id.
	FindTaxCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error)

	// ListTaxCategories retrieves the active tax categories of a tax year ordered by code.
	ListTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error)
}
