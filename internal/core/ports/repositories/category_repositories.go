package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// CategoryReader defines read operations for categories and their mappings
type CategoryReader interface {
	// FindCategoryByID retrieves a category by id.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves system categories plus the user's own.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// ListCategoryMappings retrieves a user's mappings, optionally for one category.
	ListCategoryMappings(ctx context.Context, userID string, categoryID *string) ([]domain.CategoryMapping, error)
}

// CategoryWriter defines write operations for categories and their mappings
type CategoryWriter interface {
	// SaveCategory persists a new user category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategoryMapping persists a new mapping.
	SaveCategoryMapping(ctx context.Context, mapping domain.CategoryMapping) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
