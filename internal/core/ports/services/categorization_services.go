package services

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// RuleSvc manages categorization rules
type RuleSvc interface {
	CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error)
	GetRule(ctx context.Context, userID, ruleID string) (*domain.CategorizationRule, error)
	ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error)
	UpdateRule(ctx context.Context, userID, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error)
	DeleteRule(ctx context.Context, userID, ruleID string) error

	// ImportRules creates every rule of a YAML rule set, or none.
	ImportRules(ctx context.Context, userID string, document []byte) ([]domain.CategorizationRule, error)

	// ExportRules renders the user's rules as a YAML rule set.
	ExportRules(ctx context.Context, userID string) ([]byte, error)
}

// CategorySvc manages categories and their ledger/tax mappings
type CategorySvc interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	CreateCategoryMapping(ctx context.Context, userID string, req dto.CreateCategoryMappingRequest) (*domain.CategoryMapping, error)
	ListCategoryMappings(ctx context.Context, userID string, params dto.ListCategoryMappingsParams) ([]domain.CategoryMapping, error)

	// ResolveMapping returns the mapping of categoryID in effect on date, or nil.
	ResolveMapping(ctx context.Context, userID, categoryID string, date time.Time) (*domain.CategoryMapping, error)
}

// CategorizerSvc assigns categories to transactions
type CategorizerSvc interface {
	// CategorizeTransaction applies a user's explicit choice.
	CategorizeTransaction(ctx context.Context, userID, transactionID string, req dto.CategorizeTransactionRequest) (*domain.Transaction, error)

	// AutoCategorize runs the rules, then the history predictor, against one transaction.
	AutoCategorize(ctx context.Context, userID, transactionID string) (*dto.AutoCategorizeResult, error)

	// AutoCategorizeUncategorized runs AutoCategorize over the user's uncategorized transactions.
	AutoCategorizeUncategorized(ctx context.Context, userID string, limit int) (*dto.AutoCategorizeBatchResult, error)

	// TransactionAudit returns the categorization history of a transaction.
	TransactionAudit(ctx context.Context, userID, transactionID string) ([]domain.CategorizationAudit, error)
}

// CategorizationSvcFacade combines all categorization service interfaces
type CategorizationSvcFacade interface {
	RuleSvc
	CategorySvc
	CategorizerSvc
}
