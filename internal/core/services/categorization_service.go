package services

import (
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/platform/config"
	"github.com/SscSPs/manna/internal/utils/categorize"
)

// categorizationService owns rules, categories, mappings and the categorization of transactions.
type categorizationService struct {
	BaseService
	ruleRepo       portsrepo.RuleRepositoryFacade
	categoryRepo   portsrepo.CategoryRepositoryFacade
	txnRepo        portsrepo.TransactionRepositoryWithTx
	taxRepo        portsrepo.TaxCategoryReader
	predictionRepo portsrepo.PredictionRepositoryFacade
	auditRepo      portsrepo.AuditRepository
	chartSvc       portssvc.ChartAccountReaderSvc
	predictor      categorize.Predictor
	cfg            config.CategorizationConfig
}

// CategorizationServiceOption is a functional option for configuring the categorization service
type CategorizationServiceOption func(*categorizationService)

// WithPredictionStore persists predictor output and its review outcome.
func WithPredictionStore(repo portsrepo.PredictionRepositoryFacade) CategorizationServiceOption {
	return func(s *categorizationService) {
		s.predictionRepo = repo
	}
}

// WithAuditTrail records every category change.
func WithAuditTrail(repo portsrepo.AuditRepository) CategorizationServiceOption {
	return func(s *categorizationService) {
		s.auditRepo = repo
	}
}

// WithCategorizationChartAccounts validates ledger account targets against the user's chart.
func WithCategorizationChartAccounts(svc portssvc.ChartAccountReaderSvc) CategorizationServiceOption {
	return func(s *categorizationService) {
		s.chartSvc = svc
	}
}

// WithCategorizationConfig overrides the default thresholds.
func WithCategorizationConfig(cfg config.CategorizationConfig) CategorizationServiceOption {
	return func(s *categorizationService) {
		s.cfg = cfg
	}
}

// WithPredictor overrides the history predictor.
func WithPredictor(p categorize.Predictor) CategorizationServiceOption {
	return func(s *categorizationService) {
		s.predictor = p
	}
}

// NewCategorizationService creates a new categorization service with the provided options.
func NewCategorizationService(
	ruleRepo portsrepo.RuleRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	taxRepo portsrepo.TaxCategoryReader,
	opts ...CategorizationServiceOption,
) portssvc.CategorizationSvcFacade {
	svc := &categorizationService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		taxRepo:      taxRepo,
		predictor:    categorize.NewPredictor(),
		cfg:          config.DefaultCategorizationConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.CategorizationSvcFacade = (*categorizationService)(nil)
