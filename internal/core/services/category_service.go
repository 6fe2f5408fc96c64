package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrInvalidConfidence    = fmt.Errorf("%w: confidence score must be between 0 and 1", apperrors.ErrValidation)
	ErrInvalidMappingPeriod = fmt.Errorf("%w: expiration date must be after effective date", apperrors.ErrValidation)
	ErrCategoryTypeMismatch = fmt.Errorf("%w: parent category must have the same type", apperrors.ErrValidation)
)

func (s *categorizationService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categorizationService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       &userID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}
	if id := nonEmpty(req.ParentID); id != nil {
		parent, err := loadCategory(ctx, s.categoryRepo, userID, *id)
		if err != nil {
			return nil, fmt.Errorf("invalid parent category: %w", err)
		}
		if parent.CategoryType != req.CategoryType {
			return nil, ErrCategoryTypeMismatch
		}
		category.ParentID = &parent.CategoryID
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categorizationService) CreateCategoryMapping(ctx context.Context, userID string, req dto.CreateCategoryMappingRequest) (*domain.CategoryMapping, error) {
	confidence := 1.0
	if req.ConfidenceScore != nil {
		confidence = *req.ConfidenceScore
	}
	if confidence < 0 || confidence > 1 {
		return nil, ErrInvalidConfidence
	}
	if req.ExpirationDate != nil && !req.ExpirationDate.After(req.EffectiveDate) {
		return nil, ErrInvalidMappingPeriod
	}
	if _, err := loadCategory(ctx, s.categoryRepo, userID, req.CategoryID); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}

	mapping := domain.CategoryMapping{
		MappingID:       uuid.NewString(),
		UserID:          userID,
		CategoryID:      req.CategoryID,
		ChartAccountID:  nonEmpty(req.ChartAccountID),
		TaxCategoryID:   nonEmpty(req.TaxCategoryID),
		ConfidenceScore: confidence,
		EffectiveDate:   req.EffectiveDate,
		ExpirationDate:  req.ExpirationDate,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}
	if mapping.ChartAccountID == nil && mapping.TaxCategoryID == nil {
		return nil, apperrors.NewValidationError("mapping needs a chart account or a tax category")
	}
	if mapping.ChartAccountID != nil && s.chartSvc != nil {
		if _, err := s.chartSvc.GetChartAccountByID(ctx, userID, *mapping.ChartAccountID); err != nil {
			return nil, fmt.Errorf("invalid chart account: %w", err)
		}
	}
	if _, err := loadTaxCategory(ctx, s.taxRepo, mapping.TaxCategoryID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.SaveCategoryMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to save category mapping", slog.String("category_id", req.CategoryID))
		return nil, err
	}
	return &mapping, nil
}

func (s *categorizationService) ListCategoryMappings(ctx context.Context, userID string, params dto.ListCategoryMappingsParams) ([]domain.CategoryMapping, error) {
	mappings, err := s.categoryRepo.ListCategoryMappings(ctx, userID, nonEmpty(params.CategoryID))
	if err != nil {
		s.LogError(ctx, err, "Failed to list category mappings", slog.String("user_id", userID))
		return nil, err
	}
	if mappings == nil {
		return []domain.CategoryMapping{}, nil
	}
	return mappings, nil
}

// ResolveMapping picks the highest-confidence mapping active on date, preferring the latest
// effective date on a tie.
func (s *categorizationService) ResolveMapping(ctx context.Context, userID, categoryID string, date time.Time) (*domain.CategoryMapping, error) {
	mappings, err := s.categoryRepo.ListCategoryMappings(ctx, userID, &categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category mappings", slog.String("category_id", categoryID))
		return nil, err
	}

	var best *domain.CategoryMapping
	for i := range mappings {
		m := mappings[i]
		if m.CategoryID != categoryID || !m.ActiveOn(date) {
			continue
		}
		if best == nil ||
			m.ConfidenceScore > best.ConfidenceScore ||
			(m.ConfidenceScore == best.ConfidenceScore && m.EffectiveDate.After(best.EffectiveDate)) {
			best = &m
		}
	}
	return best, nil
}
