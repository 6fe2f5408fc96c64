package models

import (
	"database/sql"
	"time"
)

// Category is a row of categories. A NULL user_id marks a system category.
type Category struct {
	CategoryID   string         `db:"category_id"`
	UserID       sql.NullString `db:"user_id"`
	Name         string         `db:"name"`
	ParentID     sql.NullString `db:"parent_id"`
	CategoryType string         `db:"category_type"`
	IsSystem     bool           `db:"is_system"`
	AuditFields
}

// CategoryMapping is a row of category_mappings.
type CategoryMapping struct {
	MappingID       string         `db:"mapping_id"`
	UserID          string         `db:"user_id"`
	CategoryID      string         `db:"category_id"`
	ChartAccountID  sql.NullString `db:"chart_account_id"`
	TaxCategoryID   sql.NullString `db:"tax_category_id"`
	ConfidenceScore float64        `db:"confidence_score"`
	EffectiveDate   time.Time      `db:"effective_date"`
	ExpirationDate  sql.NullTime   `db:"expiration_date"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
