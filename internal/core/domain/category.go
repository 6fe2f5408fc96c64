package domain

import "time"

// CategoryType groups categories by cash direction.
type CategoryType string

const (
	CategoryIncome   CategoryType = "income"
	CategoryExpense  CategoryType = "expense"
	CategoryTransfer CategoryType = "transfer"
)

// Category is a user-facing spending or income bucket. System categories have no owner.
type Category struct {
	CategoryID   string       `json:"categoryID"`
	UserID       *string      `json:"userID,omitempty"`
	Name         string       `json:"name"`
	ParentID     *string      `json:"parentID,omitempty"`
	CategoryType CategoryType `json:"categoryType"`
	IsSystem     bool         `json:"isSystem"`
	AuditFields
}

// CategoryMapping links a user category to a ledger account and tax category for a period.
type CategoryMapping struct {
	MappingID       string     `json:"mappingID"`
	UserID          string     `json:"userID"`
	CategoryID      string     `json:"categoryID"`
	ChartAccountID  *string    `json:"chartAccountID,omitempty"`
	TaxCategoryID   *string    `json:"taxCategoryID,omitempty"`
	ConfidenceScore float64    `json:"confidenceScore"`
	EffectiveDate   time.Time  `json:"effectiveDate"`
	ExpirationDate  *time.Time `json:"expirationDate,omitempty"`
	IsActive        bool       `json:"isActive"`
	AuditFields
}

// ActiveOn reports whether the mapping applies on the given date.
// The effective date is inclusive and the expiration date exclusive.
func (m CategoryMapping) ActiveOn(date time.Time) bool {
	if !m.IsActive {
		return false
	}
	d := truncateDay(date)
	if d.Before(truncateDay(m.EffectiveDate)) {
		return false
	}
	if m.ExpirationDate != nil && !d.Before(truncateDay(*m.ExpirationDate)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
