package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and update fields with the same user and time.
func NewAuditFields(userID string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     userID,
		LastUpdatedAt: at,
		LastUpdatedBy: userID,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(userID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}
