package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:      d.UserID,
		Email:       d.Email,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Email:       m.Email,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
