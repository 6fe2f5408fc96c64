package domain

// User is the profile behind a JWT subject. Everything else is owned by a user.
type User struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	AuditFields
}
