package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor marks the last row of a page for keyset pagination ordered by
// (date DESC, created_at DESC, id DESC).
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates a base64 encoded token from a row's date, creation time and id.
// Transactions page by transaction_date, journals by entry_date.
func EncodeToken(date time.Time, createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", date.Format(timeFormat), createdAt.Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (missing id)")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return Cursor{Date: date, CreatedAt: createdAt, ID: id.String()}, nil
}

// ClampLimit bounds a requested page size.
func ClampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
