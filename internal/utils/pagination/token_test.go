package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	txnDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(txnDate, createdAt, "3f1c2a9e-0d1b-4a57-9d36-7c2f1b7e4d10")
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeToken(token)
	require.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, txnDate, cursor.Date, "Date should match after decode")
	assert.Equal(t, createdAt, cursor.CreatedAt, "Created at time should match after decode")
	assert.Equal(t, "3f1c2a9e-0d1b-4a57-9d36-7c2f1b7e4d10", cursor.ID)

	// Current time values
	now := time.Now().UTC()
	cursor, err = DecodeToken(EncodeToken(now, now, "0b6f3c1e-5a2d-4c8e-9f71-2d4e6a8b0c13"))
	require.NoError(t, err)
	assert.True(t, now.Equal(cursor.Date), "Current date should match after decode")
	assert.True(t, now.Equal(cursor.CreatedAt), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	encode := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, err = DecodeToken(encode("2023-05-15T00:00:00Z"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeToken(encode("notadate|2023-05-15T14:30:45.123456789Z|id"))
	assert.ErrorContains(t, err, "date parse")

	_, err = DecodeToken(encode("2023-05-15T00:00:00Z|yesterday|id"))
	assert.ErrorContains(t, err, "created_at parse")

	_, err = DecodeToken(encode("2023-05-15T00:00:00Z|2023-05-15T00:00:00Z|"))
	assert.ErrorContains(t, err, "missing id")

	_, err = DecodeToken(encode("2023-05-15T00:00:00Z|2023-05-15T00:00:00Z|not-a-uuid"))
	assert.ErrorContains(t, err, "id parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
	assert.Equal(t, 35, ClampLimit(35, 20, 100))
}
