package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	postingDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 9, 21, 33, 123456789, time.UTC)
	movementID := "b4f7f6de-8b11-4b38-9c71-5a4fbb1d2f60"

	token := EncodeToken(postingDate, createdAt, movementID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedPostingDate, decodedCreatedAt, decodedMovementID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, postingDate, decodedPostingDate, "Posting date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, movementID, decodedMovementID, "Movement ID should match after decode")

	// Round-trip the zero value as well
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime, movementID)
	decodedZeroDate, decodedZeroCreated, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroCreated)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separators
	_, _, _, err = DecodeToken("MjAyNS0wMy0xNFQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for a token without separators")
	assert.Contains(t, err.Error(), "split")

	// "notadate|2025-03-14T09:21:33.123456789Z|b4f7f6de"
	_, _, _, err = DecodeToken("bm90YWRhdGV8MjAyNS0wMy0xNFQwOToyMTozMy4xMjM0NTY3ODlafGI0ZjdmNmRl")
	assert.Error(t, err, "Should return an error for an unparseable posting date")
	assert.Contains(t, err.Error(), "posting date parse")

	// "2025-03-14T00:00:00Z|notatime|b4f7f6de"
	_, _, _, err = DecodeToken("MjAyNS0wMy0xNFQwMDowMDowMFp8bm90YXRpbWV8YjRmN2Y2ZGU=")
	assert.Error(t, err, "Should return an error for an unparseable created_at")
	assert.Contains(t, err.Error(), "created_at parse")

	// "2025-03-14T00:00:00Z|2025-03-14T09:21:33.123456789Z|"
	_, _, _, err = DecodeToken("MjAyNS0wMy0xNFQwMDowMDowMFp8MjAyNS0wMy0xNFQwOToyMTozMy4xMjM0NTY3ODlafA==")
	assert.Error(t, err, "Should return an error for a missing movement ID")
	assert.Contains(t, err.Error(), "empty movement ID")
}
