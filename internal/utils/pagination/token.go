package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 encoded cursor from a movement's posting date,
// creation time and ID. The cursor carries the full canonical sort key
// (posting_date, created_at, movement_id), so pages resume exactly after the
// last returned row even when neighbouring rows share both timestamps.
func EncodeToken(postingDate time.Time, createdAt time.Time, movementID string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", postingDate.Format(timeFormat), createdAt.Format(timeFormat), movementID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the cursor back into posting date, creation time and
// movement ID.
func DecodeToken(token string) (time.Time, time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	postingDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (posting date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	if parts[2] == "" {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (empty movement ID)")
	}

	return postingDate, createdAt, parts[2], nil
}
