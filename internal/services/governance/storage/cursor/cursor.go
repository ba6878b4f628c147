// Package cursor provides opaque pagination token encoding for
// version-history listings.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cursor is the internal state of a history pagination token. History pages
// are ordered by changed_at descending with the entry ID as tie-breaker, so
// the cursor records the last entry seen on the previous page.
type Cursor struct {
	// ChangedAtMillis is the changed_at value of the last returned entry.
	ChangedAtMillis int64 `json:"at"`
	// LastID breaks ties between entries sharing a timestamp.
	LastID string `json:"id"`
	// FilterHash invalidates tokens when the filter expression changes.
	FilterHash string `json:"filter_hash,omitempty"`
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 token. Malformed tokens are rejected.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.LastID == "" {
		return Cursor{}, fmt.Errorf("cursor missing entry id")
	}
	return c, nil
}

// HashFilter computes a short hash of the filter string for cursor
// validation. Empty filters hash to the empty string.
func HashFilter(filter string) string {
	if filter == "" {
		return ""
	}
	h := sha256.Sum256([]byte(filter))
	return hex.EncodeToString(h[:8])
}

// ValidateFilterHash rejects a cursor created under a different filter.
func ValidateFilterHash(c Cursor, currentFilter string) error {
	if c.FilterHash != HashFilter(currentFilter) {
		return fmt.Errorf("filter changed since cursor was created")
	}
	return nil
}
