package identity

import (
	"errors"
	"strings"
)

// Display names longer than this are cut down, not rejected.
const maxDisplayNameRunes = 20

var (
	ErrInvalidRoomID      = errors.New("invalid room ID")
	ErrInvalidDisplayName = errors.New("invalid username")
)

// SanitizeRoomID trims surrounding whitespace and rejects empty results.
func SanitizeRoomID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrInvalidRoomID
	}
	return id, nil
}

// SanitizeDisplayName trims surrounding whitespace, truncates to the first
// 20 runes and rejects empty results. Trim runs before the truncation and
// the result is not re-trimmed, so interior whitespace survives even at the
// cut point. Beyond that, any non-empty string is a legal display name:
// emoji, punctuation and control bytes are all accepted on purpose.
func SanitizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if r := []rune(name); len(r) > maxDisplayNameRunes {
		name = string(r[:maxDisplayNameRunes])
	}
	if name == "" {
		return "", ErrInvalidDisplayName
	}
	return name, nil
}
