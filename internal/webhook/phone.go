package webhook

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	maskVisiblePrefix = 3
	maskHiddenUntil   = 8
	maskFill          = "********"
)

// HashPhone returns the hex encoded SHA-256 of a phone number. It is the
// dedup key of a lead; the raw number is never stored.
func HashPhone(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}

// MaskPhone keeps the first three characters and everything from the ninth
// character on, e.g. 919876543210 becomes 919********3210.
func MaskPhone(phone string) string {
	prefix := phone
	if len(prefix) > maskVisiblePrefix {
		prefix = prefix[:maskVisiblePrefix]
	}
	suffix := ""
	if len(phone) > maskHiddenUntil {
		suffix = phone[maskHiddenUntil:]
	}
	return prefix + maskFill + suffix
}
