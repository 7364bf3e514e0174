package browse

import (
	"fmt"
	"strings"
)

// Joaat computes the Jenkins one-at-a-time hash of the lower-cased key, the
// hash games use for model and label names.
func Joaat(key string) uint32 {
	var hash uint32
	for _, c := range []byte(strings.ToLower(key)) {
		hash += uint32(c)
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

// FormatHash32 renders a 32-bit hash as 0x plus eight upper-case hex digits.
func FormatHash32(h uint32) string {
	return fmt.Sprintf("0x%08X", h)
}
