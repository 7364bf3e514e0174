package common

import (
	"strconv"
	"strings"
)

// IsVoidReturnType reports whether a return type yields no value. Only the
// exact token "void" counts; pointers such as "void*" return a value.
func IsVoidReturnType(returnType string) bool {
	return strings.ToLower(returnType) == "void"
}

// CleanCType returns the bare type name with no "const ", "struct ", "*" or "&".
// e.g. "const char*" → "char"
func CleanCType(cType string) string {
	t := strings.ReplaceAll(cType, "const ", "")
	t = strings.ReplaceAll(t, "struct ", "")
	t = strings.ReplaceAll(t, "*", "")
	t = strings.ReplaceAll(t, "&", "")
	return strings.TrimSpace(t)
}

// ParseHash parses a hexadecimal hash with an optional 0x prefix.
func ParseHash(hash string) (uint64, bool) {
	h := strings.TrimSpace(hash)
	if len(h) > 1 && h[0] == '0' && (h[1] == 'x' || h[1] == 'X') {
		h = h[2:]
	}
	if h == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstNonEmpty returns the first argument that is not the empty string.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
