package browse

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberBase names the notation of a number handed to ConvertNumber.
type NumberBase string

const (
	BaseSigned   NumberBase = "s32"
	BaseUnsigned NumberBase = "u32"
	BaseHex      NumberBase = "hex"
	BaseBinary   NumberBase = "bin"
)

// NumberForms is one 32-bit value in every notation.
type NumberForms struct {
	Signed   int32  `json:"s32"`
	Unsigned uint32 `json:"u32"`
	Hex      string `json:"hex"`
	Binary   string `json:"bin"`
}

// ConvertNumber parses value in the given base and renders it in all bases.
// Values wider than 32 bits wrap, the way hashes are stored in game memory.
func ConvertNumber(base NumberBase, value string) (NumberForms, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return NumberForms{}, fmt.Errorf("convert %s: empty value", base)
	}

	var bits uint32
	switch base {
	case BaseSigned, BaseUnsigned:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return NumberForms{}, fmt.Errorf("convert %s: %w", base, err)
		}
		bits = uint32(n)
	case BaseHex:
		n, err := strconv.ParseUint(trimPrefixFold(v, "0x"), 16, 64)
		if err != nil {
			return NumberForms{}, fmt.Errorf("convert %s: %w", base, err)
		}
		bits = uint32(n)
	case BaseBinary:
		n, err := strconv.ParseUint(trimPrefixFold(v, "0b"), 2, 64)
		if err != nil {
			return NumberForms{}, fmt.Errorf("convert %s: %w", base, err)
		}
		bits = uint32(n)
	default:
		return NumberForms{}, fmt.Errorf("unknown number base %q", base)
	}

	return NumberForms{
		Signed:   int32(bits),
		Unsigned: bits,
		Hex:      FormatHash32(bits),
		Binary:   fmt.Sprintf("0b%032b", bits),
	}, nil
}

func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}
