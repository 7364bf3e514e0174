package parser

import (
	"regexp"
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

// EnumClassNamespace holds every native of the enum-class format, which has
// no namespaces of its own.
const EnumClassNamespace = "Natives"

const (
	enumOpenMarker  = "enum class NativeHashes"
	enumCloseMarker = "};"
	bareParamName   = "param"
)

var (
	enumEntryRe    = regexp.MustCompile(`^\s*(\w+)\s*=\s*(0x[0-9A-Fa-f]{8}),?$`)
	enumFunctionRe = regexp.MustCompile(`static\s+inline\s+auto\s+(\w+)\s*\(([^)]*)\)\s*\{\s*return\s+NativeInvoke::Invoke<[^,]+,\s*std::to_underlying\(NativeHashes::(\w+)\),\s*([^>]+)>`)
	lineCommentRe  = regexp.MustCompile(`\s*//.*$`)
)

type enumClassParser struct{}

func (enumClassParser) Format() common.Format { return common.FormatEnumClass }

func (enumClassParser) Parse(data []byte) (*common.Catalog, Stats, error) {
	cat, stats := parseEnumClass(string(data))
	return cat, stats, nil
}

// ParseEnumClass converts an `enum class NativeHashes` table plus the inline
// wrappers that reference it into a single-namespace catalog. Wrappers that
// reference an identifier missing from the table are dropped.
func ParseEnumClass(text string) *common.Catalog {
	cat, _ := parseEnumClass(text)
	return cat
}

func parseEnumClass(text string) (*common.Catalog, Stats) {
	var stats Stats
	lines := strings.Split(text, "\n")

	hashes := collectEnumHashes(lines)
	stats.Hashes = len(hashes)

	b := common.NewCatalogBuilder()
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		m := enumFunctionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, rawParams, ident, returns := m[1], m[2], m[3], m[4]

		hash, ok := hashes[ident]
		if !ok {
			stats.Unresolved++
			continue
		}

		b.Add(EnumClassNamespace, common.Entry{
			Name:    name,
			Hash:    hash,
			Params:  splitEnumParams(rawParams),
			Returns: strings.TrimSpace(returns),
		})
		stats.Entries++
	}

	return b.Catalog(), stats
}

// collectEnumHashes is the first pass: the identifier → hash table built from
// every line between the enum marker and the next "};".
func collectEnumHashes(lines []string) map[string]string {
	hashes := make(map[string]string)
	inEnum := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, enumOpenMarker) {
			inEnum = true
			continue
		}
		if inEnum && strings.Contains(line, enumCloseMarker) {
			inEnum = false
			continue
		}
		if !inEnum {
			continue
		}

		line = lineCommentRe.ReplaceAllString(line, "")
		if m := enumEntryRe.FindStringSubmatch(line); m != nil {
			hashes[m[1]] = m[2]
		}
	}

	return hashes
}

func splitEnumParams(raw string) []common.Param {
	params := []common.Param{}
	for _, fragment := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" || trimmed == "void" {
			continue
		}
		tokens := strings.Fields(trimmed)
		if len(tokens) < 2 {
			params = append(params, common.Param{Type: trimmed, Name: bareParamName})
			continue
		}
		params = append(params, common.Param{
			Type: strings.Join(tokens[:len(tokens)-1], " "),
			Name: tokens[len(tokens)-1],
		})
	}
	return params
}
