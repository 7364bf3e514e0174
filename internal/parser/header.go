package parser

import (
	"regexp"
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

var (
	headerNamespaceRe = regexp.MustCompile(`^namespace\s+(\w+)`)
	headerNativeRe    = regexp.MustCompile(`^\s*static\s+(?P<returns>[\w*&<>:\s]+)\s+(?P<name>\w+)\s*\((?P<params>.*?)\)`)
	headerInvokeRe    = regexp.MustCompile(`(?i)Invoke\s*<\s*(0x[A-F0-9]{1,16})`)
)

const (
	invokeMarker      = "Invoke<"
	invokeLookahead   = 2
	placeholderPrefix = "_0x"
)

// HeaderOptions tunes the pseudo-header recognizer.
type HeaderOptions struct {
	// TrackBraceDepth closes a namespace only when its own closing brace is
	// reached. By default any line that is exactly "}" closes the current
	// namespace, which misfiles natives that follow a nested block.
	TrackBraceDepth bool
}

type headerParser struct {
	opts HeaderOptions
}

func (headerParser) Format() common.Format { return common.FormatHeader }

func (p headerParser) Parse(data []byte) (*common.Catalog, Stats, error) {
	cat, stats := parseHeader(string(data), p.opts)
	return cat, stats, nil
}

// NewHeaderParser returns a header parser with non-default options, suitable
// for registering in place of the built-in one.
func NewHeaderParser(opts HeaderOptions) Parser {
	return headerParser{opts: opts}
}

// ParseHeader converts `namespace X { static R Name(...) { Invoke<0x..>(...) } }`
// text into a catalog. Lines that match nothing are ignored.
func ParseHeader(text string) *common.Catalog {
	cat, _ := parseHeader(text, HeaderOptions{})
	return cat
}

// ParseHeaderWithOptions is ParseHeader with explicit options.
func ParseHeaderWithOptions(text string, opts HeaderOptions) *common.Catalog {
	cat, _ := parseHeader(text, opts)
	return cat
}

type namespaceScope struct {
	name   string
	depth  int
	opened bool
}

func parseHeader(text string, opts HeaderOptions) (*common.Catalog, Stats) {
	var stats Stats
	b := common.NewCatalogBuilder()
	lines := strings.Split(text, "\n")

	current := common.DefaultNamespace
	depth := 0
	var scopes []namespaceScope

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := headerNamespaceRe.FindStringSubmatch(line); m != nil {
			current = m[1]
			b.Ensure(current)
			if opts.TrackBraceDepth {
				scope := namespaceScope{name: current, depth: depth}
				depth += braceDelta(line)
				scope.opened = depth > scope.depth
				scopes = append(scopes, scope)
			}
			continue
		}

		if opts.TrackBraceDepth {
			depth += braceDelta(line)
			if n := len(scopes); n > 0 && !scopes[n-1].opened && depth > scopes[n-1].depth {
				scopes[n-1].opened = true
			}
			for len(scopes) > 0 && scopes[len(scopes)-1].opened && depth <= scopes[len(scopes)-1].depth {
				scopes = scopes[:len(scopes)-1]
			}
			current = common.DefaultNamespace
			if len(scopes) > 0 {
				current = scopes[len(scopes)-1].name
			}
		} else if line == "}" {
			current = common.DefaultNamespace
			continue
		}

		m := headerNativeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		returns := strings.TrimSpace(m[headerNativeRe.SubexpIndex("returns")])
		name := m[headerNativeRe.SubexpIndex("name")]
		rawParams := m[headerNativeRe.SubexpIndex("params")]

		hash, found := findInvokeHash(lines, i)
		if !found {
			stats.MissingHash++
		}
		if strings.HasPrefix(name, placeholderPrefix) {
			name = hash
		}

		b.Add(current, common.Entry{
			Name:    common.FirstNonEmpty(name, hash),
			Hash:    hash,
			Params:  splitHeaderParams(rawParams),
			Returns: returns,
		})
		stats.Entries++
	}

	return b.Catalog(), stats
}

// findInvokeHash looks at most two lines past the declaration for the first
// line carrying an Invoke< marker and extracts its hash.
func findInvokeHash(lines []string, decl int) (string, bool) {
	for j := decl + 1; j <= decl+invokeLookahead && j < len(lines); j++ {
		if !strings.Contains(lines[j], invokeMarker) {
			continue
		}
		if m := headerInvokeRe.FindStringSubmatch(lines[j]); m != nil {
			return m[1], true
		}
		return common.ZeroHash, false
	}
	return common.ZeroHash, false
}

// splitHeaderParams splits "int a, const char* b" into typed parameters. The
// last whitespace-separated token is the name, the rest is the type.
func splitHeaderParams(raw string) []common.Param {
	params := []common.Param{}
	if strings.TrimSpace(raw) == "" {
		return params
	}
	for _, fragment := range strings.Split(raw, ",") {
		tokens := strings.Fields(fragment)
		if len(tokens) == 0 {
			continue
		}
		params = append(params, common.Param{
			Type: strings.Join(tokens[:len(tokens)-1], " "),
			Name: tokens[len(tokens)-1],
		})
	}
	return params
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}
