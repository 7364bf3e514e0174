package common

import (
	"fmt"
	"strings"
)

// Format tags the upstream wire format of a native database.
type Format string

const (
	FormatJSON      Format = "json"
	FormatHeader    Format = "header"
	FormatEnumClass Format = "cpp_class"
)

// ParseFormat validates a format tag. An empty tag means FormatJSON.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatHeader:
		return FormatHeader, nil
	case FormatEnumClass, "enum_class", "enumclass":
		return FormatEnumClass, nil
	default:
		return "", fmt.Errorf("unknown native database format %q", raw)
	}
}

// NamingConvention selects how generated function names are spelled.
type NamingConvention string

const (
	NamingDefault   NamingConvention = "default"
	NamingCamel     NamingConvention = "camelCase"
	NamingPascal    NamingConvention = "PascalCase"
	NamingSnake     NamingConvention = "snake_case"
	NamingLowercase NamingConvention = "lowercase"
)

var namingConventions = []NamingConvention{NamingDefault, NamingCamel, NamingPascal, NamingSnake, NamingLowercase}

// ParseNamingConvention accepts the convention names case-insensitively.
// An empty value selects NamingDefault.
func ParseNamingConvention(raw string) (NamingConvention, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NamingDefault, nil
	}
	for _, nc := range namingConventions {
		if strings.EqualFold(raw, string(nc)) {
			return nc, nil
		}
	}
	switch strings.ToLower(raw) {
	case "upper", "upper_case":
		return NamingDefault, nil
	case "camel":
		return NamingCamel, nil
	case "pascal":
		return NamingPascal, nil
	case "snake":
		return NamingSnake, nil
	}
	return "", fmt.Errorf("unknown naming convention %q", raw)
}

// GenerationOptions configures header generation. The generator never
// mutates it.
type GenerationOptions struct {
	// SelectedNamespaces lists the namespaces to emit. Order is irrelevant,
	// output is always sorted.
	SelectedNamespaces []string         `json:"namespaces" yaml:"namespaces"`
	Vectorize          bool             `json:"vectorize" yaml:"vectorize"`
	NamingConvention   NamingConvention `json:"naming" yaml:"naming"`
	InvokeToken        string           `json:"invoke" yaml:"invoke"`

	// Product is printed in the banner comment.
	Product string `json:"product,omitempty" yaml:"product"`
	// SanitizeIdentifiers renames identifiers that would not compile as C++.
	SanitizeIdentifiers bool `json:"sanitize,omitempty" yaml:"sanitize"`
}
