package browse

import (
	"fmt"
	"strings"

	"github.com/golang-cz/textcase"

	"github.com/saffronjam/nativedb/internal/common"
)

// GoTypeMapper maps native C-style types onto Go types for the Go snippet.
type GoTypeMapper struct {
	// Overrides maps a cleaned native type to its Go spelling.
	Overrides map[string]string
	// Opaque lists handle types that are passed around as integers.
	Opaque map[string]struct{}
}

// NewGoTypeMapper returns the mapping used for the common game handle and
// primitive types.
func NewGoTypeMapper() *GoTypeMapper {
	return &GoTypeMapper{
		Overrides: map[string]string{
			"Vector3": "Vector3",
			"Any":     "uintptr",
			"Hash":    "uint32",
		},
		Opaque: map[string]struct{}{
			"Entity": {}, "Ped": {}, "Vehicle": {}, "Object": {}, "Player": {},
			"Cam": {}, "Blip": {}, "Pickup": {}, "Interior": {}, "FireId": {},
			"ScrHandle": {}, "Actor": {},
		},
	}
}

// ParamType maps a parameter type, e.g. "const char*" → "string",
// "float*" → "*float32", "Ped" → "Ped".
func (m *GoTypeMapper) ParamType(nativeType string) string {
	base := common.CleanCType(nativeType)
	ptr := ""
	if strings.Contains(nativeType, "*") {
		ptr = "*"
	}

	if base == "char" && ptr != "" {
		return "string"
	}
	if override, ok := m.Overrides[base]; ok {
		return ptr + override
	}
	if _, ok := m.Opaque[base]; ok {
		return ptr + base
	}
	if prim, ok := goPrimitive(base); ok {
		return ptr + prim
	}
	if base == "" {
		return "uintptr"
	}
	return ptr + textcase.PascalCase(base)
}

// ReturnType maps a return type. Void returns map to the empty string.
func (m *GoTypeMapper) ReturnType(nativeType string) string {
	if nativeType == "" || common.IsVoidReturnType(nativeType) {
		return ""
	}
	return m.ParamType(nativeType)
}

func goPrimitive(base string) (string, bool) {
	switch strings.ToLower(base) {
	case "bool":
		return "bool", true
	case "int":
		return "int32", true
	case "unsigned int", "uint", "uint32_t":
		return "uint32", true
	case "float":
		return "float32", true
	case "double":
		return "float64", true
	case "char":
		return "byte", true
	case "int64_t", "long long":
		return "int64", true
	case "uint64_t", "unsigned long long":
		return "uint64", true
	default:
		return "", false
	}
}

var goKeywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// GoParamName returns a usable Go identifier for a parameter. Empty names,
// names starting with a digit and Go keywords become the camel-cased type.
func GoParamName(p common.Param, index int) string {
	name := p.Name
	_, keyword := goKeywords[name]
	if name != "" && !keyword && !(name[0] >= '0' && name[0] <= '9') {
		return name
	}
	if alt := textcase.CamelCase(common.CleanCType(p.Type)); alt != "" {
		if _, kw := goKeywords[alt]; !kw {
			return alt
		}
	}
	return fmt.Sprintf("arg%d", index)
}
