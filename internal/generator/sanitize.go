package generator

import (
	"fmt"
	"regexp"

	"github.com/golang-cz/textcase"

	"github.com/saffronjam/nativedb/internal/common"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var cppKeywords = map[string]struct{}{
	"alignas": {}, "alignof": {}, "and": {}, "asm": {}, "auto": {}, "bool": {},
	"break": {}, "case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"constexpr": {}, "continue": {}, "decltype": {}, "default": {}, "delete": {},
	"do": {}, "double": {}, "else": {}, "enum": {}, "explicit": {}, "export": {},
	"extern": {}, "false": {}, "float": {}, "for": {}, "friend": {}, "goto": {},
	"if": {}, "inline": {}, "int": {}, "long": {}, "mutable": {}, "namespace": {},
	"new": {}, "noexcept": {}, "not": {}, "nullptr": {}, "operator": {}, "or": {},
	"private": {}, "protected": {}, "public": {}, "register": {}, "return": {},
	"short": {}, "signed": {}, "sizeof": {}, "static": {}, "struct": {},
	"switch": {}, "template": {}, "this": {}, "throw": {}, "true": {}, "try": {},
	"typedef": {}, "typeid": {}, "typename": {}, "union": {}, "unsigned": {},
	"using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
}

// IsValidIdentifier reports whether name can be used as a C++ identifier.
func IsValidIdentifier(name string) bool {
	if !identifierRe.MatchString(name) {
		return false
	}
	_, reserved := cppKeywords[name]
	return !reserved
}

// SanitizeParams renames parameters whose names would not compile: keywords,
// names that start with a digit and duplicates. A bad name becomes the
// camel-cased parameter type, e.g. "const char*" → "char", or p<N> when that
// is unusable too.
func SanitizeParams(params []common.Param) []common.Param {
	out := make([]common.Param, len(params))
	seen := make(map[string]struct{}, len(params))

	for i, p := range params {
		if _, dup := seen[p.Name]; dup || !IsValidIdentifier(p.Name) {
			p.Name = textcase.CamelCase(common.CleanCType(p.Type))
			if _, dup := seen[p.Name]; dup || !IsValidIdentifier(p.Name) {
				p.Name = fmt.Sprintf("p%d", i)
			}
		}
		seen[p.Name] = struct{}{}
		out[i] = p
	}

	return out
}

// DedupeVectorNames renames synthesized Vector3 parameters whose name is
// already taken by another parameter, e.g. "position" next to an x/y/z
// triple. Parameters passed through from the native keep their names.
func DedupeVectorNames(sig Signature) Signature {
	out := Signature{
		Params: append([]common.Param(nil), sig.Params...),
		Args:   append([]string(nil), sig.Args...),
	}

	taken := make(map[string]struct{}, len(out.Params))
	for i, p := range out.Params {
		if !isSynthesizedVector(out, i) {
			taken[p.Name] = struct{}{}
		}
	}

	for i, p := range out.Params {
		if !isSynthesizedVector(out, i) {
			continue
		}
		name := p.Name
		for n := 2; ; n++ {
			if _, dup := taken[name]; !dup && IsValidIdentifier(name) {
				break
			}
			name = fmt.Sprintf("%s%d", p.Name, n)
		}
		taken[name] = struct{}{}
		out.Params[i].Name = name
		out.Args[i] = vectorArgs(name)
	}

	return out
}

func isSynthesizedVector(sig Signature, i int) bool {
	p := sig.Params[i]
	return p.Type == vectorType && i < len(sig.Args) && sig.Args[i] == vectorArgs(p.Name)
}

// SanitizeFunctionName prefixes names that start with a digit, which happens
// for natives that only have a hash.
func SanitizeFunctionName(name string) string {
	if name == "" {
		return "_"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}
