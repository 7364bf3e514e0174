package generator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saffronjam/nativedb/internal/common"
)

var (
	caseBoundaryRe  = regexp.MustCompile(`([a-z])([A-Z])`)
	underscoreRunRe = regexp.MustCompile(`_([a-z0-9])`)
)

// FormatName spells a native name in the given convention. The name is first
// normalized to snake_case, so "DoSomethingCool" and "DO_SOMETHING_COOL" both
// start out as "do_something_cool".
func FormatName(raw string, convention common.NamingConvention) string {
	snake := toSnake(raw)

	switch convention {
	case common.NamingCamel:
		return lowerFirst(joinUnderscores(snake))
	case common.NamingPascal:
		return upperFirst(joinUnderscores(snake))
	case common.NamingSnake:
		return snake
	case common.NamingLowercase:
		return strings.ReplaceAll(snake, "_", "")
	default:
		return strings.ToUpper(snake)
	}
}

func toSnake(s string) string {
	return strings.ToLower(caseBoundaryRe.ReplaceAllString(s, "${1}_${2}"))
}

// joinUnderscores upper-cases the character after every underscore and drops
// the underscores.
func joinUnderscores(snake string) string {
	s := underscoreRunRe.ReplaceAllStringFunc(snake, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	return strings.ReplaceAll(s, "_", "")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
