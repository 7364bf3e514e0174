package browse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/golang-cz/textcase"

	"github.com/saffronjam/nativedb/internal/common"
)

type Language string

const (
	LangCpp        Language = "cpp"
	LangLua        Language = "lua"
	LangCSharp     Language = "csharp"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
)

// Languages lists the snippet languages in display order.
func Languages() []Language {
	return []Language{LangCpp, LangCSharp, LangLua, LangJavaScript, LangGo}
}

// ParseLanguage accepts a language name or a common alias.
func ParseLanguage(raw string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "cpp", "c++":
		return LangCpp, nil
	case "lua":
		return LangLua, nil
	case "csharp", "cs", "c#":
		return LangCSharp, nil
	case "javascript", "js":
		return LangJavaScript, nil
	case "go", "golang":
		return LangGo, nil
	default:
		return "", fmt.Errorf("unknown snippet language %q", raw)
	}
}

// Snippet renders a call or declaration of e in lang. Unknown languages fall
// back to the C++ declaration.
func Snippet(lang Language, e common.Entry) string {
	returns := common.FirstNonEmpty(e.Returns, voidReturn)
	names := make([]string, len(e.Params))
	typed := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
		typed[i] = p.Type + " " + p.Name
	}
	args := strings.Join(names, ", ")

	switch lang {
	case LangLua:
		return fmt.Sprintf("-- %s %s\n%s(%s)", returns, e.Name, e.Name, args)
	case LangCSharp:
		return fmt.Sprintf("// %s %s\nFunction.Call(Hash.%s, %s);", returns, e.Name, e.Name, args)
	case LangJavaScript:
		return fmt.Sprintf("// %s %s\n%s(%s);", returns, e.Name, e.Name, args)
	case LangGo:
		return goSnippet(NewGoTypeMapper(), e)
	default:
		return fmt.Sprintf("%s %s(%s);", returns, e.Name, strings.Join(typed, ", "))
	}
}

// goSnippet renders a typed Go wrapper around an Invoke helper.
func goSnippet(m *GoTypeMapper, e common.Entry) string {
	params := make([]string, len(e.Params))
	args := []string{e.Hash}
	for i, p := range e.Params {
		name := GoParamName(p, i)
		params[i] = name + " " + m.ParamType(p.Type)
		args = append(args, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s %s\n", common.FirstNonEmpty(e.Returns, voidReturn), e.Name)

	ret := m.ReturnType(e.Returns)
	if ret == "" {
		fmt.Fprintf(&b, "func %s(%s) {\n", goFuncName(e.Name), strings.Join(params, ", "))
		fmt.Fprintf(&b, "\tInvokeVoid(%s)\n}", strings.Join(args, ", "))
		return b.String()
	}
	fmt.Fprintf(&b, "func %s(%s) %s {\n", goFuncName(e.Name), strings.Join(params, ", "), ret)
	fmt.Fprintf(&b, "\treturn Invoke[%s](%s)\n}", ret, strings.Join(args, ", "))
	return b.String()
}

func goFuncName(name string) string {
	goName := textcase.PascalCase(name)
	if goName == "" || !unicode.IsLetter(rune(goName[0])) {
		return "Native" + strings.ToUpper(strings.TrimPrefix(strings.ToLower(name), "0x"))
	}
	return goName
}
