package browse

import (
	"strings"
	"testing"

	"github.com/saffronjam/nativedb/internal/common"
)

func TestSnippet(t *testing.T) {
	e := common.Entry{
		Name:    "GET_PLAYER_PED",
		Hash:    "0x43A66C31C68491C0",
		Params:  []common.Param{{Type: "Player", Name: "player"}, {Type: "BOOL", Name: "flag"}},
		Returns: "Ped",
	}

	tests := []struct {
		lang Language
		want string
	}{
		{LangCpp, "Ped GET_PLAYER_PED(Player player, BOOL flag);"},
		{LangLua, "-- Ped GET_PLAYER_PED\nGET_PLAYER_PED(player, flag)"},
		{LangCSharp, "// Ped GET_PLAYER_PED\nFunction.Call(Hash.GET_PLAYER_PED, player, flag);"},
		{LangJavaScript, "// Ped GET_PLAYER_PED\nGET_PLAYER_PED(player, flag);"},
		{Language("cobol"), "Ped GET_PLAYER_PED(Player player, BOOL flag);"},
	}
	for _, tt := range tests {
		if got := Snippet(tt.lang, e); got != tt.want {
			t.Errorf("Snippet(%s) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestSnippetVoidDefault(t *testing.T) {
	e := common.Entry{Name: "WAIT", Hash: "0x1", Params: []common.Param{}}
	if got := Snippet(LangLua, e); got != "-- void WAIT\nWAIT()" {
		t.Fatalf("got %q", got)
	}
}

func TestGoSnippet(t *testing.T) {
	e := common.Entry{
		Name: "SET_ENTITY_COORDS",
		Hash: "0x06843DA7060A026B",
		Params: []common.Param{
			{Type: "Entity", Name: "entity"},
			{Type: "float", Name: "x"},
			{Type: "const char*", Name: "type"},
			{Type: "int*", Name: "1st"},
		},
		Returns: "void",
	}
	got := Snippet(LangGo, e)
	for _, want := range []string{
		"// void SET_ENTITY_COORDS\n",
		"(entity Entity, x float32, char string, int *int32) {\n",
		"\tInvokeVoid(0x06843DA7060A026B, entity, x, char, int)\n}",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("go snippet missing %q:\n%s", want, got)
		}
	}

	e.Returns = "Ped"
	if got := Snippet(LangGo, e); !strings.Contains(got, ") Ped {\n\treturn Invoke[Ped](0x06843DA7060A026B, ") {
		t.Fatalf("unexpected go snippet:\n%s", got)
	}
}

func TestGoTypeMapper(t *testing.T) {
	m := NewGoTypeMapper()
	tests := map[string]string{
		"int":          "int32",
		"float*":       "*float32",
		"BOOL":         "bool",
		"const char*":  "string",
		"Vector3*":     "*Vector3",
		"Any":          "uintptr",
		"Hash":         "uint32",
		"Vehicle":      "Vehicle",
		"unsigned int": "uint32",
	}
	for in, want := range tests {
		if got := m.ParamType(in); got != want {
			t.Errorf("ParamType(%q) = %q, want %q", in, got, want)
		}
	}
	if got := m.ReturnType("void"); got != "" {
		t.Fatalf("ReturnType(void) = %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	for raw, want := range map[string]Language{"": LangCpp, "C#": LangCSharp, "js": LangJavaScript, "golang": LangGo, "Lua": LangLua} {
		got, err := ParseLanguage(raw)
		if err != nil || got != want {
			t.Errorf("ParseLanguage(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseLanguage("cobol"); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
