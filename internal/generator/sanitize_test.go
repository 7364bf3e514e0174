package generator

import (
	"reflect"
	"testing"

	"github.com/saffronjam/nativedb/internal/common"
)

func TestIsValidIdentifier(t *testing.T) {
	tests := map[string]bool{
		"ped":      true,
		"_hidden":  true,
		"p0":       true,
		"":         false,
		"1st":      false,
		"int":      false,
		"template": false,
		"a-b":      false,
	}
	for name, want := range tests {
		if got := IsValidIdentifier(name); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSanitizeParamsLeavesValidNames(t *testing.T) {
	in := []common.Param{{Type: "Ped", Name: "ped"}, {Type: "int", Name: "flags"}}
	if got := SanitizeParams(in); !reflect.DeepEqual(got, in) {
		t.Fatalf("valid params changed: %#v", got)
	}
}

func TestSanitizeFunctionName(t *testing.T) {
	tests := map[string]string{
		"GET_PLAYER_PED": "GET_PLAYER_PED",
		"0X1A2B":         "_0X1A2B",
		"":               "_",
	}
	for in, want := range tests {
		if got := SanitizeFunctionName(in); got != want {
			t.Errorf("SanitizeFunctionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDedupeVectorNames(t *testing.T) {
	params := append([]common.Param{{Type: "int", Name: "position"}}, floats("x", "y", "z", "x", "y", "z")...)
	sig := DedupeVectorNames(Vectorize(params, true))

	wantParams := []common.Param{
		{Type: "int", Name: "position"},
		{Type: "Vector3", Name: "position2"},
		{Type: "Vector3", Name: "position3"},
	}
	if !reflect.DeepEqual(sig.Params, wantParams) {
		t.Fatalf("params = %#v, want %#v", sig.Params, wantParams)
	}
	wantArgs := []string{"position", "position2.x, position2.y, position2.z", "position3.x, position3.y, position3.z"}
	if !reflect.DeepEqual(sig.Args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", sig.Args, wantArgs)
	}
}

func TestDedupeVectorNamesKeepsUniqueNames(t *testing.T) {
	in := Vectorize(append(floats("xPos", "yPos", "zPos"), common.Param{Type: "BOOL", Name: "Pos2"}), true)
	sig := DedupeVectorNames(in)
	if !reflect.DeepEqual(sig, in) {
		t.Fatalf("signature changed: %#v, want %#v", sig, in)
	}
}
