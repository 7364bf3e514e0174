package generator

import (
	"reflect"
	"testing"

	"github.com/saffronjam/nativedb/internal/common"
)

func floats(names ...string) []common.Param {
	params := make([]common.Param, len(names))
	for i, n := range names {
		params[i] = common.Param{Type: "float", Name: n}
	}
	return params
}

func TestVectorizePlainTriple(t *testing.T) {
	sig := Vectorize(floats("x", "y", "z"), true)

	wantParams := []common.Param{{Type: "Vector3", Name: "position"}}
	if !reflect.DeepEqual(sig.Params, wantParams) {
		t.Fatalf("params = %#v, want %#v", sig.Params, wantParams)
	}
	wantArgs := []string{"position.x, position.y, position.z"}
	if !reflect.DeepEqual(sig.Args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", sig.Args, wantArgs)
	}
}

func TestVectorizeNoTriple(t *testing.T) {
	in := []common.Param{{Type: "float", Name: "health"}}
	sig := Vectorize(in, true)
	if !reflect.DeepEqual(sig.Params, in) {
		t.Fatalf("params changed: %#v", sig.Params)
	}
	if !reflect.DeepEqual(sig.Args, []string{"health"}) {
		t.Fatalf("args = %#v", sig.Args)
	}
}

func TestVectorizeDisabled(t *testing.T) {
	in := floats("x", "y", "z")
	sig := Vectorize(in, false)
	if !reflect.DeepEqual(sig.Params, in) {
		t.Fatalf("disabled vectorize changed params: %#v", sig.Params)
	}
	if !reflect.DeepEqual(sig.Args, []string{"x", "y", "z"}) {
		t.Fatalf("args = %#v", sig.Args)
	}
}

func TestVectorizeNames(t *testing.T) {
	tests := []struct {
		x    string
		want string
	}{
		{"x", "position"},
		{"X", "position"},
		{"posX", "position"},
		{"coorsX", "position"},
		{"x1", "vec1"},
		{"x2.5", "vec2.5"},
		{"xPos", "Pos"},
		{"targetX", "target"},
	}
	for _, tt := range tests {
		sig := Vectorize(floats(tt.x, "y", "z"), true)
		if len(sig.Params) != 1 || sig.Params[0].Name != tt.want {
			t.Errorf("x name %q: got %#v, want vector %q", tt.x, sig.Params, tt.want)
		}
	}
}

func TestVectorizeKeepsOrder(t *testing.T) {
	params := []common.Param{
		{Type: "Entity", Name: "entity"},
		{Type: "float", Name: "xPos"},
		{Type: "FLOAT", Name: "yPos"},
		{Type: "float", Name: "zPos"},
		{Type: "BOOL", Name: "alive"},
		{Type: "float", Name: "x2"},
		{Type: "float", Name: "y2"},
		{Type: "float", Name: "z2"},
		{Type: "float", Name: "x"},
		{Type: "float", Name: "y"},
	}
	sig := Vectorize(params, true)

	wantParams := []common.Param{
		{Type: "Entity", Name: "entity"},
		{Type: "Vector3", Name: "Pos"},
		{Type: "BOOL", Name: "alive"},
		{Type: "Vector3", Name: "vec2"},
		{Type: "float", Name: "x"},
		{Type: "float", Name: "y"},
	}
	if !reflect.DeepEqual(sig.Params, wantParams) {
		t.Fatalf("params = %#v\nwant %#v", sig.Params, wantParams)
	}
	wantArgs := []string{"entity", "Pos.x, Pos.y, Pos.z", "alive", "vec2.x, vec2.y, vec2.z", "x", "y"}
	if !reflect.DeepEqual(sig.Args, wantArgs) {
		t.Fatalf("args = %#v\nwant %#v", sig.Args, wantArgs)
	}
}

func TestVectorizeRequiresFloats(t *testing.T) {
	params := []common.Param{
		{Type: "float", Name: "x"},
		{Type: "int", Name: "y"},
		{Type: "float", Name: "z"},
	}
	sig := Vectorize(params, true)
	if !reflect.DeepEqual(sig.Params, params) {
		t.Fatalf("mixed types must not vectorize: %#v", sig.Params)
	}
}

func TestVectorizeDoesNotModifyInput(t *testing.T) {
	in := floats("x", "y", "z")
	Vectorize(in, true)
	if !reflect.DeepEqual(in, floats("x", "y", "z")) {
		t.Fatalf("input modified: %#v", in)
	}
}
