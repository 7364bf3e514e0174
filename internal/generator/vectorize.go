package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

const (
	vectorType        = "Vector3"
	vectorDefaultName = "position"
	vectorNumericPfx  = "vec"
)

// Component patterns are unanchored: "xPos" and "posX" both count as an x.
var (
	vectorXRe     = regexp.MustCompile(`(?i)x|posx|coorsx`)
	vectorYRe     = regexp.MustCompile(`(?i)y|posy|coorsy`)
	vectorZRe     = regexp.MustCompile(`(?i)z|posz|coorsz`)
	numericNameRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Signature is a parameter list ready to be emitted: the declared parameters
// and the argument expressions forwarded to the invocation, in order.
type Signature struct {
	Params []common.Param
	Args   []string
}

// Vectorize collapses every run of three float parameters named like x, y, z
// into a single Vector3 parameter. When enabled is false the parameters pass
// through unchanged. The input slice is not modified.
func Vectorize(params []common.Param, enabled bool) Signature {
	sig := Signature{
		Params: make([]common.Param, 0, len(params)),
		Args:   make([]string, 0, len(params)),
	}

	for i := 0; i < len(params); {
		if enabled && isVectorTriple(params, i) {
			name := vectorName(params[i].Name)
			sig.Params = append(sig.Params, common.Param{Type: vectorType, Name: name})
			sig.Args = append(sig.Args, vectorArgs(name))
			i += 3
			continue
		}
		sig.Params = append(sig.Params, params[i])
		sig.Args = append(sig.Args, params[i].Name)
		i++
	}

	return sig
}

func vectorArgs(name string) string {
	return fmt.Sprintf("%s.x, %s.y, %s.z", name, name, name)
}

func isVectorTriple(params []common.Param, i int) bool {
	if i+2 >= len(params) {
		return false
	}
	x, y, z := params[i], params[i+1], params[i+2]
	if !isFloat(x.Type) || !isFloat(y.Type) || !isFloat(z.Type) {
		return false
	}
	return vectorXRe.MatchString(x.Name) && vectorYRe.MatchString(y.Name) && vectorZRe.MatchString(z.Name)
}

func isFloat(t string) bool {
	return strings.EqualFold(t, "float")
}

// vectorName strips the first x-component token from the x parameter's name.
func vectorName(xName string) string {
	name := xName
	if loc := vectorXRe.FindStringIndex(xName); loc != nil {
		name = xName[:loc[0]] + xName[loc[1]:]
	}
	switch {
	case name == "":
		return vectorDefaultName
	case numericNameRe.MatchString(name):
		return vectorNumericPfx + name
	default:
		return name
	}
}
