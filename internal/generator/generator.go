// Package generator renders a native catalog as a C++ header of static
// wrapper functions, one per native, each forwarding to an invocation
// template keyed on the native's hash.
package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

const (
	DefaultInvokeToken = "Invoke"
	DefaultProduct     = "Vey's"
)

var (
	ErrEmptySelection   = errors.New("generator: no namespaces selected")
	ErrUnknownNamespace = errors.New("generator: namespace not in catalog")
)

// FileName is the conventional output file name for a game.
func FileName(gameID string) string {
	return fmt.Sprintf("natives_%s.hpp", gameID)
}

// Generator renders catalogs with a fixed set of options.
type Generator struct {
	opts common.GenerationOptions
}

func New(opts common.GenerationOptions) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Generate(cat *common.Catalog) ([]byte, error) {
	return Generate(cat, g.opts)
}

// WriteFile renders cat and writes it to path. Nothing is written when
// rendering fails.
func (g *Generator) WriteFile(cat *common.Catalog, path string) error {
	w, err := render(cat, g.opts)
	if err != nil {
		return err
	}
	return w.WriteToFile(path)
}

// Generate renders the selected namespaces of cat in sorted order. Output is
// a pure function of its inputs.
func Generate(cat *common.Catalog, opts common.GenerationOptions) ([]byte, error) {
	w, err := render(cat, opts)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SelectAll returns every namespace name of cat, for callers that want the
// whole catalog.
func SelectAll(cat *common.Catalog) []string {
	return cat.Names()
}

func render(cat *common.Catalog, opts common.GenerationOptions) (*Writer, error) {
	selected, err := resolveSelection(cat, opts.SelectedNamespaces)
	if err != nil {
		return nil, err
	}

	token := strings.TrimSpace(opts.InvokeToken)
	if token == "" {
		token = DefaultInvokeToken
	}

	w := NewWriter()
	w.Preamble(common.FirstNonEmpty(opts.Product, DefaultProduct))
	if opts.Vectorize {
		w.Vector3Struct()
	}

	for _, ns := range selected {
		w.OpenNamespace(ns.Name)
		for _, e := range ns.Entries {
			writeEntry(w, e, token, opts)
		}
		w.CloseNamespace()
	}

	return w, nil
}

func writeEntry(w *Writer, e common.Entry, token string, opts common.GenerationOptions) {
	params := common.DefaultParams(e.Params)
	name := FormatName(e.Name, opts.NamingConvention)
	if opts.SanitizeIdentifiers {
		params = SanitizeParams(params)
		name = SanitizeFunctionName(name)
	}
	sig := Vectorize(params, opts.Vectorize)
	if opts.SanitizeIdentifiers {
		sig = DedupeVectorNames(sig)
	}
	returns := common.FirstNonEmpty(e.Returns, common.DefaultType)

	w.Comment(e.Name, e.Hash)
	w.FunctionHeader(FunctionHeader{
		ReturnType: returns,
		Name:       name,
		Parameters: sig.Params,
	})
	w.Invoke(InvokeCall{
		Token:      token,
		Hash:       e.Hash,
		ReturnType: returns,
		Args:       sig.Args,
	})
	w.CloseFunction()
}

// resolveSelection dedupes and sorts the requested names and looks each one
// up in the catalog.
func resolveSelection(cat *common.Catalog, names []string) ([]common.Namespace, error) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, ErrEmptySelection
	}

	sorted := make([]string, 0, len(set))
	for n := range set {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	out := make([]common.Namespace, 0, len(sorted))
	for _, n := range sorted {
		ns, ok := cat.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, n)
		}
		out = append(out, ns)
	}
	return out, nil
}
