// Package browse answers explorer queries over a parsed catalog: namespace
// listings, filtered search, hash lookup and call snippets.
package browse

import (
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

// voidReturn stands in for an entry without a return type when filtering.
const voidReturn = "void"

type NamespaceSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Match is an entry together with the namespace it was found in.
type Match struct {
	Namespace string       `json:"namespace"`
	Entry     common.Entry `json:"native"`
}

// Query filters entries. Every non-empty field must match; all comparisons
// are case-insensitive substring tests.
type Query struct {
	// Text matches the entry name or hash.
	Text string
	// Namespace restricts the search to one namespace. Empty searches all
	// namespaces in sorted order.
	Namespace string
	// ReturnType matches the return type, with "void" for entries that have
	// none.
	ReturnType string
	// ParamType matches when any parameter type contains it.
	ParamType string
}

// Namespaces lists the namespaces of cat in sorted order with their entry
// counts, keeping those whose name contains filter.
func Namespaces(cat *common.Catalog, filter string) []NamespaceSummary {
	out := []NamespaceSummary{}
	for _, name := range cat.Names() {
		if !containsFold(name, filter) {
			continue
		}
		ns, _ := cat.Lookup(name)
		out = append(out, NamespaceSummary{Name: name, Count: len(ns.Entries)})
	}
	return out
}

// Total is the number of entries across all namespaces.
func Total(cat *common.Catalog) int {
	return cat.Len()
}

// Search returns the entries matching q in namespace order, then stored order.
func Search(cat *common.Catalog, q Query) []Match {
	names := cat.Names()
	if q.Namespace != "" {
		if _, ok := cat.Lookup(q.Namespace); !ok {
			return []Match{}
		}
		names = []string{q.Namespace}
	}

	matches := []Match{}
	for _, name := range names {
		ns, _ := cat.Lookup(name)
		for _, e := range ns.Entries {
			if q.matches(e) {
				matches = append(matches, Match{Namespace: name, Entry: e})
			}
		}
	}
	return matches
}

func (q Query) matches(e common.Entry) bool {
	if q.Text != "" && !containsFold(e.Name, q.Text) && !containsFold(e.Hash, q.Text) {
		return false
	}
	if q.ReturnType != "" && !containsFold(common.FirstNonEmpty(e.Returns, voidReturn), q.ReturnType) {
		return false
	}
	if q.ParamType != "" && !hasParamType(e.Params, q.ParamType) {
		return false
	}
	return true
}

func hasParamType(params []common.Param, t string) bool {
	for _, p := range params {
		if p.Type != "" && containsFold(p.Type, t) {
			return true
		}
	}
	return false
}

// FindByHash returns the first entry whose hash equals hash. Hex hashes are
// compared numerically, so "0x00AB" finds "0xab"; anything else is compared
// ignoring case.
func FindByHash(cat *common.Catalog, hash string) (Match, bool) {
	hash = strings.TrimSpace(hash)
	if hash == "" || cat == nil {
		return Match{}, false
	}
	want, numeric := common.ParseHash(hash)

	for _, ns := range cat.Namespaces {
		for _, e := range ns.Entries {
			if numeric {
				if got, ok := common.ParseHash(e.Hash); ok && got == want {
					return Match{Namespace: ns.Name, Entry: e}, true
				}
				continue
			}
			if strings.EqualFold(e.Hash, hash) {
				return Match{Namespace: ns.Name, Entry: e}, true
			}
		}
	}
	return Match{}, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
