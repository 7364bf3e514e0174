package common

import (
	"fmt"
	"sort"
)

const (
	// DefaultNamespace collects entries found outside any namespace block.
	DefaultNamespace = "UNK"
	// DefaultType is used for parameters and returns without a type.
	DefaultType = "Any"
	// ZeroHash is assigned when no invocation hash could be found.
	ZeroHash = "0x0000000000000000"
)

// Param is one parameter of a native, in declaration order.
type Param struct {
	Type string `json:"type" jsonschema:"description=Parameter type token or Any when unknown"`
	Name string `json:"name" jsonschema:"description=Parameter name or p<N> when unknown"`
}

// Entry represents a single callable native.
type Entry struct {
	Name    string  `json:"name" jsonschema:"required"`
	Hash    string  `json:"hash" jsonschema:"required,pattern=^0[xX][0-9A-Fa-f]+$"`
	Comment string  `json:"comment"`
	Params  []Param `json:"params"`
	Returns string  `json:"returns"`
}

// Namespace is a named group of natives in stored order.
type Namespace struct {
	Name    string  `json:"name" jsonschema:"required"`
	Entries []Entry `json:"entries"`
}

// Catalog is the normalized result of parsing one upstream source. Namespaces
// keep the order in which they were first seen. A catalog must not be
// modified once a parser has returned it.
type Catalog struct {
	Namespaces []Namespace `json:"namespaces"`

	index map[string]int
}

// Lookup returns the namespace with the given case-sensitive name.
func (c *Catalog) Lookup(name string) (Namespace, bool) {
	if c == nil {
		return Namespace{}, false
	}
	if c.index == nil {
		for _, ns := range c.Namespaces {
			if ns.Name == name {
				return ns, true
			}
		}
		return Namespace{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Namespace{}, false
	}
	return c.Namespaces[i], true
}

// Names returns the namespace names sorted lexically.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Namespaces))
	for _, ns := range c.Namespaces {
		names = append(names, ns.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries across all namespaces.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, ns := range c.Namespaces {
		n += len(ns.Entries)
	}
	return n
}

// CatalogBuilder accumulates entries into namespaces while preserving the
// order namespaces were first seen.
type CatalogBuilder struct {
	cat *Catalog
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{cat: &Catalog{index: make(map[string]int)}}
}

// Ensure creates an empty namespace bucket if none exists yet.
func (b *CatalogBuilder) Ensure(namespace string) {
	if _, ok := b.cat.index[namespace]; ok {
		return
	}
	b.cat.index[namespace] = len(b.cat.Namespaces)
	b.cat.Namespaces = append(b.cat.Namespaces, Namespace{Name: namespace, Entries: []Entry{}})
}

// Add appends an entry to the namespace, creating the bucket on demand.
func (b *CatalogBuilder) Add(namespace string, e Entry) {
	b.Ensure(namespace)
	i := b.cat.index[namespace]
	b.cat.Namespaces[i].Entries = append(b.cat.Namespaces[i].Entries, e)
}

// Catalog returns the built catalog. The builder must not be used afterwards.
func (b *CatalogBuilder) Catalog() *Catalog {
	cat := b.cat
	b.cat = nil
	return cat
}

// NewCatalog builds a catalog from namespaces, e.g. after decoding an export.
func NewCatalog(namespaces ...Namespace) *Catalog {
	b := NewCatalogBuilder()
	for _, ns := range namespaces {
		b.Ensure(ns.Name)
		for _, e := range ns.Entries {
			b.Add(ns.Name, e)
		}
	}
	return b.Catalog()
}

// Reindex restores the lookup index of a catalog decoded from JSON.
func (c *Catalog) Reindex() {
	c.index = make(map[string]int, len(c.Namespaces))
	for i, ns := range c.Namespaces {
		c.index[ns.Name] = i
	}
}

// DefaultParams fills the positional defaults for parameters that carry no
// type or name. The input slice is not modified.
func DefaultParams(params []Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		if p.Type == "" {
			p.Type = DefaultType
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("p%d", i)
		}
		out[i] = p
	}
	return out
}
