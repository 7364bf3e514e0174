// Package parser turns raw upstream native databases into a normalized
// catalog. Each supported wire format has its own independent recognizer;
// Parse dispatches on the format tag.
package parser

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/saffronjam/nativedb/internal/common"
)

var ErrUnknownFormat = errors.New("parser: unknown format")

// Stats describes what a parse kept and dropped. Non-matching text is never
// an error, so these counters are the only diagnostics a caller gets.
type Stats struct {
	Entries     int // entries placed in the catalog
	Skipped     int // JSON namespaces or records that were not objects
	MissingHash int // header declarations without an Invoke hash
	Hashes      int // enum-class hash table size
	Unresolved  int // enum-class functions whose hash identifier is unknown
}

// Parser converts one wire format into a catalog.
type Parser interface {
	Format() common.Format
	Parse(data []byte) (*common.Catalog, Stats, error)
}

// Registry maps format tags to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[common.Format]Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{parsers: make(map[common.Format]Parser, len(parsers))}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces the parser for its format.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Format()] = p
}

func (r *Registry) Lookup(format common.Format) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[format]
	return p, ok
}

// Formats lists the registered format tags in sorted order.
func (r *Registry) Formats() []common.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]common.Format, 0, len(r.parsers))
	for f := range r.parsers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

var defaultRegistry = NewRegistry(jsonParser{}, headerParser{}, enumClassParser{})

// DefaultRegistry returns the registry with the three built-in formats.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Parse parses data with the parser registered for format.
func Parse(format common.Format, data []byte) (*common.Catalog, error) {
	cat, _, err := ParseWithStats(format, data)
	return cat, err
}

// ParseWithStats is Parse plus the parse counters.
func ParseWithStats(format common.Format, data []byte) (*common.Catalog, Stats, error) {
	p, ok := defaultRegistry.Lookup(format)
	if !ok {
		return nil, Stats{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p.Parse(data)
}
